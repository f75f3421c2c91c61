package vtcore

import (
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// writeChunk bounds a single PTY write per spec §5.1's backpressure rule.
const writeChunk = 256

// Timer cadences (spec §5 "Timers"). The blink cadence toggles ModeBlink.
// readLoop picks between actionFPS and xFPS by read rate but does not use the
// result: no redraw timer exists, and the Renderer is notified by
// Emulator.Feed after every chunk read from the PTY.
const (
	actionFPS    = 60 * time.Millisecond
	xFPS         = 16 * time.Millisecond
	blinkCadence = 600 * time.Millisecond
	idleDecay    = 3
)

// Driver pumps a PTY-backed child process through an Emulator (spec §5,
// component J). Unlike st.c's single-threaded select() loop around one X11
// display fd, this runs the read side, write side, and timers on
// independent goroutines — Go's blocking-IO-per-goroutine model gives the
// same "drain a read before blocking on write" property for free, since the
// read goroutine keeps draining the PTY concurrently with the write
// goroutine's queued, chunked writes. Grounded on
// patrick-goecommerce/internal/terminal/session.go's start → read loop →
// resize → close lifecycle and javanhut-RavenTerminal/shell/pty.go's use of
// creack/pty.
type Driver struct {
	e *Emulator

	cmd *exec.Cmd
	pty *os.File

	writeCh chan []byte
	done    chan struct{}
	closeOnce sync.Once

	mouse mouseState

	exitCode int
	exitErr  error

	log *logrus.Entry
}

// NewDriver spawns argv inside a new PTY sized to e's current dimensions
// and returns a Driver ready for Run.
func NewDriver(e *Emulator, argv []string, env []string, log *logrus.Entry) (*Driver, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if len(argv) == 0 {
		argv = []string{defaultShell()}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = childEnv(env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(e.Rows()),
		Cols: uint16(e.Cols()),
	})
	if err != nil {
		return nil, err
	}

	d := &Driver{
		e:       e,
		cmd:     cmd,
		pty:     ptmx,
		writeCh: make(chan []byte, 64),
		done:    make(chan struct{}),
		log:     log,
	}
	e.ptyWriter = d
	return d, nil
}

// childEnv builds the child's environment: it removes COLUMNS/LINES/TERMCAP
// from the parent environment and sets TERM and WINDOWID. LOGNAME, USER,
// SHELL and HOME are not set; they pass through from the parent environment
// when present there.
func childEnv(extra []string) []string {
	base := os.Environ()
	env := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		switch {
		case hasEnvKey(kv, "COLUMNS"), hasEnvKey(kv, "LINES"), hasEnvKey(kv, "TERMCAP"):
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "TERM=st-256color", "WINDOWID=0")
	return append(env, extra...)
}

func hasEnvKey(kv, key string) bool {
	return len(kv) > len(key) && kv[:len(key)] == key && kv[len(key)] == '='
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// Write implements io.Writer so the Emulator can use the Driver directly as
// its ptyWriter (replies, bracketed paste, OSC 52 answers all flow through
// here per spec §5's ordering rule: replies queue immediately after the
// inbound CSI that produced them).
func (d *Driver) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	copy(buf, p)
	select {
	case d.writeCh <- buf:
		return len(p), nil
	case <-d.done:
		return 0, io.ErrClosedPipe
	}
}

// SendKey encodes a keypress and queues it for the PTY.
func (d *Driver) SendKey(sym KeySym, mods Modifier) {
	if out := d.e.EncodeKey(sym, mods); out != nil {
		d.Write(out)
	}
}

// SendRune queues a plain printable keystroke verbatim.
func (d *Driver) SendRune(r rune) {
	d.Write([]byte(string(r)))
}

// SendMouse encodes a mouse event and queues it for the PTY. When no mouse
// mode is on, or forceselmod is held, the event is dropped; it is not passed
// to the selection engine.
func (d *Driver) SendMouse(kind MouseEventKind, btn MouseButton, x, y int, mods Modifier) {
	if !d.e.WantsMouseReport(mods) {
		return
	}
	if out := d.e.EncodeMouse(&d.mouse, kind, btn, x, y, mods); out != nil {
		d.Write(out)
	}
}

// Resize updates both the PTY window size and the Emulator's screen.
func (d *Driver) Resize(rows, cols int) {
	d.e.Resize(rows, cols)
	pty.Setsize(d.pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Run pumps the PTY until the child exits or sig delivers SIGHUP/SIGCHLD
// (spec §5's cancellation rule), feeding PTY output to the Emulator (which
// notifies the Renderer after each chunk) and driving the blink timer. It
// blocks until the driver stops.
func (d *Driver) Run() error {
	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, unix.SIGHUP, unix.SIGCHLD)
	defer signal.Stop(sigCh)

	readErrCh := make(chan error, 1)
	go d.readLoop(readErrCh)
	go d.writeLoop()
	go d.waitLoop()
	go d.blinkLoop()

	select {
	case <-d.done:
	case <-sigCh:
		d.stop()
	}
	<-d.done
	return d.exitErr
}

func (d *Driver) readLoop(errCh chan<- error) {
	buf := make([]byte, 4096)
	fps := actionFPS
	idleRounds := 0
	last := time.Now()
	for {
		n, err := d.pty.Read(buf)
		if n > 0 {
			d.e.Feed(buf[:n])
			now := time.Now()
			if now.Sub(last) < xFPS {
				fps = xFPS
				idleRounds = 0
			} else if idleRounds++; idleRounds > idleDecay {
				fps = actionFPS
			}
			last = now
			_ = fps
		}
		if err != nil {
			errCh <- err
			d.stop()
			return
		}
	}
}

func (d *Driver) writeLoop() {
	for {
		select {
		case buf := <-d.writeCh:
			for len(buf) > 0 {
				n := len(buf)
				if n > writeChunk {
					n = writeChunk
				}
				if _, err := d.pty.Write(buf[:n]); err != nil {
					return
				}
				buf = buf[n:]
			}
		case <-d.done:
			return
		}
	}
}

func (d *Driver) blinkLoop() {
	t := time.NewTicker(blinkCadence)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			d.e.ToggleBlink()
		case <-d.done:
			return
		}
	}
}

func (d *Driver) waitLoop() {
	err := d.cmd.Wait()
	d.exitErr = err
	if d.cmd.ProcessState != nil {
		d.exitCode = d.cmd.ProcessState.ExitCode()
	}
	d.stop()
}

// ExitCode returns the child's exit status, valid after Run returns.
func (d *Driver) ExitCode() int { return d.exitCode }

func (d *Driver) stop() {
	d.closeOnce.Do(func() {
		close(d.done)
		d.pty.Close()
		if d.cmd.Process != nil {
			d.cmd.Process.Kill()
		}
	})
}
