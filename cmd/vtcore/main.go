// Command vtcore hosts a vtcore.Emulator against a real PTY-backed shell,
// using the actual host terminal as the display (spec §6 CLI surface).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/vtcore/vtcore"
)

func main() {
	fs := flag.NewFlagSet("vtcore", flag.ExitOnError)

	var (
		version  = fs.Bool("v", false, "print version")
		sinkPath = fs.String("o", "", "print sink file (`-` = stdout)")
	)
	cfg := vtcore.DefaultConfig()
	cfg.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	if *version {
		fmt.Println("vtcore 1.0")
		return
	}

	argv := fs.Args()
	if len(argv) > 0 && argv[0] == "--" {
		argv = argv[1:]
	}

	log := logrus.NewEntry(logrus.StandardLogger())

	var printSink io.Writer = io.Discard
	if *sinkPath != "" {
		if *sinkPath == "-" {
			printSink = os.Stdout
		} else {
			f, err := os.Create(*sinkPath)
			if err != nil {
				log.WithError(err).Fatal("open print sink")
			}
			defer f.Close()
			printSink = f
		}
	}

	rows, cols := 24, 80
	if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
		cols, rows = w, h
	}

	renderer := &stdoutRenderer{out: os.Stdout}

	e := vtcore.New(
		vtcore.WithDimensions(rows, cols),
		vtcore.WithConfig(cfg),
		vtcore.WithRenderer(renderer),
		vtcore.WithPrintSink(printSink),
		vtcore.WithLogger(log),
	)

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err == nil {
		defer term.Restore(int(os.Stdin.Fd()), oldState)
	}

	d, err := vtcore.NewDriver(e, argv, []string{}, log)
	if err != nil {
		log.WithError(err).Fatal("start child")
	}
	renderer.e = e

	go pumpStdin(d)

	if err := d.Run(); err != nil {
		os.Exit(1)
	}
	os.Exit(d.ExitCode())
}

// pumpStdin forwards raw keystrokes from the host terminal to the driver.
// A full keysym-aware host adapter would translate arrow/function keys via
// vtcore.EncodeKey; this minimal loop passes bytes through verbatim, which
// is sufficient for a plain shell session and keeps main.go a thin wiring
// layer rather than a second input-decoding implementation.
func pumpStdin(d *vtcore.Driver) {
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			d.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// stdoutRenderer is the minimal Renderer that redraws the whole screen to
// the host terminal on every damage notification — no partial-redraw
// diffing, since this binary exists to exercise the core end-to-end, not to
// be a production display layer (that responsibility stays with whatever
// embeds vtcore.Emulator).
type stdoutRenderer struct {
	out io.Writer
	e   *vtcore.Emulator
}

func (r *stdoutRenderer) Damaged(rows []int) {
	if r.e == nil {
		return
	}
	fmt.Fprint(r.out, "\x1b[H\x1b[2J")
	for y := 0; y < r.e.Rows(); y++ {
		for x := 0; x < r.e.Cols(); x++ {
			c := r.e.Cell(x, y)
			if c.Rune == 0 {
				// The dummy half of a wide glyph: the preceding column's
				// rune already occupies this host terminal cell.
				continue
			}
			fmt.Fprint(r.out, string(c.Rune))
		}
		fmt.Fprint(r.out, "\r\n")
	}
}

func (r *stdoutRenderer) TitleChanged(title string) {
	fmt.Fprintf(r.out, "\x1b]0;%s\x07", title)
}

func (r *stdoutRenderer) BellRang(urgent bool) {
	fmt.Fprint(r.out, "\a")
}
