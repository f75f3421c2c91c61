package vtcore

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// dispatchStr implements spec §4.C.v: once STR_END fires, parse the
// accumulated buffer (first byte is the STR type: 'P' DCS, ']' OSC, '^' PM,
// '_' APC, 'k' legacy title, or the raw C1 equivalent) into semicolon-
// separated arguments and act on the recognised cases. Everything else is
// dropped, per spec.
func (e *Emulator) dispatchStr(kind byte, args string) {
	switch kind {
	case ']', 0x9D:
		e.dispatchOSC(args)
	case 'P', 0x90:
		e.dispatchDCS(args)
	case 'k':
		e.setTitle(args)
	case '^', 0x9E, '_', 0x9F:
		// PM and APC have no recognised use in this core; dropped.
	default:
		e.logDropped("unknown STR kind", kind)
	}
}

func (e *Emulator) dispatchDCS(args string) {
	if strings.HasPrefix(args, "$q\"p") || args == "$q\"p" {
		e.replyDECRQSSForSCL()
		return
	}
	e.logDropped("unknown DCS", 0)
}

func (e *Emulator) dispatchOSC(args string) {
	parts := strings.SplitN(args, ";", 2)
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		e.logDropped("malformed OSC", 0)
		return
	}
	rest := ""
	if len(parts) > 1 {
		rest = parts[1]
	}

	switch n {
	case 0, 1, 2:
		// Deliberately more restrictive than xterm: only set the title
		// when the writable-status-line mode is on and a title argument
		// was actually supplied (spec §4.C.v).
		if e.mode.Has(ModeWritableStatusLine) && rest != "" {
			e.setTitle(rest)
		}
	case 4:
		e.dispatchOSC4(rest)
	case 104:
		e.dispatchOSC104(rest)
	case 52:
		e.dispatchOSC52(rest)
	default:
		e.logDropped("unhandled OSC", byte(n))
	}
}

func (e *Emulator) setTitle(title string) {
	e.title = title
	e.renderer.TitleChanged(title)
}

// dispatchOSC4 installs a palette entry: "n;spec" where spec is an
// "rgb:rr/gg/bb" colour string (spec §4.C.v OSC 4).
func (e *Emulator) dispatchOSC4(rest string) {
	fields := strings.SplitN(rest, ";", 2)
	if len(fields) != 2 {
		return
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil || idx < 0 || idx > 255 {
		return
	}
	r, g, b, ok := parseRGBSpec(fields[1])
	if !ok {
		return
	}
	e.palette[idx].R, e.palette[idx].G, e.palette[idx].B = r, g, b
	e.markDamagedRange(0, e.rows-1)
}

// dispatchOSC104 resets one palette entry ("104;n") to its default, or the
// whole palette if n is absent.
func (e *Emulator) dispatchOSC104(rest string) {
	if rest == "" {
		e.palette = DefaultPalette
		e.markDamagedRange(0, e.rows-1)
		return
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 || idx > 255 {
		return
	}
	e.palette[idx] = DefaultPalette[idx]
	e.markDamagedRange(0, e.rows-1)
}

// parseRGBSpec parses "rgb:rr/gg/bb" as accepted by OSC 4. A channel longer
// than two hex digits contributes only its first two digits.
func parseRGBSpec(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "rgb:")
	chans := strings.Split(s, "/")
	if len(chans) != 3 {
		return 0, 0, 0, false
	}
	vals := make([]uint8, 3)
	for i, c := range chans {
		if len(c) < 2 {
			return 0, 0, 0, false
		}
		n, err := strconv.ParseUint(c[:2], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = uint8(n)
	}
	return vals[0], vals[1], vals[2], true
}

// dispatchOSC52 implements the clipboard bridge and its security policy
// (spec §4.C.v, §9 Open Question about the "defaultosc52" idiom): resolved
// as plain sequential logic rather than the teacher-adjacent "for (*c ||
// (c = defaultosc52); *c; c++)" one-liner pattern. If targets is empty, the
// configured default target list substitutes once before iterating.
func (e *Emulator) dispatchOSC52(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		return
	}
	targets, payload := parts[0], parts[1]
	if targets == "" {
		targets = e.cfg.DefaultOSC52Targets
	}

	if payload == "?" {
		// Never leak host clipboard contents via a control sequence: reply
		// with an empty payload regardless of what the backing store holds.
		for _, t := range targets {
			reply := "\x1b]52;" + string(t) + ";\x1b\\"
			e.ptyWriter.Write([]byte(reply))
		}
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		e.logDropped("malformed OSC 52 base64", 0)
		return
	}
	for _, t := range targets {
		switch t {
		case 'c', 'p':
			e.clipboard.Write(byte(t), decoded)
		}
	}
}
