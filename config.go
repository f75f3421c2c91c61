package vtcore

import (
	"flag"
	"time"
)

// Config is the static options record spec §9 calls for ("a static options
// record; loading is out of scope" for the core itself — a flag.FlagSet in
// cmd/vtcore populates one before constructing an Emulator).
type Config struct {
	// TabSpaces is the hard tab width (st.c's tabspaces, default 8).
	TabSpaces int

	// WordDelimiters is the rune set, beyond whitespace, that stops a
	// double-click WORD selection snap (config.def.h's worddelimiters).
	WordDelimiters string

	// DoubleClickTimeout and TripleClickTimeout bound the multi-click
	// window for the selection engine's WORD/LINE snap escalation.
	DoubleClickTimeout time.Duration
	TripleClickTimeout time.Duration

	// C1UTF8As selects how the byte decoder treats a raw 0x80-0x9F byte
	// (spec §4.A).
	C1UTF8As C1Policy

	// AllowAltScreen gates modes 47/1047/1049 (st.c's allowaltscreen
	// global, CLI flag -a); when false they are logged and dropped.
	AllowAltScreen bool

	// DefaultOSC52Targets substitutes for an empty target field on OSC 52
	// ("c" clipboard, "p" primary selection).
	DefaultOSC52Targets string

	// ForceSelMod is the modifier mask that, when held, routes a mouse
	// event to the selection engine instead of mouse reporting regardless
	// of tracking mode (config.def.h's forceselmod = ShiftMask).
	ForceSelMod Modifier

	// Title seeds the window title before any OSC 0/1/2 sets it.
	Title string
}

// DefaultConfig mirrors st.c's compiled-in config.def.h defaults.
func DefaultConfig() Config {
	return Config{
		TabSpaces:           8,
		WordDelimiters:      " ",
		DoubleClickTimeout:  300 * time.Millisecond,
		TripleClickTimeout:  600 * time.Millisecond,
		C1UTF8As:            C1AsUTF8,
		AllowAltScreen:      true,
		DefaultOSC52Targets: "c",
		ForceSelMod:         ModShift,
		Title:               "",
	}
}

// RegisterFlags binds cfg's fields to fs, for cmd/vtcore's CLI surface
// (spec §6). Only the flags meaningful to a headless, display-less core
// are exposed here; the X11-only surface (-c/-f/-g/-i/-w/-display/-xrm) has
// no analogue in this module and is not wired — see DESIGN.md.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&cfg.TabSpaces, "tabspaces", cfg.TabSpaces, "hard tab width")
	fs.StringVar(&cfg.WordDelimiters, "worddelimiters", cfg.WordDelimiters, "selection WORD-snap delimiter runes")
	fs.BoolVar(&cfg.AllowAltScreen, "a", cfg.AllowAltScreen, "allow alternate screen")
	fs.StringVar(&cfg.DefaultOSC52Targets, "osc52targets", cfg.DefaultOSC52Targets, "default OSC 52 clipboard targets when none given")
	fs.StringVar(&cfg.Title, "t", cfg.Title, "initial window title")
}
