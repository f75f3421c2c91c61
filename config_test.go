package vtcore

import (
	"flag"
	"testing"
	"time"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TabSpaces != 8 {
		t.Errorf("expected TabSpaces 8, got %d", cfg.TabSpaces)
	}
	if cfg.WordDelimiters != " " {
		t.Errorf("expected WordDelimiters \" \", got %q", cfg.WordDelimiters)
	}
	if cfg.DoubleClickTimeout != 300*time.Millisecond {
		t.Errorf("expected 300ms double-click timeout, got %v", cfg.DoubleClickTimeout)
	}
	if cfg.TripleClickTimeout != 600*time.Millisecond {
		t.Errorf("expected 600ms triple-click timeout, got %v", cfg.TripleClickTimeout)
	}
	if cfg.C1UTF8As != C1AsUTF8 {
		t.Errorf("expected C1AsUTF8, got %v", cfg.C1UTF8As)
	}
	if !cfg.AllowAltScreen {
		t.Error("expected AllowAltScreen true by default")
	}
	if cfg.DefaultOSC52Targets != "c" {
		t.Errorf("expected default OSC 52 target \"c\", got %q", cfg.DefaultOSC52Targets)
	}
	if cfg.ForceSelMod != ModShift {
		t.Errorf("expected ForceSelMod ModShift, got %v", cfg.ForceSelMod)
	}
	if cfg.Title != "" {
		t.Errorf("expected empty initial title, got %q", cfg.Title)
	}
}

func TestRegisterFlagsBindsAndParses(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{
		"-tabspaces=4",
		"-worddelimiters=,.",
		"-a=false",
		"-osc52targets=p",
		"-t=mysession",
	})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cfg.TabSpaces != 4 {
		t.Errorf("expected TabSpaces 4, got %d", cfg.TabSpaces)
	}
	if cfg.WordDelimiters != ",." {
		t.Errorf("expected WordDelimiters \",.\", got %q", cfg.WordDelimiters)
	}
	if cfg.AllowAltScreen {
		t.Error("expected AllowAltScreen false after -a=false")
	}
	if cfg.DefaultOSC52Targets != "p" {
		t.Errorf("expected \"p\", got %q", cfg.DefaultOSC52Targets)
	}
	if cfg.Title != "mysession" {
		t.Errorf("expected title \"mysession\", got %q", cfg.Title)
	}
}

func TestRegisterFlagsDefaultsSurviveNoArgs(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cfg.TabSpaces != 8 || !cfg.AllowAltScreen || cfg.DefaultOSC52Targets != "c" {
		t.Errorf("expected defaults preserved with no flags given, got %+v", cfg)
	}
}
