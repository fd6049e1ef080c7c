package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// newLogger returns a terminal logger writing to w. Colour is only used when
// w is a terminal and cfg allows it.
func newLogger(w io.Writer, cfg *Config) *slog.Logger {
	noColor := cfg.NoColor
	if f, ok := w.(*os.File); !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		noColor = true
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}
