package main

import (
	"log/slog"
	"os"

	"github.com/ArthurLER/mod-tile/layout"
	"github.com/ArthurLER/mod-tile/meta"
)

// newStore builds a store over the given tile file pattern, logging to
// stderr. Quiet mode drops everything below warnings.
func newStore(pattern string, quiet bool) (*meta.Store, error) {
	l, err := layout.New(pattern)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return meta.New(l, meta.WithLogger(logger)), nil
}
