// Package meta implements the metatile store: packing blocks of
// standalone XYZ tile files into metatile containers, reading tiles back
// out of either form, and unpacking containers into standalone files.
//
// All I/O is synchronous and blocking. Concurrent invocations touching
// the same block (two packs, or a pack racing a read) are not
// coordinated: there is no file locking and no atomic rename into place,
// so a reader may observe a container mid-write. Callers that need
// isolation must serialize access per block themselves.
package meta

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ArthurLER/mod-tile/layout"
	"github.com/ArthurLER/mod-tile/meta/spec"
)

const (
	// defaultPackBufferSize bounds the in-memory image of one container
	// during packing: header, index and every payload must fit.
	defaultPackBufferSize = 10 << 20

	// defaultTileBufferSize bounds a single tile read back out of a
	// container; larger tiles are truncated.
	defaultTileBufferSize = 1 << 20
)

// Store reads, packs and unpacks tiles under a single path layout.
type Store struct {
	layout         *layout.Layout
	logger         *slog.Logger
	packBufferSize int
	tileBufferSize int
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithPackBufferSize overrides the pack buffer size. Pack fails when a
// block's container image does not fit. Sizes below spec.DataOffset are
// raised to it: the buffer must always hold the header and index.
func WithPackBufferSize(n int) Option {
	return func(s *Store) { s.packBufferSize = max(n, spec.DataOffset) }
}

// WithTileBufferSize overrides the per-tile buffer used by Unpack.
func WithTileBufferSize(n int) Option {
	return func(s *Store) { s.tileBufferSize = n }
}

// New creates a Store over the given path layout.
func New(l *layout.Layout, opts ...Option) *Store {
	s := &Store{
		layout:         l,
		logger:         slog.New(slog.DiscardHandler),
		packBufferSize: defaultPackBufferSize,
		tileBufferSize: defaultTileBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout returns the path layout the store operates on.
func (s *Store) Layout() *layout.Layout {
	return s.layout
}

// writeFile creates (or truncates) path and writes data in full, creating
// parent directories as needed.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
