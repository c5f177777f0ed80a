package meta

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ArthurLER/mod-tile/meta/spec"
	"github.com/ArthurLER/mod-tile/tile"
)

// ErrEntryOutOfBounds marks a container whose index points past the end
// of the file.
var ErrEntryOutOfBounds = errors.New("metatile entry out of bounds")

// entryInBounds reports whether the payload at entry lies entirely within
// a file of the given size. Offset and length are checked separately so
// that their sum cannot wrap around.
func entryInBounds(entry spec.Entry, size int64) bool {
	return entry.Offset <= uint64(size) && entry.Length <= uint64(size)-entry.Offset
}

// ReadTile fills buf with the tile's bytes, preferring the tile's
// metatile container and falling back to its standalone file. It returns
// the number of bytes read; a tile larger than buf is truncated to
// len(buf). Implements tile.Reader.
func (s *Store) ReadTile(tileID tile.ID, buf []byte) (int, error) {
	n, err := s.readFromMeta(tileID, buf)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		// A corrupt container is not the same as a missing one. The
		// fallback still runs, but the corruption must not go unnoticed.
		s.logger.Warn("metatile unusable, trying standalone file",
			"tile", tileID, "error", err)
	}
	return s.readFromFile(tileID, buf)
}

// readFromMeta reads one tile out of its metatile container.
func (s *Store) readFromMeta(tileID tile.ID, buf []byte) (int, error) {
	metaPath, idx := s.layout.MetaPath(tileID)

	file, err := os.Open(metaPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	region := make([]byte, spec.HeaderRegionLength)
	n, err := io.ReadFull(file, region)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%v: %w", metaPath, err)
	}

	header, err := spec.Deserialize(region[:n])
	if err != nil {
		return 0, fmt.Errorf("%v: %w", metaPath, err)
	}

	entry := header.Index[idx]
	if entry.Length == 0 {
		// Tile absent from this container.
		return 0, nil
	}

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("%v: %w", metaPath, err)
	}
	if !entryInBounds(entry, info.Size()) {
		return 0, fmt.Errorf("%v: %w: offset %v + length %v > file size %v",
			metaPath, ErrEntryOutOfBounds, entry.Offset, entry.Length, info.Size())
	}

	length := entry.Length
	if length > uint64(len(buf)) {
		s.logger.Warn("truncating tile to fit buffer",
			"tile", tileID, "size", length, "capacity", len(buf))
		length = uint64(len(buf))
	}

	if _, err := file.ReadAt(buf[:length], int64(entry.Offset)); err != nil {
		return 0, fmt.Errorf("%v: %w", metaPath, err)
	}
	return int(length), nil
}

// readFromFile reads a standalone tile file into buf, stopping at
// end-of-file or when buf is full.
func (s *Store) readFromFile(tileID tile.ID, buf []byte) (int, error) {
	filePath := s.layout.TilePath(tileID)

	file, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return n, fmt.Errorf("%v: %w", filePath, err)
	}
	if n == len(buf) {
		s.logger.Warn("tile may be truncated at buffer capacity",
			"path", filePath, "capacity", len(buf))
	}
	return n, nil
}
