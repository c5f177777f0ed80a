package meta

import (
	"os"

	"github.com/ArthurLER/mod-tile/tile"
)

// Unpack extracts every member of the metatile block named by name back
// into standalone tile files, then removes the container. Members that
// cannot be read or written are skipped with a warning; the container is
// removed regardless, so unreadable members are lost with it.
func (s *Store) Unpack(name string) error {
	tileID, err := s.layout.ParsePath(name)
	if err != nil {
		return err
	}
	anchor := s.layout.Anchor(tileID)
	limit := blockLimit(anchor.Z)

	buf := make([]byte, s.tileBufferSize)
	for ox := uint32(0); ox < limit; ox++ {
		for oy := uint32(0); oy < limit; oy++ {
			member := tile.ID{X: anchor.X + ox, Y: anchor.Y + oy, Z: anchor.Z}

			n, err := s.ReadTile(member, buf)
			if err != nil || n == 0 {
				s.logger.Warn("skipping unreadable tile", "tile", member, "error", err)
				continue
			}

			if err := s.WriteTile(member, buf[:n]); err != nil {
				s.logger.Warn("failed to write standalone tile", "tile", member, "error", err)
			}
		}
	}

	metaPath, _ := s.layout.MetaPath(anchor)
	if err := os.Remove(metaPath); err != nil {
		s.logger.Warn("failed to remove metatile", "path", metaPath, "error", err)
	}
	return nil
}

// WriteTile writes one standalone tile file. Implements tile.Writer.
func (s *Store) WriteTile(tileID tile.ID, tileData []byte) error {
	filePath := s.layout.TilePath(tileID)
	if err := writeFile(filePath, tileData); err != nil {
		return err
	}
	s.logger.Info("produced tile", "path", filePath)
	return nil
}
