package meta

import (
	"errors"
	"fmt"
	"os"

	"github.com/ArthurLER/mod-tile/meta/spec"
	"github.com/ArthurLER/mod-tile/tile"
)

var ErrEmptyTile = errors.New("empty tile file")
var ErrPackBufferFull = errors.New("pack buffer full")

// blockLimit clamps the block side length at low zoom levels, where the
// whole zoom holds fewer than spec.Metatile tiles per axis.
func blockLimit(z uint32) uint32 {
	if limit := uint32(1) << z; limit < spec.Metatile {
		return limit
	}
	return spec.Metatile
}

// Pack assembles the metatile container for the block containing tileID
// from the block's standalone tile files, writes it, and then deletes
// those files. The container is built entirely in memory first: if any
// member is missing, empty or unreadable, nothing is written and nothing
// is deleted.
func (s *Store) Pack(tileID tile.ID) error {
	anchor := s.layout.Anchor(tileID)
	limit := blockLimit(anchor.Z)

	buf := make([]byte, s.packBufferSize)
	header := spec.Header{
		Count: spec.EntryCount,
		X:     int32(anchor.X),
		Y:     int32(anchor.Y),
		Z:     int32(anchor.Z),
	}

	cursor := spec.DataOffset
	for ox := uint32(0); ox < limit; ox++ {
		for oy := uint32(0); oy < limit; oy++ {
			member := tile.ID{X: anchor.X + ox, Y: anchor.Y + oy, Z: anchor.Z}

			n, err := s.readFromFile(member, buf[cursor:])
			if err == nil && cursor+n == len(buf) {
				// The member may extend past the buffer; a silently
				// truncated payload must never be persisted.
				err = fmt.Errorf("%w: %v bytes", ErrPackBufferFull, len(buf))
			}
			if err == nil && n == 0 {
				err = ErrEmptyTile
			}
			if err != nil {
				return fmt.Errorf("reading block member %v/%v/%v: %w",
					member.Z, member.X, member.Y, err)
			}

			_, idx := s.layout.MetaPath(member)
			header.Index[idx] = spec.Entry{Offset: uint64(cursor), Length: uint64(n)}
			cursor += n
		}
	}

	copy(buf, spec.Serialize(&header))

	metaPath, _ := s.layout.MetaPath(anchor)
	if err := writeFile(metaPath, buf[:cursor]); err != nil {
		return fmt.Errorf("writing %v: %w", metaPath, err)
	}
	s.logger.Info("produced metatile", "path", metaPath, "tiles", limit*limit)

	// Sources go only after the container is safely on disk. A failed
	// removal leaves a stale standalone file behind; readers ignore it
	// as long as the container exists.
	for ox := uint32(0); ox < limit; ox++ {
		for oy := uint32(0); oy < limit; oy++ {
			member := tile.ID{X: anchor.X + ox, Y: anchor.Y + oy, Z: anchor.Z}
			if err := os.Remove(s.layout.TilePath(member)); err != nil {
				s.logger.Warn("failed to remove standalone tile",
					"path", s.layout.TilePath(member), "error", err)
			}
		}
	}

	return nil
}

// ProcessPack resolves name to a tile coordinate and packs its block, but
// only when name denotes the block's anchor tile. A driver invoked once
// per rendered tile therefore triggers exactly one pack per block.
func (s *Store) ProcessPack(name string) error {
	tileID, err := s.layout.ParsePath(name)
	if err != nil {
		return err
	}

	if _, idx := s.layout.MetaPath(tileID); idx != 0 {
		return nil
	}
	return s.Pack(tileID)
}
