package meta

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/ArthurLER/mod-tile/meta/spec"
	"github.com/ArthurLER/mod-tile/tile"
)

// VisitTiles walks the layout's directory tree and visits every tile it
// holds, whether packed into a container or stored standalone. A
// standalone file whose container also exists is skipped: the container
// is authoritative, matching ReadTile. Implements tile.Visitor.
func (s *Store) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return filepath.WalkDir(s.layout.Root(), func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		tileID, perr := s.layout.ParsePath(filePath)
		if perr != nil {
			// Not one of ours.
			return nil
		}

		if s.layout.IsMetaPath(filePath) {
			return s.visitMeta(filePath, tileID, visitor)
		}

		if metaPath, _ := s.layout.MetaPath(tileID); fileExists(metaPath) {
			return nil
		}

		tileData, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}
		return visitor(tileID, tileData)
	})
}

// Tiles returns an iterator over all tiles in the store.
// Iteration panics on unrecoverable errors.
func (s *Store) Tiles() iter.Seq2[tile.ID, []byte] {
	return tile.IterTiles(s)
}

// visitMeta visits every tile present in one container file.
func (s *Store) visitMeta(metaPath string, anchor tile.ID, visitor func(tile.ID, []byte) error) error {
	file, err := os.Open(metaPath)
	if err != nil {
		return err
	}
	defer file.Close()

	region := make([]byte, spec.HeaderRegionLength)
	n, err := io.ReadFull(file, region)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("%v: %w", metaPath, err)
	}
	header, err := spec.Deserialize(region[:n])
	if err != nil {
		return fmt.Errorf("%v: %w", metaPath, err)
	}

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%v: %w", metaPath, err)
	}

	for idx, entry := range header.Index {
		if entry.Length == 0 {
			continue
		}
		if !entryInBounds(entry, info.Size()) {
			return fmt.Errorf("%v: %w: offset %v + length %v > file size %v",
				metaPath, ErrEntryOutOfBounds, entry.Offset, entry.Length, info.Size())
		}

		tileData := make([]byte, entry.Length)
		if _, err := file.ReadAt(tileData, int64(entry.Offset)); err != nil {
			return fmt.Errorf("%v: %w", metaPath, err)
		}

		member := tile.ID{
			X: anchor.X + uint32(idx)/spec.Metatile,
			Y: anchor.Y + uint32(idx)%spec.Metatile,
			Z: anchor.Z,
		}
		if err := visitor(member, tileData); err != nil {
			return err
		}
	}

	return nil
}

// PackZoom packs every block at zoom z that still has standalone member
// files, in Hilbert curve order so that containers land near their
// spatial neighbours on disk. Blocks that fail to pack (for example
// because a member is missing) are skipped with a warning. It returns the
// number of containers produced.
func (s *Store) PackZoom(z uint32) (int, error) {
	anchors := make(map[tile.ID]struct{})

	err := filepath.WalkDir(s.layout.Root(), func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		tileID, perr := s.layout.ParsePath(filePath)
		if perr != nil || s.layout.IsMetaPath(filePath) || tileID.Z != z {
			return nil
		}
		anchors[s.layout.Anchor(tileID)] = struct{}{}
		return nil
	})
	if err != nil {
		return 0, err
	}

	order := slices.SortedFunc(maps.Keys(anchors), func(a, b tile.ID) int {
		return cmp.Compare(tile.Code(a), tile.Code(b))
	})

	packed := 0
	for _, anchor := range order {
		if err := s.Pack(anchor); err != nil {
			s.logger.Warn("skipping block", "anchor", anchor, "error", err)
			continue
		}
		packed++
	}
	return packed, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
