// Package tile provides common tile types and interfaces.
package tile

// ID represents tile coordinates in the XYZ scheme (Tiled web map).
type ID struct {
	X uint32
	Y uint32
	Z uint32
}

func (t ID) Valid() bool {
	return t.Z < 32 && t.X < (1<<t.Z) && t.Y < (1<<t.Z)
}

// Reader defines an interface for reading single tiles into a
// caller-supplied buffer.
type Reader interface {
	// ReadTile fills buf with the tile's bytes and returns the number of
	// bytes read. A tile larger than buf is truncated to len(buf);
	// ReadTile never writes past the end of buf.
	ReadTile(tileID ID, buf []byte) (int, error)
}

// Writer defines an interface for writing tiles to a tileset.
type Writer interface {
	// WriteTile writes a single tile to the tileset.
	WriteTile(tileID ID, tileData []byte) error
}

type Visitor interface {
	// VisitTiles visits all tiles in the tileset, calling the visitor for each.
	// It returns an error if visiting fails.
	// Order of tiles, upfront cpu and memory consumption are implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}
