package tile

import (
	"math/bits"

	"github.com/google/hilbert"
)

// Code maps a tile ID onto the Hilbert curve of its zoom level, offset so
// that codes from different zoom levels never collide. Tiles adjacent on
// the curve are adjacent in space, which makes curve order a good write
// order for batch operations.
func Code(tileID ID) uint64 {
	h, _ := hilbert.NewHilbert(1 << tileID.Z)
	curvePos, _ := h.MapInverse(int(tileID.X), int(tileID.Y))

	zoomBase := (1<<(tileID.Z*2) - 1) / 3
	return uint64(curvePos + zoomBase)
}

// FromCode is the inverse of Code.
func FromCode(code uint64) ID {
	z := (bits.Len64(3*code+1) - 1) / 2
	zoomBase := (1<<(z*2) - 1) / 3

	h, _ := hilbert.NewHilbert(1 << z)
	x, y, _ := h.Map(int(code) - zoomBase)

	return ID{X: uint32(x), Y: uint32(y), Z: uint32(z)}
}
