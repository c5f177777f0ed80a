package tile_test

import (
	"testing"

	"github.com/ArthurLER/mod-tile/tile"
)

func TestCodeRoundTrip(t *testing.T) {
	for _, tileID := range []tile.ID{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 3, Y: 4, Z: 3},
		{X: 127, Y: 33, Z: 9},
		{X: 4095, Y: 4095, Z: 12},
	} {
		if got := tile.FromCode(tile.Code(tileID)); got != tileID {
			t.Errorf("FromCode(Code(%v)) = %v", tileID, got)
		}
	}
}

func TestCodeIsUniquePerZoom(t *testing.T) {
	seen := make(map[uint64]tile.ID)
	for z := uint32(0); z <= 4; z++ {
		for x := uint32(0); x < 1<<z; x++ {
			for y := uint32(0); y < 1<<z; y++ {
				tileID := tile.ID{X: x, Y: y, Z: z}
				code := tile.Code(tileID)
				if prev, dup := seen[code]; dup {
					t.Fatalf("Code(%v) == Code(%v) == %v", tileID, prev, code)
				}
				seen[code] = tileID
			}
		}
	}
}
