package layout_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ArthurLER/mod-tile/layout"
	"github.com/ArthurLER/mod-tile/tile"
	"github.com/google/go-cmp/cmp"
)

func TestNewRejectsBadPatterns(t *testing.T) {
	for _, pattern := range []string{
		"",
		"/tiles/{z}/{x}/y.png",
		"/tiles/{x}/{y}.png",
		"/tiles/all.png",
	} {
		if _, err := layout.New(pattern); !errors.Is(err, layout.ErrInvalidPattern) {
			t.Errorf("New(%q) = %v, want ErrInvalidPattern", pattern, err)
		}
	}
}

func TestTilePath(t *testing.T) {
	l, err := layout.New("/tiles/{z}/{x}/{y}.png")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := l.TilePath(tile.ID{X: 17, Y: 5, Z: 6})
	if want := "/tiles/6/17/5.png"; got != want {
		t.Errorf("TilePath = %q, want %q", got, want)
	}
}

func TestMetaPath(t *testing.T) {
	l, err := layout.New("/tiles/{z}/{x}/{y}.png")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, tc := range []struct {
		tileID   tile.ID
		wantPath string
		wantIdx  int
	}{
		{tile.ID{X: 0, Y: 0, Z: 3}, "/tiles/3/0/0.meta", 0},
		{tile.ID{X: 3, Y: 4, Z: 3}, "/tiles/3/0/0.meta", 3*8 + 4},
		{tile.ID{X: 7, Y: 7, Z: 3}, "/tiles/3/0/0.meta", 63},
		{tile.ID{X: 8, Y: 0, Z: 4}, "/tiles/4/8/0.meta", 0},
		{tile.ID{X: 17, Y: 5, Z: 6}, "/tiles/6/16/0.meta", 1*8 + 5},
	} {
		path, idx := l.MetaPath(tc.tileID)
		if path != tc.wantPath || idx != tc.wantIdx {
			t.Errorf("MetaPath(%v) = (%q, %v), want (%q, %v)",
				tc.tileID, path, idx, tc.wantPath, tc.wantIdx)
		}
	}
}

func TestAnchorIsCanonical(t *testing.T) {
	l, err := layout.New("/tiles/{z}/{x}/{y}.png")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tileID := tile.ID{X: 21, Y: 13, Z: 8}
	anchor := l.Anchor(tileID)

	if got, want := anchor, (tile.ID{X: 16, Y: 8, Z: 8}); got != want {
		t.Errorf("Anchor(%v) = %v, want %v", tileID, got, want)
	}
	if _, idx := l.MetaPath(anchor); idx != 0 {
		t.Errorf("anchor index offset = %v, want 0", idx)
	}
}

func TestParsePathRoundTrip(t *testing.T) {
	l, err := layout.New("/tiles/{z}/{x}/{y}.png")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, tileID := range []tile.ID{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 4, Z: 3},
		{X: 123, Y: 456, Z: 10},
	} {
		got, err := l.ParsePath(l.TilePath(tileID))
		if err != nil {
			t.Errorf("ParsePath(tile path of %v) failed: %v", tileID, err)
			continue
		}
		if !cmp.Equal(got, tileID) {
			t.Errorf("ParsePath(tile path) = %v, want %v", got, tileID)
		}
	}
}

func TestParsePathAcceptsMetaNames(t *testing.T) {
	l, err := layout.New("/tiles/{z}/{x}/{y}.png")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	metaPath, _ := l.MetaPath(tile.ID{X: 11, Y: 3, Z: 5})
	if !l.IsMetaPath(metaPath) {
		t.Errorf("IsMetaPath(%q) = false", metaPath)
	}

	got, err := l.ParsePath(metaPath)
	if err != nil {
		t.Fatalf("ParsePath(%q) failed: %v", metaPath, err)
	}
	if want := (tile.ID{X: 8, Y: 0, Z: 5}); got != want {
		t.Errorf("ParsePath(%q) = %v, want %v", metaPath, got, want)
	}
}

func TestParsePathRejectsForeignNames(t *testing.T) {
	l, err := layout.New("/tiles/{z}/{x}/{y}.png")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, name := range []string{
		"/tiles/3/0/0.jpeg",
		"/tiles/3/0.png",
		"/elsewhere/3/0/0.png",
		"/tiles/3/0/0.png.tmp",
		"/tiles/40/0/0.png", // zoom out of range
	} {
		if _, err := l.ParsePath(name); !errors.Is(err, layout.ErrInvalidPath) {
			t.Errorf("ParsePath(%q) = %v, want ErrInvalidPath", name, err)
		}
	}
}

func TestPatternWithRegexpMetacharacters(t *testing.T) {
	l, err := layout.New("/data/tiles+v2/{z}/{x}/{y}.png")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tileID := tile.ID{X: 3, Y: 4, Z: 3}
	got, err := l.ParsePath(l.TilePath(tileID))
	if err != nil {
		t.Fatalf("ParsePath(tile path) failed: %v", err)
	}
	if got != tileID {
		t.Errorf("ParsePath(tile path) = %v, want %v", got, tileID)
	}

	// "tiles+v2" must match literally, not as a quantified "s".
	if _, err := l.ParsePath("/data/tilesv2/3/0/0.png"); !errors.Is(err, layout.ErrInvalidPath) {
		t.Errorf("ParsePath accepted a path matching + as a quantifier: %v", err)
	}
}

func TestRoot(t *testing.T) {
	rootDir := t.TempDir()
	l, err := layout.New(filepath.Join(rootDir, "{z}", "{x}", "{y}.png"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := l.Root(); got != rootDir {
		t.Errorf("Root = %q, want %q", got, rootDir)
	}
}
