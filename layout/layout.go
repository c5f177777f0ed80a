// Package layout maps tile coordinates to file paths and back.
//
// A layout is built from a file pattern with {x}, {y} and {z}
// placeholders (e.g. "/var/tiles/{z}/{x}/{y}.png"). Standalone tiles live
// at the pattern's path; the metatile container for a block lives at the
// same path for the block's anchor tile, with the extension replaced by
// ".meta".
package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ArthurLER/mod-tile/meta/spec"
	"github.com/ArthurLER/mod-tile/tile"
)

// MetaExt is the filename extension of metatile container files.
const MetaExt = ".meta"

var ErrInvalidPattern = errors.New("layout: invalid file pattern")
var ErrInvalidPath = errors.New("layout: path does not match pattern")

type Layout struct {
	tilePattern string
	metaPattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// New creates a Layout for the given file pattern
// (e.g. "/var/tiles/{z}/{x}/{y}.png").
func New(pattern string) (*Layout, error) {
	for _, p := range []string{"{x}", "{y}", "{z}"} {
		if !strings.Contains(pattern, p) {
			return nil, fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}

	ext := filepath.Ext(pattern)
	metaPattern := strings.TrimSuffix(pattern, ext) + MetaExt

	// Quote the literal segments so metacharacters in the pattern (a
	// root dir named "tiles+v2", say) stay literal in the matcher.
	regexPattern := regexp.QuoteMeta(strings.TrimSuffix(pattern, ext))
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{x}"), "(?P<x>\\d+)")
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{y}"), "(?P<y>\\d+)")
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{z}"), "(?P<z>\\d+)")
	regexPattern += "(?:" + regexp.QuoteMeta(ext) + "|" + regexp.QuoteMeta(MetaExt) + ")"
	pathRegexp, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	path0 := formatPattern(pattern, tile.ID{X: 0, Y: 0, Z: 0})
	path1 := formatPattern(pattern, tile.ID{X: 1, Y: 1, Z: 1})
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	rootDir := path0

	return &Layout{pattern, metaPattern, rootDir, pathRegexp}, nil
}

func formatPattern(pattern string, tileID tile.ID) string {
	result := pattern
	result = strings.ReplaceAll(result, "{x}", strconv.FormatUint(uint64(tileID.X), 10))
	result = strings.ReplaceAll(result, "{y}", strconv.FormatUint(uint64(tileID.Y), 10))
	result = strings.ReplaceAll(result, "{z}", strconv.FormatUint(uint64(tileID.Z), 10))
	return result
}

// Root returns the directory common to every path this layout produces.
func (l *Layout) Root() string {
	return l.rootDir
}

// TilePath returns the standalone file path for a tile.
func (l *Layout) TilePath(tileID tile.ID) string {
	return formatPattern(l.tilePattern, tileID)
}

// Anchor returns the top-left tile of the block containing tileID.
func (l *Layout) Anchor(tileID tile.ID) tile.ID {
	mask := uint32(spec.Metatile - 1)
	return tile.ID{X: tileID.X &^ mask, Y: tileID.Y &^ mask, Z: tileID.Z}
}

// MetaPath returns the container file path for the block containing
// tileID, plus the tile's position in the container's index. The index
// walks the block in raster order, x-major: position 0 is the anchor.
func (l *Layout) MetaPath(tileID tile.ID) (string, int) {
	mask := uint32(spec.Metatile - 1)
	idx := int((tileID.X&mask)*spec.Metatile + tileID.Y&mask)
	return formatPattern(l.metaPattern, l.Anchor(tileID)), idx
}

// IsMetaPath reports whether name denotes a metatile container.
func (l *Layout) IsMetaPath(name string) bool {
	return strings.HasSuffix(name, MetaExt)
}

// ParsePath is the inverse of TilePath and MetaPath: it extracts the tile
// coordinates encoded in a standalone or container file name. Container
// names yield their block's anchor coordinates.
func (l *Layout) ParsePath(name string) (tile.ID, error) {
	matches := l.pathRegexp.FindStringSubmatch(name)
	if matches == nil {
		return tile.ID{}, fmt.Errorf("%w: %v", ErrInvalidPath, name)
	}

	x, _ := strconv.ParseUint(matches[l.pathRegexp.SubexpIndex("x")], 10, 32)
	y, _ := strconv.ParseUint(matches[l.pathRegexp.SubexpIndex("y")], 10, 32)
	z, _ := strconv.ParseUint(matches[l.pathRegexp.SubexpIndex("z")], 10, 32)

	tileID := tile.ID{X: uint32(x), Y: uint32(y), Z: uint32(z)}
	if !tileID.Valid() {
		return tile.ID{}, fmt.Errorf("%w: %v is outside zoom %v", ErrInvalidPath, name, z)
	}
	return tileID, nil
}
