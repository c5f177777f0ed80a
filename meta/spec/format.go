// Package spec implements the binary layout of metatile container files.
//
// A container bundles one Metatile x Metatile block of tiles sharing a
// zoom level into a single file: a fixed header, a positional index of
// payload locations, then the concatenated tile payloads.
package spec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Metatile is the block side length: every container holds exactly
// Metatile x Metatile index entries.
const Metatile = 8

const (
	// Magic tags a metatile container. Compared byte-for-byte, full length.
	Magic = "META"

	MagicLength  = len(Magic)
	HeaderLength = MagicLength + 4*4
	EntryLength  = 16
	EntryCount   = Metatile * Metatile
	IndexLength  = EntryCount * EntryLength

	// DataOffset is where tile payloads start. Index entry offsets are
	// measured from the start of the file and never point below this.
	DataOffset = HeaderLength + IndexLength

	// HeaderRegionLength is how many bytes readers fetch from the start
	// of a container to cover the header and the full index in one read.
	HeaderRegionLength = 4096
)

var ErrInvalidHeader = errors.New("invalid metatile header")
var ErrBadCount = errors.New("bad metatile tile count")

// Entry locates one tile's payload inside the container file.
// A zero Length marks the tile as absent.
type Entry struct {
	Offset uint64
	Length uint64
}

// Header carries the container's anchor coordinates and its positional
// index. Count is stored explicitly in the file but must always equal
// EntryCount; variable-count containers are not supported.
type Header struct {
	Count int32
	X     int32
	Y     int32
	Z     int32
	Index [EntryCount]Entry
}

// Serialize renders the header and index into the first DataOffset bytes
// of a container file. Fields are written little-endian, one by one.
func Serialize(header *Header) []byte {
	data := make([]byte, DataOffset)

	copy(data, Magic)
	binary.LittleEndian.PutUint32(data[MagicLength:], uint32(header.Count))
	binary.LittleEndian.PutUint32(data[MagicLength+4:], uint32(header.X))
	binary.LittleEndian.PutUint32(data[MagicLength+8:], uint32(header.Y))
	binary.LittleEndian.PutUint32(data[MagicLength+12:], uint32(header.Z))

	for i, entry := range header.Index {
		pos := HeaderLength + i*EntryLength
		binary.LittleEndian.PutUint64(data[pos:], entry.Offset)
		binary.LittleEndian.PutUint64(data[pos+8:], entry.Length)
	}

	return data
}

// Deserialize parses the header region of a container file. It never
// reinterprets raw memory: every field is decoded with an explicit width
// and bounds are checked before each access.
func Deserialize(data []byte) (*Header, error) {
	if len(data) < HeaderLength {
		return nil, fmt.Errorf("%w: %v bytes, want at least %v", ErrInvalidHeader, len(data), HeaderLength)
	}
	if !bytes.Equal(data[:MagicLength], []byte(Magic)) {
		return nil, fmt.Errorf("%w: magic mismatch", ErrInvalidHeader)
	}

	header := Header{
		Count: int32(binary.LittleEndian.Uint32(data[MagicLength:])),
		X:     int32(binary.LittleEndian.Uint32(data[MagicLength+4:])),
		Y:     int32(binary.LittleEndian.Uint32(data[MagicLength+8:])),
		Z:     int32(binary.LittleEndian.Uint32(data[MagicLength+12:])),
	}
	if header.Count != EntryCount {
		return nil, fmt.Errorf("%w: %v, want %v", ErrBadCount, header.Count, EntryCount)
	}
	if len(data) < DataOffset {
		return nil, fmt.Errorf("%w: index truncated at %v bytes", ErrInvalidHeader, len(data))
	}

	for i := range header.Index {
		pos := HeaderLength + i*EntryLength
		header.Index[i].Offset = binary.LittleEndian.Uint64(data[pos:])
		header.Index[i].Length = binary.LittleEndian.Uint64(data[pos+8:])
	}

	return &header, nil
}
