package spec_test

import (
	"errors"
	"testing"

	"github.com/ArthurLER/mod-tile/meta/spec"
	"github.com/stretchr/testify/require"
)

func TestLayoutConstants(t *testing.T) {
	require.Equal(t, spec.HeaderLength+spec.EntryCount*spec.EntryLength, spec.DataOffset)
	require.LessOrEqual(t, spec.DataOffset, spec.HeaderRegionLength)
}

func TestSerializeLength(t *testing.T) {
	header := spec.Header{Count: spec.EntryCount}
	require.Len(t, spec.Serialize(&header), spec.DataOffset)
}

func TestSerializeRoundTrip(t *testing.T) {
	header1 := spec.Header{Count: spec.EntryCount, X: 8, Y: 16, Z: 7}
	for i := range header1.Index {
		header1.Index[i] = spec.Entry{
			Offset: uint64(spec.DataOffset + i*100),
			Length: 100,
		}
	}

	header2, err := spec.Deserialize(spec.Serialize(&header1))
	require.NoError(t, err)
	require.Equal(t, header1, *header2)
}

func TestDeserializeTooShort(t *testing.T) {
	_, err := spec.Deserialize([]byte("META"))
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)
}

func TestDeserializeBadMagic(t *testing.T) {
	data := spec.Serialize(&spec.Header{Count: spec.EntryCount})
	data[0] = 'X'
	_, err := spec.Deserialize(data)
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)
}

func TestDeserializeBadCount(t *testing.T) {
	for _, count := range []int32{0, 1, spec.EntryCount - 1, spec.EntryCount + 1, 256, -1} {
		data := spec.Serialize(&spec.Header{Count: count})
		_, err := spec.Deserialize(data)
		require.Truef(t, errors.Is(err, spec.ErrBadCount), "count %v: %v", count, err)
	}
}

func TestDeserializeTruncatedIndex(t *testing.T) {
	data := spec.Serialize(&spec.Header{Count: spec.EntryCount})
	_, err := spec.Deserialize(data[:spec.DataOffset-1])
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)
}
