package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagString(t *testing.T) {
	require.Equal(t, "TAG_End", TagEnd.String())
	require.Equal(t, "TAG_Byte", TagByte.String())
	require.Equal(t, "TAG_Compound", TagCompound.String())
	require.Equal(t, "TAG_Long_Array", TagLongArray.String())
	require.Equal(t, "TAG_Invalid(0x0d)", TagID(13).String())
	require.Equal(t, "TAG_Invalid(0xff)", TagID(255).String())
}

func TestTagScalarSize(t *testing.T) {
	sizes := map[TagID]int{
		TagEnd:       0,
		TagByte:      1,
		TagShort:     2,
		TagInt:       4,
		TagLong:      8,
		TagFloat:     4,
		TagDouble:    8,
		TagByteArray: 0,
		TagString:    0,
		TagList:      0,
		TagCompound:  0,
		TagIntArray:  0,
		TagLongArray: 0,
	}
	for tag, size := range sizes {
		require.Equal(t, size, tag.scalarSize(), "tag %s", tag)
	}
}

func TestTagArrayElemSize(t *testing.T) {
	require.Equal(t, 1, TagByteArray.arrayElemSize())
	require.Equal(t, 4, TagIntArray.arrayElemSize())
	require.Equal(t, 8, TagLongArray.arrayElemSize())
	require.Equal(t, 0, TagList.arrayElemSize())
	require.Equal(t, 0, TagInt.arrayElemSize())
}

func TestTagValid(t *testing.T) {
	for tag := TagEnd; tag <= TagLongArray; tag++ {
		require.True(t, tag.valid(), "tag %d", tag)
	}
	require.False(t, TagID(13).valid())
	require.False(t, TagID(0x80).valid())
}
