package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDump_Scalars(t *testing.T) {
	root := NewCompound[BigEndian]()
	c := root.Compound()
	c.Insert("b", ByteValue[BigEndian](1))
	c.Insert("s", ShortValue[BigEndian](2))
	c.Insert("i", IntValue[BigEndian](3))
	c.Insert("l", LongValue[BigEndian](4))
	c.Insert("str", StringValue[BigEndian]("hi"))

	out := Dump[BigEndian](&root)
	require.Equal(t, `{"b":1b,"s":2s,"i":3,"l":4L,"str":"hi"}`, out)
}

func TestDump_Containers(t *testing.T) {
	root := NewCompound[BigEndian]()
	c := root.Compound()

	xs := NewList[BigEndian](TagByte)
	for _, v := range []int8{1, 2, 3} {
		require.NoError(t, xs.List().Push(ByteValue[BigEndian](v)))
	}
	c.Insert("xs", xs)
	c.Insert("ia", IntArrayValue[BigEndian]([]int32{1, 256}))
	c.Insert("ba", ByteArrayValue[BigEndian]([]byte{0xFF}))
	c.Insert("la", LongArrayValue[BigEndian]([]int64{-1}))

	out := Dump[BigEndian](&root)
	require.Equal(t, `{"xs":[1b,2b,3b],"ia":[I;1,256],"ba":[B;-1b],"la":[L;-1L]}`, out)
}

func TestDump_ReadonlyMatchesOwned(t *testing.T) {
	doc, err := ReadBorrowed[BigEndian](xsDoc)
	require.NoError(t, err)

	_, owned, err := ReadOwned[BigEndian, BigEndian](xsDoc)
	require.NoError(t, err)

	require.Equal(t, Dump[BigEndian](doc.Root()), Dump[BigEndian](&owned))
}
