package nbt

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTripReadonly(t *testing.T) {
	docs := [][]byte{
		emptyRootDoc,
		fooDoc,
		xsDoc,
		benchDoc(),
		deepDoc(16),
	}

	for i, data := range docs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			doc, err := ReadBorrowed[BigEndian](data)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, doc.WriteTo(&buf))
			require.Equal(t, data, buf.Bytes())
		})
	}
}

func TestWrite_RoundTripTrailingDropped(t *testing.T) {
	data := append(bytes.Clone(fooDoc), 0xDE, 0xAD)
	doc, err := ReadBorrowed[BigEndian](data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteTo(&buf))
	require.Equal(t, fooDoc, buf.Bytes())
}

func TestWrite_OwnedMatchesWire(t *testing.T) {
	root := NewCompound[BigEndian]()
	root.Compound().Insert("foo", ByteValue[BigEndian](42))

	out, err := ToVecBE("", &root)
	require.NoError(t, err)
	require.Equal(t, fooDoc, out)
}

func TestWrite_OwnedList(t *testing.T) {
	root := NewCompound[BigEndian]()
	xs := NewList[BigEndian](TagByte)
	for _, v := range []int8{1, 2, 3} {
		require.NoError(t, xs.List().Push(ByteValue[BigEndian](v)))
	}
	root.Compound().Insert("xs", xs)

	out, err := ToVecBE("", &root)
	require.NoError(t, err)
	require.Equal(t, xsDoc, out)
}

func TestWrite_RootName(t *testing.T) {
	root := NewCompound[BigEndian]()
	out, err := ToVecBE("hello", &root)
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x00}, out)
}

func TestWrite_RootMustBeCompound(t *testing.T) {
	v := IntValue[BigEndian](1)
	err := Write[BigEndian](io.Discard, "", &v)
	require.Error(t, err)
}

func TestWrite_LittleEndian(t *testing.T) {
	root := NewCompound[LittleEndian]()
	root.Compound().Insert("i", IntValue[LittleEndian](256))

	out, err := ToVecLE("", &root)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x0A, 0x00, 0x00,
		0x03, 0x01, 0x00, 'i', 0x00, 0x01, 0x00, 0x00,
		0x00,
	}, out)
}

func TestWrite_StringLengthLimit(t *testing.T) {
	// 65535 bytes is the largest representable string.
	root := NewCompound[BigEndian]()
	root.Compound().Insert("s", RawStringValue[BigEndian](bytes.Repeat([]byte{'x'}, 65535)))

	out, err := ToVecBE("", &root)
	require.NoError(t, err)

	// Parses back to the same string.
	doc, err := ReadBorrowed[BigEndian](out)
	require.NoError(t, err)
	raw, ok := mustGet(t, doc.Root(), "s").AsString()
	require.True(t, ok)
	require.Len(t, raw, 65535)

	// One byte more fails on write.
	over := NewCompound[BigEndian]()
	over.Compound().Insert("s", RawStringValue[BigEndian](bytes.Repeat([]byte{'x'}, 65536)))
	_, err = ToVecBE("", &over)
	require.ErrorIs(t, err, ErrStringTooLong)
}

func TestWrite_KeyLengthLimit(t *testing.T) {
	root := NewCompound[BigEndian]()
	root.Compound().Insert(string(bytes.Repeat([]byte{'k'}, 65536)), ByteValue[BigEndian](1))

	_, err := ToVecBE("", &root)
	require.ErrorIs(t, err, ErrStringTooLong)
}

func TestWrite_RootNameLengthLimit(t *testing.T) {
	root := NewCompound[BigEndian]()
	_, err := ToVecBE(string(bytes.Repeat([]byte{'n'}, 65536)), &root)
	require.ErrorIs(t, err, ErrStringTooLong)
}

// hugeList fakes a list longer than int32 can count to exercise the
// overflow check without allocating one.
type hugeList struct{}

func (hugeList) Len() int {
	n := math.MaxInt32
	return n + 1
}

func (hugeList) ElementKind() TagID { return TagByte }

func (hugeList) At(int) Value[BigEndian] { return nil }

func TestWrite_ListLengthOverflow(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("list length overflow requires 64-bit int")
	}

	enc := encoder[BigEndian]{w: io.Discard}
	err := enc.writeList(hugeList{})
	require.ErrorIs(t, err, ErrListLengthOverflow)
}

// mixedList violates homogeneity behind the List interface; the writer must
// re-check even though owned lists cannot be constructed this way.
type mixedList struct{}

func (mixedList) Len() int { return 2 }

func (mixedList) ElementKind() TagID { return TagByte }

func (mixedList) At(i int) Value[BigEndian] {
	if i == 0 {
		v := ByteValue[BigEndian](1)
		return &v
	}
	v := IntValue[BigEndian](2)
	return &v
}

func TestWrite_HeterogeneousListRejected(t *testing.T) {
	enc := encoder[BigEndian]{w: io.Discard}
	err := enc.writeList(mixedList{})
	require.ErrorIs(t, err, ErrHeterogeneousList)
}

// failingSink errors after n writes to exercise sink error propagation.
type failingSink struct {
	n int
}

func (s *failingSink) Write(p []byte) (int, error) {
	if s.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	s.n--
	return len(p), nil
}

func TestWrite_SinkErrorPropagates(t *testing.T) {
	doc, err := ReadBorrowed[BigEndian](fooDoc)
	require.NoError(t, err)

	for n := 0; n < 4; n++ {
		err := doc.WriteTo(&failingSink{n: n})
		require.ErrorIs(t, err, io.ErrClosedPipe, "budget %d", n)
	}
}

func TestAppend(t *testing.T) {
	root := NewCompound[BigEndian]()
	root.Compound().Insert("foo", ByteValue[BigEndian](42))

	out, err := Append[BigEndian]([]byte{0xAA}, "", &root)
	require.NoError(t, err)
	require.Equal(t, append([]byte{0xAA}, fooDoc...), out)
}

func BenchmarkWriteReadonly(b *testing.B) {
	data := benchDoc()
	doc, err := ReadBorrowed[BigEndian](data)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if err := doc.WriteTo(io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriteOwned(b *testing.B) {
	data := benchDoc()
	name, root, err := ReadOwned[BigEndian, BigEndian](data)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if err := Write[BigEndian](io.Discard, name, &root); err != nil {
			b.Fatal(err)
		}
	}
}
