package nbt

import (
	"bytes"
	"fmt"
	"io"
)

// Convenience pairs wrapping the generic entry points with a fixed byte
// order. Serialization-framework adapters bind to these so they need no
// generics of their own.

// ToVecBE serializes a named root compound as big-endian NBT bytes.
func ToVecBE(name string, root Value[BigEndian]) ([]byte, error) {
	return toVec[BigEndian](name, root)
}

// ToVecLE serializes a named root compound as little-endian NBT bytes.
func ToVecLE(name string, root Value[LittleEndian]) ([]byte, error) {
	return toVec[LittleEndian](name, root)
}

func toVec[E Order](name string, root Value[E]) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write[E](&buf, name, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromSliceBE parses a big-endian NBT document without copying payloads.
func FromSliceBE(data []byte) (*Document[BigEndian], error) {
	return ReadBorrowed[BigEndian](data)
}

// FromSliceLE parses a little-endian NBT document without copying payloads.
func FromSliceLE(data []byte) (*Document[LittleEndian], error) {
	return ReadBorrowed[LittleEndian](data)
}

// ToWriterBE serializes a named root compound to w in big-endian order.
func ToWriterBE(w io.Writer, name string, root Value[BigEndian]) error {
	return Write[BigEndian](w, name, root)
}

// ToWriterLE serializes a named root compound to w in little-endian order.
func ToWriterLE(w io.Writer, name string, root Value[LittleEndian]) error {
	return Write[LittleEndian](w, name, root)
}

// FromReaderBE slurps r and parses it as a big-endian document. The
// document owns the buffer, so it outlives the reader.
func FromReaderBE(r io.Reader) (*Document[BigEndian], error) {
	return fromReader[BigEndian](r)
}

// FromReaderLE slurps r and parses it as a little-endian document.
func FromReaderLE(r io.Reader) (*Document[LittleEndian], error) {
	return fromReader[LittleEndian](r)
}

func fromReader[E Order](r io.Reader) (*Document[E], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("nbt: source read failed: %w", err)
	}
	return ReadShared[E](ShareBytes(data))
}
