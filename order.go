package nbt

import "encoding/binary"

// Order is the byte order of a value tree, carried as a type parameter so
// multi-byte decoding inside accessor loops compiles to direct calls with no
// runtime branch. The two implementations are zero-size and also satisfy
// binary.ByteOrder.
type Order interface {
	Uint16(b []byte) uint16
	Uint32(b []byte) uint32
	Uint64(b []byte) uint64
	PutUint16(b []byte, v uint16)
	PutUint32(b []byte, v uint32)
	PutUint64(b []byte, v uint64)
	String() string
}

// BigEndian decodes and encodes multi-byte payloads most significant byte
// first. Java-edition NBT is big-endian.
type BigEndian struct{}

// LittleEndian decodes and encodes multi-byte payloads least significant byte
// first. Bedrock-edition NBT is little-endian.
type LittleEndian struct{}

func (BigEndian) Uint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func (BigEndian) Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func (BigEndian) Uint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

func (BigEndian) PutUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func (BigEndian) PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func (BigEndian) PutUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

func (BigEndian) String() string { return "BigEndian" }

func (LittleEndian) Uint16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func (LittleEndian) Uint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func (LittleEndian) Uint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func (LittleEndian) PutUint16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func (LittleEndian) PutUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func (LittleEndian) PutUint64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

func (LittleEndian) String() string { return "LittleEndian" }

// sameOrder reports whether two order type parameters resolve to the same
// byte order. Both implementations are zero-size comparable structs, so the
// interface comparison reduces to a dynamic type check.
func sameOrder[A, B Order]() bool {
	var a A
	var b B
	return Order(a) == Order(b)
}
