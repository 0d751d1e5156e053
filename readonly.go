package nbt

import (
	"bytes"
	"math"

	"github.com/scigolib/nbt/internal/mutf8"
)

// Readonly is a value backed by the source buffer. Leaf payloads are raw
// byte slices decoded on demand; compounds and lists carry indices computed
// once by the parser, so child access never re-validates framing. Readonly
// values are plain structs holding slices of the buffer: copying one is
// cheap and reading from several goroutines at once is safe.
//
// A Readonly value is only valid while its source buffer is; the Document
// that produced it keeps the buffer (or the SharedBytes handle) alive.
type Readonly[E Order] struct {
	kind TagID

	// raw is the payload span. For scalars, strings and arrays it is the
	// exact payload; for a compound it is the body including the closing
	// TagEnd byte; for a list it is the element payload area after the
	// element tag and count. The writer copies these spans verbatim.
	raw []byte

	comp *compoundIndex[E]
	list *listIndex[E]
}

type compoundIndex[E Order] struct {
	entries []compoundEntry[E]
}

type compoundEntry[E Order] struct {
	key []byte // raw MUTF-8
	val Readonly[E]
}

type listIndex[E Order] struct {
	elem  TagID
	count int

	// elems holds the parsed element nodes for variable-size element tags,
	// making At O(1). It is nil for fixed-size elements, where At slices the
	// payload arithmetically instead.
	elems []Readonly[E]
}

// Kind returns the tag of the value.
func (v Readonly[E]) Kind() TagID { return v.kind }

// AsByte returns the value if it is a TAG_Byte.
func (v Readonly[E]) AsByte() (int8, bool) {
	if v.kind != TagByte {
		return 0, false
	}
	return int8(v.raw[0]), true
}

// AsShort returns the value if it is a TAG_Short.
func (v Readonly[E]) AsShort() (int16, bool) {
	if v.kind != TagShort {
		return 0, false
	}
	var e E
	return int16(e.Uint16(v.raw)), true
}

// AsInt returns the value if it is a TAG_Int.
func (v Readonly[E]) AsInt() (int32, bool) {
	if v.kind != TagInt {
		return 0, false
	}
	var e E
	return int32(e.Uint32(v.raw)), true
}

// AsLong returns the value if it is a TAG_Long.
func (v Readonly[E]) AsLong() (int64, bool) {
	if v.kind != TagLong {
		return 0, false
	}
	var e E
	return int64(e.Uint64(v.raw)), true
}

// AsFloat returns the value if it is a TAG_Float.
func (v Readonly[E]) AsFloat() (float32, bool) {
	if v.kind != TagFloat {
		return 0, false
	}
	var e E
	return math.Float32frombits(e.Uint32(v.raw)), true
}

// AsDouble returns the value if it is a TAG_Double.
func (v Readonly[E]) AsDouble() (float64, bool) {
	if v.kind != TagDouble {
		return 0, false
	}
	var e E
	return math.Float64frombits(e.Uint64(v.raw)), true
}

// AsString returns the raw MUTF-8 bytes if the value is a TAG_String. The
// slice aliases the source buffer; use DecodeString for text.
func (v Readonly[E]) AsString() ([]byte, bool) {
	if v.kind != TagString {
		return nil, false
	}
	return v.raw, true
}

// AsCompound returns the compound view if the value is a TAG_Compound.
func (v Readonly[E]) AsCompound() (Compound[E], bool) {
	if v.kind != TagCompound {
		return nil, false
	}
	return roCompound[E]{v.comp}, true
}

// AsList returns the list view if the value is a TAG_List.
func (v Readonly[E]) AsList() (List[E], bool) {
	if v.kind != TagList {
		return nil, false
	}
	return roList[E]{idx: v.list, raw: v.raw}, true
}

// AsByteArray returns the array view if the value is a TAG_Byte_Array.
func (v Readonly[E]) AsByteArray() (ByteArray, bool) {
	if v.kind != TagByteArray {
		return nil, false
	}
	return byteArrayView{v.raw}, true
}

// AsIntArray returns the array view if the value is a TAG_Int_Array.
func (v Readonly[E]) AsIntArray() (IntArray, bool) {
	if v.kind != TagIntArray {
		return nil, false
	}
	return intArrayView[E]{v.raw}, true
}

// AsLongArray returns the array view if the value is a TAG_Long_Array.
func (v Readonly[E]) AsLongArray() (LongArray, bool) {
	if v.kind != TagLongArray {
		return nil, false
	}
	return longArrayView[E]{v.raw}, true
}

// Get returns the first child with the given key if the value is a compound.
// Unlike the Compound interface, the result keeps the concrete Readonly type
// so chained lookups stay allocation-free.
func (v Readonly[E]) Get(key string) (Readonly[E], bool) {
	if v.kind != TagCompound {
		return Readonly[E]{}, false
	}
	k := encodeKey(key)
	for i := range v.comp.entries {
		if bytes.Equal(v.comp.entries[i].key, k) {
			return v.comp.entries[i].val, true
		}
	}
	return Readonly[E]{}, false
}

// encodeKey converts a lookup key to its wire form. ASCII keys — the
// overwhelmingly common case — are their own encoding.
func encodeKey(key string) []byte {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 || key[i] >= 0x80 {
			return mutf8.Encode(key)
		}
	}
	return []byte(key)
}

// roCompound adapts a compound index to the Compound interface.
type roCompound[E Order] struct {
	idx *compoundIndex[E]
}

func (c roCompound[E]) Len() int { return len(c.idx.entries) }

func (c roCompound[E]) Get(key string) (Value[E], bool) {
	k := encodeKey(key)
	for i := range c.idx.entries {
		if bytes.Equal(c.idx.entries[i].key, k) {
			return c.idx.entries[i].val, true
		}
	}
	return nil, false
}

func (c roCompound[E]) Contains(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c roCompound[E]) KeyAt(i int) []byte { return c.idx.entries[i].key }

func (c roCompound[E]) At(i int) Value[E] { return c.idx.entries[i].val }

// roList adapts a list index to the List interface.
type roList[E Order] struct {
	idx *listIndex[E]
	raw []byte
}

func (l roList[E]) Len() int { return l.idx.count }

func (l roList[E]) ElementKind() TagID { return l.idx.elem }

func (l roList[E]) At(i int) Value[E] { return l.at(i) }

func (l roList[E]) at(i int) Readonly[E] {
	if l.idx.elems != nil {
		return l.idx.elems[i]
	}
	s := l.idx.elem.scalarSize()
	return Readonly[E]{kind: l.idx.elem, raw: l.raw[i*s : (i+1)*s : (i+1)*s]}
}

// byteArrayView serves both representations: readonly values and owned
// values store the same payload layout.
type byteArrayView struct {
	raw []byte
}

func (a byteArrayView) Len() int { return len(a.raw) }

func (a byteArrayView) At(i int) int8 { return int8(a.raw[i]) }

func (a byteArrayView) Raw() []byte { return a.raw }

type intArrayView[E Order] struct {
	raw []byte
}

func (a intArrayView[E]) Len() int { return len(a.raw) / 4 }

func (a intArrayView[E]) At(i int) int32 {
	var e E
	return int32(e.Uint32(a.raw[i*4:]))
}

func (a intArrayView[E]) Raw() []byte { return a.raw }

type longArrayView[E Order] struct {
	raw []byte
}

func (a longArrayView[E]) Len() int { return len(a.raw) / 8 }

func (a longArrayView[E]) At(i int) int64 {
	var e E
	return int64(e.Uint64(a.raw[i*8:]))
}

func (a longArrayView[E]) Raw() []byte { return a.raw }
