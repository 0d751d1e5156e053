package nbt

import (
	"bytes"
	"math"

	"github.com/scigolib/nbt/internal/mutf8"
)

// OwnedValue is a fully materialized value that owns all of its storage.
// Scalars are held host-native and byte-swapped at write time; strings and
// dense arrays keep their wire payload (arrays in the storage order E);
// compounds and lists hold their children by pointer, so a copy of an
// OwnedValue is a view of the same containers.
//
// Mutation goes through pointers: *OwnedValue implements MutValue, and the
// container types implement MutCompound and MutList. A single owned tree
// must not be mutated from more than one goroutine; concurrent reads are
// fine.
type OwnedValue[E Order] struct {
	kind   TagID
	scalar uint64
	bytes  []byte // TAG_String: MUTF-8; array tags: payload in E order
	comp   *OwnedCompound[E]
	list   *OwnedList[E]
}

// Scalar constructors.

// ByteValue returns an owned TAG_Byte.
func ByteValue[E Order](v int8) OwnedValue[E] {
	return OwnedValue[E]{kind: TagByte, scalar: uint64(uint8(v))}
}

// ShortValue returns an owned TAG_Short.
func ShortValue[E Order](v int16) OwnedValue[E] {
	return OwnedValue[E]{kind: TagShort, scalar: uint64(uint16(v))}
}

// IntValue returns an owned TAG_Int.
func IntValue[E Order](v int32) OwnedValue[E] {
	return OwnedValue[E]{kind: TagInt, scalar: uint64(uint32(v))}
}

// LongValue returns an owned TAG_Long.
func LongValue[E Order](v int64) OwnedValue[E] {
	return OwnedValue[E]{kind: TagLong, scalar: uint64(v)}
}

// FloatValue returns an owned TAG_Float.
func FloatValue[E Order](v float32) OwnedValue[E] {
	return OwnedValue[E]{kind: TagFloat, scalar: uint64(math.Float32bits(v))}
}

// DoubleValue returns an owned TAG_Double.
func DoubleValue[E Order](v float64) OwnedValue[E] {
	return OwnedValue[E]{kind: TagDouble, scalar: math.Float64bits(v)}
}

// StringValue returns an owned TAG_String holding the MUTF-8 encoding of s.
func StringValue[E Order](s string) OwnedValue[E] {
	return OwnedValue[E]{kind: TagString, bytes: mutf8.Encode(s)}
}

// RawStringValue returns an owned TAG_String from bytes that are already
// MUTF-8. The slice is adopted, not copied.
func RawStringValue[E Order](b []byte) OwnedValue[E] {
	return OwnedValue[E]{kind: TagString, bytes: b}
}

// ByteArrayValue returns an owned TAG_Byte_Array with a copy of v.
func ByteArrayValue[E Order](v []byte) OwnedValue[E] {
	return OwnedValue[E]{kind: TagByteArray, bytes: bytes.Clone(v)}
}

// IntArrayValue returns an owned TAG_Int_Array, encoding the elements in the
// storage order E.
func IntArrayValue[E Order](v []int32) OwnedValue[E] {
	var e E
	raw := make([]byte, 4*len(v))
	for i, x := range v {
		e.PutUint32(raw[i*4:], uint32(x))
	}
	return OwnedValue[E]{kind: TagIntArray, bytes: raw}
}

// LongArrayValue returns an owned TAG_Long_Array, encoding the elements in
// the storage order E.
func LongArrayValue[E Order](v []int64) OwnedValue[E] {
	var e E
	raw := make([]byte, 8*len(v))
	for i, x := range v {
		e.PutUint64(raw[i*8:], uint64(x))
	}
	return OwnedValue[E]{kind: TagLongArray, bytes: raw}
}

// NewCompound returns an owned empty TAG_Compound.
func NewCompound[E Order]() OwnedValue[E] {
	return OwnedValue[E]{kind: TagCompound, comp: &OwnedCompound[E]{}}
}

// NewList returns an owned empty TAG_List with the given element tag. Use
// TagEnd for a list whose element kind should be adopted from the first
// Push.
func NewList[E Order](elem TagID) OwnedValue[E] {
	return OwnedValue[E]{kind: TagList, list: &OwnedList[E]{elem: elem}}
}

// Kind returns the tag of the value.
func (v *OwnedValue[E]) Kind() TagID { return v.kind }

// AsByte returns the value if it is a TAG_Byte.
func (v *OwnedValue[E]) AsByte() (int8, bool) {
	if v.kind != TagByte {
		return 0, false
	}
	return int8(uint8(v.scalar)), true
}

// AsShort returns the value if it is a TAG_Short.
func (v *OwnedValue[E]) AsShort() (int16, bool) {
	if v.kind != TagShort {
		return 0, false
	}
	return int16(uint16(v.scalar)), true
}

// AsInt returns the value if it is a TAG_Int.
func (v *OwnedValue[E]) AsInt() (int32, bool) {
	if v.kind != TagInt {
		return 0, false
	}
	return int32(uint32(v.scalar)), true
}

// AsLong returns the value if it is a TAG_Long.
func (v *OwnedValue[E]) AsLong() (int64, bool) {
	if v.kind != TagLong {
		return 0, false
	}
	return int64(v.scalar), true
}

// AsFloat returns the value if it is a TAG_Float.
func (v *OwnedValue[E]) AsFloat() (float32, bool) {
	if v.kind != TagFloat {
		return 0, false
	}
	return math.Float32frombits(uint32(v.scalar)), true
}

// AsDouble returns the value if it is a TAG_Double.
func (v *OwnedValue[E]) AsDouble() (float64, bool) {
	if v.kind != TagDouble {
		return 0, false
	}
	return math.Float64frombits(v.scalar), true
}

// AsString returns the raw MUTF-8 bytes if the value is a TAG_String.
func (v *OwnedValue[E]) AsString() ([]byte, bool) {
	if v.kind != TagString {
		return nil, false
	}
	return v.bytes, true
}

// AsCompound returns the compound view if the value is a TAG_Compound.
func (v *OwnedValue[E]) AsCompound() (Compound[E], bool) {
	if v.kind != TagCompound {
		return nil, false
	}
	return v.comp, true
}

// AsList returns the list view if the value is a TAG_List.
func (v *OwnedValue[E]) AsList() (List[E], bool) {
	if v.kind != TagList {
		return nil, false
	}
	return v.list, true
}

// AsByteArray returns the array view if the value is a TAG_Byte_Array.
func (v *OwnedValue[E]) AsByteArray() (ByteArray, bool) {
	if v.kind != TagByteArray {
		return nil, false
	}
	return byteArrayView{v.bytes}, true
}

// AsIntArray returns the array view if the value is a TAG_Int_Array.
func (v *OwnedValue[E]) AsIntArray() (IntArray, bool) {
	if v.kind != TagIntArray {
		return nil, false
	}
	return intArrayView[E]{v.bytes}, true
}

// AsLongArray returns the array view if the value is a TAG_Long_Array.
func (v *OwnedValue[E]) AsLongArray() (LongArray, bool) {
	if v.kind != TagLongArray {
		return nil, false
	}
	return longArrayView[E]{v.bytes}, true
}

// Set replaces the node's contents in place.
func (v *OwnedValue[E]) Set(n OwnedValue[E]) { *v = n }

// AsCompoundMut returns the mutable compound view.
func (v *OwnedValue[E]) AsCompoundMut() (MutCompound[E], bool) {
	if v.kind != TagCompound {
		return nil, false
	}
	return v.comp, true
}

// AsListMut returns the mutable list view.
func (v *OwnedValue[E]) AsListMut() (MutList[E], bool) {
	if v.kind != TagList {
		return nil, false
	}
	return v.list, true
}

// AsByteArrayMut returns the mutable array view.
func (v *OwnedValue[E]) AsByteArrayMut() (MutByteArray, bool) {
	if v.kind != TagByteArray {
		return nil, false
	}
	return mutByteArrayView{v.bytes}, true
}

// AsIntArrayMut returns the mutable array view.
func (v *OwnedValue[E]) AsIntArrayMut() (MutIntArray, bool) {
	if v.kind != TagIntArray {
		return nil, false
	}
	return mutIntArrayView[E]{v.bytes}, true
}

// AsLongArrayMut returns the mutable array view.
func (v *OwnedValue[E]) AsLongArrayMut() (MutLongArray, bool) {
	if v.kind != TagLongArray {
		return nil, false
	}
	return mutLongArrayView[E]{v.bytes}, true
}

// Compound returns the concrete compound container, or nil if the value is
// not a TAG_Compound. Direct container access is the unscoped write tier:
// the pointer stays valid for the life of the tree.
func (v *OwnedValue[E]) Compound() *OwnedCompound[E] {
	if v.kind != TagCompound {
		return nil
	}
	return v.comp
}

// List returns the concrete list container, or nil if the value is not a
// TAG_List.
func (v *OwnedValue[E]) List() *OwnedList[E] {
	if v.kind != TagList {
		return nil
	}
	return v.list
}

// OwnedCompound is the container behind an owned TAG_Compound: an
// insertion-ordered sequence of key/value entries with a first-occurrence
// lookup index. Keys are stored in their MUTF-8 wire form.
type OwnedCompound[E Order] struct {
	keys  [][]byte
	vals  []OwnedValue[E]
	index map[string]int
}

// Len returns the number of entries, duplicates included.
func (c *OwnedCompound[E]) Len() int { return len(c.keys) }

// Get returns the first entry with the given key.
func (c *OwnedCompound[E]) Get(key string) (Value[E], bool) {
	v, ok := c.GetMut(key)
	if !ok {
		return nil, false
	}
	return v, true
}

// GetMut returns a mutable view of the first entry with the given key.
func (c *OwnedCompound[E]) GetMut(key string) (*OwnedValue[E], bool) {
	i, ok := c.index[string(encodeKey(key))]
	if !ok {
		return nil, false
	}
	return &c.vals[i], true
}

// Contains reports whether an entry with the given key exists.
func (c *OwnedCompound[E]) Contains(key string) bool {
	_, ok := c.index[string(encodeKey(key))]
	return ok
}

// KeyAt returns the raw MUTF-8 key of entry i.
func (c *OwnedCompound[E]) KeyAt(i int) []byte { return c.keys[i] }

// At returns the value of entry i.
func (c *OwnedCompound[E]) At(i int) Value[E] { return &c.vals[i] }

// AtMut returns a mutable view of the value of entry i.
func (c *OwnedCompound[E]) AtMut(i int) *OwnedValue[E] { return &c.vals[i] }

// Insert adds an entry, replacing the first occurrence of key if one
// already exists.
func (c *OwnedCompound[E]) Insert(key string, v OwnedValue[E]) {
	k := encodeKey(key)
	if i, ok := c.index[string(k)]; ok {
		c.vals[i] = v
		return
	}
	c.appendEntry(k, v)
}

// appendEntry appends without replacing, recording the index only for the
// first occurrence of a key. Materialization uses it to preserve duplicate
// keys found in malformed input.
func (c *OwnedCompound[E]) appendEntry(key []byte, v OwnedValue[E]) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if _, ok := c.index[string(key)]; !ok {
		c.index[string(key)] = len(c.keys)
	}
	c.keys = append(c.keys, key)
	c.vals = append(c.vals, v)
}

// Remove removes and returns the first occurrence of key. If a duplicate of
// the key existed, it becomes visible to Get afterwards.
func (c *OwnedCompound[E]) Remove(key string) (OwnedValue[E], bool) {
	i, ok := c.index[string(encodeKey(key))]
	if !ok {
		return OwnedValue[E]{}, false
	}
	v := c.vals[i]
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	c.vals = append(c.vals[:i], c.vals[i+1:]...)
	c.reindex()
	return v, true
}

func (c *OwnedCompound[E]) reindex() {
	c.index = make(map[string]int, len(c.keys))
	for i, k := range c.keys {
		if _, ok := c.index[string(k)]; !ok {
			c.index[string(k)] = i
		}
	}
}

// OwnedList is the container behind an owned TAG_List. Elements are
// homogeneous; a list created with TagEnd adopts the kind of its first
// element.
type OwnedList[E Order] struct {
	elem TagID
	vals []OwnedValue[E]
}

// Len returns the number of elements.
func (l *OwnedList[E]) Len() int { return len(l.vals) }

// ElementKind returns the declared element tag.
func (l *OwnedList[E]) ElementKind() TagID { return l.elem }

// At returns element i.
func (l *OwnedList[E]) At(i int) Value[E] { return &l.vals[i] }

// AtMut returns a mutable view of element i.
func (l *OwnedList[E]) AtMut(i int) *OwnedValue[E] { return &l.vals[i] }

// Push appends an element, reporting ErrHeterogeneousList if its kind does
// not match the list's element tag.
func (l *OwnedList[E]) Push(v OwnedValue[E]) error {
	if l.elem == TagEnd && len(l.vals) == 0 {
		l.elem = v.kind
	}
	if v.kind != l.elem {
		return ErrHeterogeneousList
	}
	l.vals = append(l.vals, v)
	return nil
}

// Set replaces element i, reporting ErrHeterogeneousList on a kind
// mismatch.
func (l *OwnedList[E]) Set(i int, v OwnedValue[E]) error {
	if v.kind != l.elem {
		return ErrHeterogeneousList
	}
	l.vals[i] = v
	return nil
}

// RemoveAt removes and returns element i.
func (l *OwnedList[E]) RemoveAt(i int) OwnedValue[E] {
	v := l.vals[i]
	l.vals = append(l.vals[:i], l.vals[i+1:]...)
	return v
}

// mutByteArrayView and friends alias an owned array payload for in-place
// element mutation.
type mutByteArrayView struct {
	raw []byte
}

func (a mutByteArrayView) Len() int { return len(a.raw) }

func (a mutByteArrayView) At(i int) int8 { return int8(a.raw[i]) }

func (a mutByteArrayView) Raw() []byte { return a.raw }

func (a mutByteArrayView) Set(i int, v int8) { a.raw[i] = byte(v) }

type mutIntArrayView[E Order] struct {
	raw []byte
}

func (a mutIntArrayView[E]) Len() int { return len(a.raw) / 4 }

func (a mutIntArrayView[E]) At(i int) int32 {
	var e E
	return int32(e.Uint32(a.raw[i*4:]))
}

func (a mutIntArrayView[E]) Raw() []byte { return a.raw }

func (a mutIntArrayView[E]) Set(i int, v int32) {
	var e E
	e.PutUint32(a.raw[i*4:], uint32(v))
}

type mutLongArrayView[E Order] struct {
	raw []byte
}

func (a mutLongArrayView[E]) Len() int { return len(a.raw) / 8 }

func (a mutLongArrayView[E]) At(i int) int64 {
	var e E
	return int64(e.Uint64(a.raw[i*8:]))
}

func (a mutLongArrayView[E]) Raw() []byte { return a.raw }

func (a mutLongArrayView[E]) Set(i int, v int64) {
	var e E
	e.PutUint64(a.raw[i*8:], uint64(v))
}
