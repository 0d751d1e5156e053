package nbt

import "bytes"

// Value is the scoped read interface shared by every representation. All
// generic algorithms in this package (writing, equality, dumping) are
// expressed against it, so they work identically on parsed Readonly trees,
// owned trees and views into owned trees.
//
// The As* accessors return the value and true when the kind matches, and the
// zero value and false otherwise.
type Value[E Order] interface {
	Kind() TagID
	AsByte() (int8, bool)
	AsShort() (int16, bool)
	AsInt() (int32, bool)
	AsLong() (int64, bool)
	AsFloat() (float32, bool)
	AsDouble() (float64, bool)

	// AsString returns the raw MUTF-8 bytes. Use DecodeString for text.
	AsString() ([]byte, bool)

	AsCompound() (Compound[E], bool)
	AsList() (List[E], bool)
	AsByteArray() (ByteArray, bool)
	AsIntArray() (IntArray, bool)
	AsLongArray() (LongArray, bool)
}

// Compound is the read view of a compound. Iteration order is source order
// for parsed trees and insertion order for owned trees. Get and Contains see
// the first occurrence of a key when malformed input carried duplicates;
// indexed access sees them all.
type Compound[E Order] interface {
	Len() int
	Get(key string) (Value[E], bool)
	Contains(key string) bool

	// KeyAt returns the raw MUTF-8 key of entry i. The slice must not be
	// mutated.
	KeyAt(i int) []byte
	At(i int) Value[E]
}

// List is the read view of a list. Every element's kind equals ElementKind;
// an empty list's element kind may be TagEnd.
type List[E Order] interface {
	Len() int
	ElementKind() TagID
	At(i int) Value[E]
}

// ByteArray is the read view of a TAG_Byte_Array.
type ByteArray interface {
	Len() int
	At(i int) int8

	// Raw returns the payload bytes. The slice must not be mutated.
	Raw() []byte
}

// IntArray is the read view of a TAG_Int_Array. Elements decode on demand in
// the tree's storage order.
type IntArray interface {
	Len() int
	At(i int) int32
	Raw() []byte
}

// LongArray is the read view of a TAG_Long_Array.
type LongArray interface {
	Len() int
	At(i int) int64
	Raw() []byte
}

// MutValue is the scoped write interface, implemented by the owned
// representation only. A borrowed or shared tree never satisfies it, so
// mutation of a zero-copy tree does not typecheck.
type MutValue[E Order] interface {
	Value[E]

	// Set replaces the node's contents in place. The change is visible
	// through every view of the containing tree.
	Set(v OwnedValue[E])

	AsCompoundMut() (MutCompound[E], bool)
	AsListMut() (MutList[E], bool)
	AsByteArrayMut() (MutByteArray, bool)
	AsIntArrayMut() (MutIntArray, bool)
	AsLongArrayMut() (MutLongArray, bool)
}

// MutCompound extends the compound view with mutation.
type MutCompound[E Order] interface {
	Compound[E]

	// GetMut returns a mutable view of the first entry with the given key.
	GetMut(key string) (*OwnedValue[E], bool)

	// Insert adds an entry, replacing the first occurrence of key if one
	// exists.
	Insert(key string, v OwnedValue[E])

	// Remove removes and returns the first occurrence of key.
	Remove(key string) (OwnedValue[E], bool)
}

// MutList extends the list view with mutation. Push and Set preserve list
// homogeneity and report ErrHeterogeneousList otherwise.
type MutList[E Order] interface {
	List[E]
	AtMut(i int) *OwnedValue[E]
	Push(v OwnedValue[E]) error
	Set(i int, v OwnedValue[E]) error
	RemoveAt(i int) OwnedValue[E]
}

// MutByteArray, MutIntArray and MutLongArray extend the array views with
// in-place element mutation.
type MutByteArray interface {
	ByteArray
	Set(i int, v int8)
}

type MutIntArray interface {
	IntArray
	Set(i int, v int32)
}

type MutLongArray interface {
	LongArray
	Set(i int, v int64)
}

// Equal reports structural equality of two values of the same byte order,
// regardless of representation. Compounds compare by key with
// first-occurrence-wins semantics, so entry order and duplicate shadowed
// entries do not affect the result; lists and arrays compare element-wise in
// index order.
func Equal[E Order](a, b Value[E]) bool {
	ka := a.Kind()
	if ka != b.Kind() {
		return false
	}

	switch ka {
	case TagEnd:
		return true
	case TagByte:
		x, _ := a.AsByte()
		y, _ := b.AsByte()
		return x == y
	case TagShort:
		x, _ := a.AsShort()
		y, _ := b.AsShort()
		return x == y
	case TagInt:
		x, _ := a.AsInt()
		y, _ := b.AsInt()
		return x == y
	case TagLong:
		x, _ := a.AsLong()
		y, _ := b.AsLong()
		return x == y
	case TagFloat:
		x, _ := a.AsFloat()
		y, _ := b.AsFloat()
		return x == y || (x != x && y != y) // NaN-insensitive
	case TagDouble:
		x, _ := a.AsDouble()
		y, _ := b.AsDouble()
		return x == y || (x != x && y != y)
	case TagString:
		x, _ := a.AsString()
		y, _ := b.AsString()
		return bytes.Equal(x, y)
	case TagByteArray:
		x, _ := a.AsByteArray()
		y, _ := b.AsByteArray()
		return bytes.Equal(x.Raw(), y.Raw())
	case TagIntArray:
		x, _ := a.AsIntArray()
		y, _ := b.AsIntArray()
		return bytes.Equal(x.Raw(), y.Raw())
	case TagLongArray:
		x, _ := a.AsLongArray()
		y, _ := b.AsLongArray()
		return bytes.Equal(x.Raw(), y.Raw())
	case TagList:
		x, _ := a.AsList()
		y, _ := b.AsList()
		if x.Len() != y.Len() {
			return false
		}
		if x.Len() > 0 && x.ElementKind() != y.ElementKind() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if !Equal(x.At(i), y.At(i)) {
				return false
			}
		}
		return true
	case TagCompound:
		x, _ := a.AsCompound()
		y, _ := b.AsCompound()
		return compoundSubset(x, y) && compoundSubset(y, x)
	}
	return false
}

// compoundSubset checks that every key of a maps to an equal value in b,
// comparing first occurrences on both sides. Lookups are by raw MUTF-8 key
// so no decoding happens during comparison.
func compoundSubset[E Order](a, b Compound[E]) bool {
	for i := 0; i < a.Len(); i++ {
		key := a.KeyAt(i)
		av, _ := getRaw(a, key)
		bv, ok := getRaw(b, key)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

// getRaw returns the first entry whose raw MUTF-8 key equals key.
func getRaw[E Order](c Compound[E], key []byte) (Value[E], bool) {
	for i := 0; i < c.Len(); i++ {
		if bytes.Equal(c.KeyAt(i), key) {
			return c.At(i), true
		}
	}
	return nil, false
}
