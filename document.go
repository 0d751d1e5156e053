// Package nbt reads and writes the Named Binary Tag format in pure Go.
// It offers three representations of a value tree behind one read
// interface: a borrowed tree that points into the caller's buffer, a shared
// tree holding an immutable buffer handle, and an owned tree materialized
// for mutation. Both byte orders are supported and are selected at the type
// level, so decoding carries no per-access branching.
//
// Parsing is a single validating pass that indexes container framing and
// leaves every leaf payload undecoded until a typed accessor asks for it.
package nbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scigolib/nbt/internal/mutf8"
)

// SharedBytes is an immutable handle on an NBT buffer. Values parsed from it
// alias the buffer freely; the garbage collector keeps it alive for as long
// as any derived value exists, which makes documents and their values safe
// to hand across goroutines without further bookkeeping.
type SharedBytes struct {
	data []byte
}

// ShareBytes adopts b without copying. The caller must not mutate b
// afterwards.
func ShareBytes(b []byte) SharedBytes {
	return SharedBytes{data: b}
}

// CopyBytes copies b into a fresh buffer the handle owns outright.
func CopyBytes(b []byte) SharedBytes {
	return SharedBytes{data: bytes.Clone(b)}
}

// Len returns the buffer length.
func (s SharedBytes) Len() int { return len(s.data) }

// Bytes returns the underlying buffer. It must not be mutated.
func (s SharedBytes) Bytes() []byte { return s.data }

// Document is a parsed NBT document: the root compound, its name, and the
// buffer the tree points into.
type Document[E Order] struct {
	data     []byte
	name     []byte
	root     Readonly[E]
	trailing []byte
}

// ReadBorrowed parses a single NBT document from data without copying any
// payload. The returned document and every value reached from it alias
// data; the caller must not mutate it while they are in use.
func ReadBorrowed[E Order](data []byte) (*Document[E], error) {
	return parseDocument[E](data, ParseOptions{})
}

// ReadBorrowedOptions is ReadBorrowed with explicit options.
func ReadBorrowedOptions[E Order](data []byte, opts ParseOptions) (*Document[E], error) {
	return parseDocument[E](data, opts)
}

// ReadShared parses a document from a shared buffer handle. The handle's
// immutability contract makes the resulting values safe to clone and read
// from any goroutine.
func ReadShared[E Order](b SharedBytes) (*Document[E], error) {
	return parseDocument[E](b.data, ParseOptions{})
}

// ReadSharedOptions is ReadShared with explicit options.
func ReadSharedOptions[E Order](b SharedBytes, opts ParseOptions) (*Document[E], error) {
	return parseDocument[E](b.data, opts)
}

// ReadOwned parses data in the byte order Src and materializes an owned tree
// stored in the byte order Dst, returning the decoded root name and the
// owned root compound. Nothing in the result references data.
func ReadOwned[Src, Dst Order](data []byte) (string, OwnedValue[Dst], error) {
	doc, err := ReadBorrowed[Src](data)
	if err != nil {
		return "", OwnedValue[Dst]{}, err
	}
	name, err := doc.NameText()
	if err != nil {
		return "", OwnedValue[Dst]{}, err
	}
	return name, Materialize[Src, Dst](doc.root), nil
}

// Name returns the root compound's name as raw MUTF-8 bytes.
func (d *Document[E]) Name() []byte { return d.name }

// NameText decodes the root compound's name.
func (d *Document[E]) NameText() (string, error) {
	return DecodeString(d.name)
}

// Root returns the root compound.
func (d *Document[E]) Root() Readonly[E] { return d.root }

// Trailing returns the bytes after the root compound's terminator. It is
// empty for a document that was exactly one NBT value.
func (d *Document[E]) Trailing() []byte { return d.trailing }

// String renders the document as SNBT-flavoured text: the quoted root name,
// a colon, and the root compound per Dump. Intended for debugging output,
// not for serialization.
func (d *Document[E]) String() string {
	return quoteString(d.name) + ":" + Dump[E](d.root)
}

// WriteTo re-serializes the document. Because the tree is Readonly in the
// document's own byte order, this reduces to copying the recorded spans and
// reproduces the source bytes exactly (minus any trailing data).
func (d *Document[E]) WriteTo(w io.Writer) error {
	enc := encoder[E]{w: w}
	if err := enc.writeByte(uint8(TagCompound)); err != nil {
		return err
	}
	if err := enc.writeStringPayload(d.name); err != nil {
		return err
	}
	return enc.writeValue(Value[E](d.root))
}

// DecodeString converts MUTF-8 bytes — as returned by AsString, KeyAt or
// Name — to a Go string. It reports ErrStringNotMutf8 on malformed input.
func DecodeString(b []byte) (string, error) {
	s, err := mutf8.Decode(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStringNotMutf8, err)
	}
	return s, nil
}

// EncodeString converts a Go string to MUTF-8 bytes.
func EncodeString(s string) []byte {
	return mutf8.Encode(s)
}

// ValidString reports whether b is well-formed MUTF-8 without decoding it.
func ValidString(b []byte) bool {
	return mutf8.Valid(b)
}
