package nbt

import (
	"fmt"
	"io"
	"math"

	"github.com/scigolib/nbt/internal/mutf8"
)

const maxStringLen = math.MaxUint16

// Write serializes a value tree as a named root compound in the byte order
// E. Any representation satisfying the read interface can be written; a
// Readonly tree whose storage order equals E is emitted with bulk copies of
// its payload spans. The root value must be a compound.
func Write[E Order](w io.Writer, name string, root Value[E]) error {
	if root.Kind() != TagCompound {
		return fmt.Errorf("nbt: root value is %s, must be %s", root.Kind(), TagCompound)
	}

	enc := encoder[E]{w: w}
	if err := enc.writeByte(uint8(TagCompound)); err != nil {
		return err
	}
	if err := enc.writeStringPayload(mutf8.Encode(name)); err != nil {
		return err
	}
	return enc.writeValue(root)
}

// Append serializes like Write but into a byte slice, returning the
// extended slice.
func Append[E Order](dst []byte, name string, root Value[E]) ([]byte, error) {
	b := sliceSink{buf: dst}
	if err := Write[E](&b, name, root); err != nil {
		return dst, err
	}
	return b.buf, nil
}

type sliceSink struct {
	buf []byte
}

func (s *sliceSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

type encoder[E Order] struct {
	w       io.Writer
	scratch [8]byte
}

func (enc *encoder[E]) writeRaw(b []byte) error {
	if _, err := enc.w.Write(b); err != nil {
		return fmt.Errorf("nbt: sink write failed: %w", err)
	}
	return nil
}

func (enc *encoder[E]) writeByte(b uint8) error {
	enc.scratch[0] = b
	return enc.writeRaw(enc.scratch[:1])
}

func (enc *encoder[E]) writeU16(v uint16) error {
	var e E
	e.PutUint16(enc.scratch[:2], v)
	return enc.writeRaw(enc.scratch[:2])
}

func (enc *encoder[E]) writeI32(v int32) error {
	var e E
	e.PutUint32(enc.scratch[:4], uint32(v))
	return enc.writeRaw(enc.scratch[:4])
}

func (enc *encoder[E]) writeU64(v uint64) error {
	var e E
	e.PutUint64(enc.scratch[:8], v)
	return enc.writeRaw(enc.scratch[:8])
}

// writeStringPayload emits a length-prefixed MUTF-8 string.
func (enc *encoder[E]) writeStringPayload(b []byte) error {
	if len(b) > maxStringLen {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}
	if err := enc.writeU16(uint16(len(b))); err != nil {
		return err
	}
	return enc.writeRaw(b)
}

// writeValue emits the payload of v (the caller has emitted any tag and
// name). Readonly values short-circuit to verbatim span copies: a whole
// compound body or list payload is a single sink write.
func (enc *encoder[E]) writeValue(v Value[E]) error {
	if ro, ok := v.(Readonly[E]); ok {
		return enc.writeReadonly(ro)
	}

	switch v.Kind() {
	case TagByte:
		b, _ := v.AsByte()
		return enc.writeByte(uint8(b))
	case TagShort:
		s, _ := v.AsShort()
		return enc.writeU16(uint16(s))
	case TagInt:
		i, _ := v.AsInt()
		return enc.writeI32(i)
	case TagLong:
		l, _ := v.AsLong()
		return enc.writeU64(uint64(l))
	case TagFloat:
		f, _ := v.AsFloat()
		var e E
		e.PutUint32(enc.scratch[:4], math.Float32bits(f))
		return enc.writeRaw(enc.scratch[:4])
	case TagDouble:
		d, _ := v.AsDouble()
		return enc.writeU64(math.Float64bits(d))

	case TagString:
		b, _ := v.AsString()
		return enc.writeStringPayload(b)

	case TagByteArray:
		a, _ := v.AsByteArray()
		return enc.writeArray(a.Raw(), 1)
	case TagIntArray:
		a, _ := v.AsIntArray()
		return enc.writeArray(a.Raw(), 4)
	case TagLongArray:
		a, _ := v.AsLongArray()
		return enc.writeArray(a.Raw(), 8)

	case TagList:
		l, _ := v.AsList()
		return enc.writeList(l)

	case TagCompound:
		c, _ := v.AsCompound()
		return enc.writeCompound(c)
	}

	return fmt.Errorf("nbt: cannot write %s", v.Kind())
}

// writeReadonly copies the recorded payload spans. Storage order equals
// target order by construction (both are E), so every span is already wire
// format.
func (enc *encoder[E]) writeReadonly(v Readonly[E]) error {
	switch v.kind {
	case TagString:
		return enc.writeStringPayload(v.raw)

	case TagByteArray:
		return enc.writeArray(v.raw, 1)
	case TagIntArray:
		return enc.writeArray(v.raw, 4)
	case TagLongArray:
		return enc.writeArray(v.raw, 8)

	case TagList:
		if err := enc.writeByte(uint8(v.list.elem)); err != nil {
			return err
		}
		if err := enc.writeI32(int32(v.list.count)); err != nil {
			return err
		}
		return enc.writeRaw(v.raw)

	case TagCompound:
		// The span includes the terminating TagEnd.
		return enc.writeRaw(v.raw)

	default:
		return enc.writeRaw(v.raw)
	}
}

func (enc *encoder[E]) writeArray(raw []byte, width int) error {
	n := len(raw) / width
	if n > math.MaxInt32 {
		return ErrListLengthOverflow
	}
	if err := enc.writeI32(int32(n)); err != nil {
		return err
	}
	return enc.writeRaw(raw)
}

func (enc *encoder[E]) writeList(l List[E]) error {
	n := l.Len()
	if n > math.MaxInt32 {
		return ErrListLengthOverflow
	}

	elem := l.ElementKind()
	if err := enc.writeByte(uint8(elem)); err != nil {
		return err
	}
	if err := enc.writeI32(int32(n)); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		v := l.At(i)
		// Homogeneity is a construction invariant of owned lists, but a
		// hand-rolled Value implementation can violate it; re-check.
		if v.Kind() != elem {
			return fmt.Errorf("%w: element %d is %s, list is %s", ErrHeterogeneousList, i, v.Kind(), elem)
		}
		if err := enc.writeValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (enc *encoder[E]) writeCompound(c Compound[E]) error {
	for i := 0; i < c.Len(); i++ {
		v := c.At(i)
		if err := enc.writeByte(uint8(v.Kind())); err != nil {
			return err
		}
		if err := enc.writeStringPayload(c.KeyAt(i)); err != nil {
			return err
		}
		if err := enc.writeValue(v); err != nil {
			return err
		}
	}
	return enc.writeByte(uint8(TagEnd))
}
