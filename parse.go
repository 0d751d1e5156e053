package nbt

import (
	"fmt"

	"github.com/scigolib/nbt/internal/utils"
)

// DefaultMaxDepth is the container nesting cap applied when ParseOptions
// leaves MaxDepth zero. It bounds parser recursion on adversarial input.
const DefaultMaxDepth = 512

// ParseOptions tunes the parser. The zero value is the default behavior:
// trailing bytes after the root compound are permitted and exposed through
// Document.Trailing, and nesting is capped at DefaultMaxDepth.
type ParseOptions struct {
	// StrictTrailing makes bytes after the root compound's terminator an
	// ErrTrailingData error instead of being ignored.
	StrictTrailing bool

	// MaxDepth overrides the nesting cap when positive.
	MaxDepth int
}

func (o ParseOptions) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// parseDocument runs the single forward pass over data. It validates framing
// and records container indices; leaf payloads are sliced, never decoded.
func parseDocument[E Order](data []byte, opts ParseOptions) (*Document[E], error) {
	c := &cursor[E]{buf: data}

	tag, err := c.takeU8()
	if err != nil {
		return nil, err
	}
	if TagID(tag) != TagCompound {
		return nil, errAt(0, fmt.Errorf("%w: root tag 0x%02x, want TAG_Compound", ErrInvalidTag, tag))
	}

	name, err := takeString(c)
	if err != nil {
		return nil, err
	}

	root, err := parseCompound(c, 1, opts.maxDepth())
	if err != nil {
		return nil, err
	}

	trailing := data[c.off:]
	if opts.StrictTrailing && len(trailing) > 0 {
		return nil, errAt(c.off, ErrTrailingData)
	}

	return &Document[E]{
		data:     data,
		name:     name,
		root:     root,
		trailing: trailing,
	}, nil
}

// takeString reads a uint16 length prefix and slices the MUTF-8 bytes.
func takeString[E Order](c *cursor[E]) ([]byte, error) {
	n, err := c.takeU16()
	if err != nil {
		return nil, err
	}
	return c.takeSlice(int(n))
}

func parseValue[E Order](c *cursor[E], tag TagID, depth, maxDepth int) (Readonly[E], error) {
	if s := tag.scalarSize(); s > 0 {
		raw, err := c.takeSlice(s)
		if err != nil {
			return Readonly[E]{}, err
		}
		return Readonly[E]{kind: tag, raw: raw}, nil
	}

	switch tag {
	case TagString:
		raw, err := takeString(c)
		if err != nil {
			return Readonly[E]{}, err
		}
		return Readonly[E]{kind: TagString, raw: raw}, nil

	case TagByteArray, TagIntArray, TagLongArray:
		raw, err := takeArray(c, tag.arrayElemSize())
		if err != nil {
			return Readonly[E]{}, err
		}
		return Readonly[E]{kind: tag, raw: raw}, nil

	case TagList:
		return parseList(c, depth, maxDepth)

	case TagCompound:
		return parseCompound(c, depth, maxDepth)

	default:
		return Readonly[E]{}, errAt(c.off, fmt.Errorf("%w: 0x%02x", ErrInvalidTag, uint8(tag)))
	}
}

// takeArray reads an int32 element count and slices count*elemSize payload
// bytes. The span multiplication is overflow-checked before it is compared
// against the remaining input.
func takeArray[E Order](c *cursor[E], elemSize int) ([]byte, error) {
	lenOff := c.off
	n, err := c.takeI32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errAt(lenOff, ErrNegativeLength)
	}

	span, err := utils.ElementSpan(uint64(n), uint64(elemSize))
	if err != nil || span > uint64(c.remaining()) {
		return nil, c.eof()
	}
	return c.takeSlice(int(span))
}

func parseCompound[E Order](c *cursor[E], depth, maxDepth int) (Readonly[E], error) {
	if depth > maxDepth {
		return Readonly[E]{}, errAt(c.off, ErrDepthExceeded)
	}

	start := c.off
	var entries []compoundEntry[E]

	for {
		tagOff := c.off
		tag, err := c.takeU8()
		if err != nil {
			return Readonly[E]{}, err
		}
		if TagID(tag) == TagEnd {
			break
		}
		if !TagID(tag).valid() {
			return Readonly[E]{}, errAt(tagOff, fmt.Errorf("%w: 0x%02x", ErrInvalidTag, tag))
		}

		key, err := takeString(c)
		if err != nil {
			return Readonly[E]{}, err
		}

		val, err := parseValue(c, TagID(tag), depth+1, maxDepth)
		if err != nil {
			return Readonly[E]{}, err
		}

		entries = append(entries, compoundEntry[E]{key: key, val: val})
	}

	return Readonly[E]{
		kind: TagCompound,
		raw:  c.buf[start:c.off:c.off],
		comp: &compoundIndex[E]{entries: entries},
	}, nil
}

func parseList[E Order](c *cursor[E], depth, maxDepth int) (Readonly[E], error) {
	if depth > maxDepth {
		return Readonly[E]{}, errAt(c.off, ErrDepthExceeded)
	}

	elemOff := c.off
	elem, err := c.takeU8()
	if err != nil {
		return Readonly[E]{}, err
	}
	if !TagID(elem).valid() {
		return Readonly[E]{}, errAt(elemOff, fmt.Errorf("%w: list element tag 0x%02x", ErrInvalidTag, elem))
	}

	lenOff := c.off
	count, err := c.takeI32()
	if err != nil {
		return Readonly[E]{}, err
	}
	if count < 0 {
		return Readonly[E]{}, errAt(lenOff, ErrNegativeLength)
	}

	idx := &listIndex[E]{elem: TagID(elem), count: int(count)}

	if TagID(elem) == TagEnd {
		if count > 0 {
			return Readonly[E]{}, errAt(elemOff, fmt.Errorf("%w: non-empty list of TAG_End", ErrInvalidTag))
		}
		return Readonly[E]{kind: TagList, list: idx}, nil
	}

	// Fixed-size elements: the whole payload is one span, and element i is
	// located arithmetically. No per-element walk, no side vector.
	if s := TagID(elem).scalarSize(); s > 0 {
		span, err := utils.ElementSpan(uint64(count), uint64(s))
		if err != nil || span > uint64(c.remaining()) {
			return Readonly[E]{}, c.eof()
		}
		raw, err := c.takeSlice(int(span))
		if err != nil {
			return Readonly[E]{}, err
		}
		return Readonly[E]{kind: TagList, raw: raw, list: idx}, nil
	}

	// Variable-size elements: walk each one to establish bounds, recording
	// the parsed nodes so At(i) stays O(1). Capacity is bounded by the
	// remaining input, not the declared count, so a hostile count cannot
	// force a large allocation.
	start := c.off
	capHint := int(count)
	if capHint > c.remaining() {
		capHint = c.remaining()
	}
	elems := make([]Readonly[E], 0, capHint)
	for i := int32(0); i < count; i++ {
		v, err := parseValue(c, TagID(elem), depth+1, maxDepth)
		if err != nil {
			return Readonly[E]{}, err
		}
		elems = append(elems, v)
	}
	idx.elems = elems

	return Readonly[E]{
		kind: TagList,
		raw:  c.buf[start:c.off:c.off],
		list: idx,
	}, nil
}
