package nbt

import "bytes"

// Materialize converts a parsed Readonly tree into an owned tree, changing
// the storage byte order from Src to Dst. Scalars are decoded from Src into
// host-native storage; array payloads are copied, byte-swapped only when the
// two orders differ; lists and compounds materialize depth-first. The result
// shares nothing with the source buffer.
func Materialize[Src, Dst Order](v Readonly[Src]) OwnedValue[Dst] {
	switch v.kind {
	case TagByte:
		b, _ := v.AsByte()
		return ByteValue[Dst](b)
	case TagShort:
		s, _ := v.AsShort()
		return ShortValue[Dst](s)
	case TagInt:
		i, _ := v.AsInt()
		return IntValue[Dst](i)
	case TagLong:
		l, _ := v.AsLong()
		return LongValue[Dst](l)
	case TagFloat:
		f, _ := v.AsFloat()
		return FloatValue[Dst](f)
	case TagDouble:
		d, _ := v.AsDouble()
		return DoubleValue[Dst](d)

	case TagString:
		return OwnedValue[Dst]{kind: TagString, bytes: bytes.Clone(v.raw)}

	case TagByteArray:
		return OwnedValue[Dst]{kind: TagByteArray, bytes: bytes.Clone(v.raw)}

	case TagIntArray:
		return OwnedValue[Dst]{kind: TagIntArray, bytes: swapPayload[Src, Dst](v.raw, 4)}

	case TagLongArray:
		return OwnedValue[Dst]{kind: TagLongArray, bytes: swapPayload[Src, Dst](v.raw, 8)}

	case TagList:
		list := &OwnedList[Dst]{elem: v.list.elem}
		n := v.list.count
		if n > 0 {
			ro := roList[Src]{idx: v.list, raw: v.raw}
			list.vals = make([]OwnedValue[Dst], n)
			for i := 0; i < n; i++ {
				list.vals[i] = Materialize[Src, Dst](ro.at(i))
			}
		}
		return OwnedValue[Dst]{kind: TagList, list: list}

	case TagCompound:
		comp := &OwnedCompound[Dst]{}
		for i := range v.comp.entries {
			e := &v.comp.entries[i]
			comp.appendEntry(bytes.Clone(e.key), Materialize[Src, Dst](e.val))
		}
		return OwnedValue[Dst]{kind: TagCompound, comp: comp}
	}

	return OwnedValue[Dst]{}
}

// swapPayload copies an array payload, re-encoding each element when the
// source and destination orders differ.
func swapPayload[Src, Dst Order](raw []byte, width int) []byte {
	if sameOrder[Src, Dst]() {
		return bytes.Clone(raw)
	}

	var s Src
	var d Dst
	out := make([]byte, len(raw))
	switch width {
	case 4:
		for i := 0; i+4 <= len(raw); i += 4 {
			d.PutUint32(out[i:], s.Uint32(raw[i:]))
		}
	case 8:
		for i := 0; i+8 <= len(raw); i += 8 {
			d.PutUint64(out[i:], s.Uint64(raw[i:]))
		}
	}
	return out
}
