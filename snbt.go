package nbt

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a value as SNBT-flavoured text for debugging and error
// messages. The output is stable but not a strict SNBT serializer: strings
// that fail MUTF-8 decoding are shown as quoted hex, and long arrays are
// printed in full.
func Dump[E Order](v Value[E]) string {
	var sb strings.Builder
	dumpValue(&sb, v)
	return sb.String()
}

func dumpValue[E Order](sb *strings.Builder, v Value[E]) {
	switch v.Kind() {
	case TagByte:
		b, _ := v.AsByte()
		fmt.Fprintf(sb, "%db", b)
	case TagShort:
		s, _ := v.AsShort()
		fmt.Fprintf(sb, "%ds", s)
	case TagInt:
		i, _ := v.AsInt()
		fmt.Fprintf(sb, "%d", i)
	case TagLong:
		l, _ := v.AsLong()
		fmt.Fprintf(sb, "%dL", l)
	case TagFloat:
		f, _ := v.AsFloat()
		fmt.Fprintf(sb, "%gf", f)
	case TagDouble:
		d, _ := v.AsDouble()
		fmt.Fprintf(sb, "%gd", d)
	case TagString:
		raw, _ := v.AsString()
		sb.WriteString(quoteString(raw))
	case TagByteArray:
		a, _ := v.AsByteArray()
		sb.WriteString("[B;")
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%db", a.At(i))
		}
		sb.WriteByte(']')
	case TagIntArray:
		a, _ := v.AsIntArray()
		sb.WriteString("[I;")
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%d", a.At(i))
		}
		sb.WriteByte(']')
	case TagLongArray:
		a, _ := v.AsLongArray()
		sb.WriteString("[L;")
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%dL", a.At(i))
		}
		sb.WriteByte(']')
	case TagList:
		l, _ := v.AsList()
		sb.WriteByte('[')
		for i := 0; i < l.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			dumpValue(sb, l.At(i))
		}
		sb.WriteByte(']')
	case TagCompound:
		c, _ := v.AsCompound()
		sb.WriteByte('{')
		for i := 0; i < c.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quoteString(c.KeyAt(i)))
			sb.WriteByte(':')
			dumpValue(sb, c.At(i))
		}
		sb.WriteByte('}')
	default:
		sb.WriteString(v.Kind().String())
	}
}

func quoteString(raw []byte) string {
	s, err := DecodeString(raw)
	if err != nil {
		return fmt.Sprintf("hex\"%x\"", raw)
	}
	return strconv.Quote(s)
}
