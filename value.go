package tiff

import (
	"encoding/binary"
	"math/big"
)

// TypedValue is the decoded payload of one IFD entry: a tagged variant
// over the concrete numeric array shapes a TIFF value can take (§3,
// §9 design notes). The source this core is modeled on used runtime-typed
// boxed numbers and reflective array casts; TypedValue replaces that with
// one accessor, AsLongArray, that widens every integral shape to uint64.
type TypedValue struct {
	Type  uint16
	Count uint32

	ints   []int64  // dtSByte, dtSShort, dtSLong
	uints  []uint64 // dtByte, dtShort, dtLong, dtLong8
	rats   []big.Rat
	ascii  string
	raw    []byte // dtUndefined, or ASCII's raw bytes before trimming.
}

// AsLongArray widens bytes/shorts/longs (signed or not) to a uint64 slice.
// Rationals, ASCII and undefined values return an empty slice.
func (v TypedValue) AsLongArray() []uint64 {
	if len(v.uints) > 0 {
		return v.uints
	}
	if len(v.ints) > 0 {
		out := make([]uint64, len(v.ints))
		for i, n := range v.ints {
			out[i] = uint64(n)
		}
		return out
	}
	return nil
}

// First returns the first widened value, or 0 if the entry is empty.
func (v TypedValue) First() uint64 {
	a := v.AsLongArray()
	if len(a) == 0 {
		return 0
	}
	return a[0]
}

// Ints returns the signed integral values (dtSByte/dtSShort/dtSLong).
func (v TypedValue) Ints() []int64 { return v.ints }

// ASCII returns the value as a nul-trimmed string, for dtASCII entries.
func (v TypedValue) ASCII() string { return v.ascii }

// Rational returns the rational at index, or 0/1 if out of range.
func (v TypedValue) Rational(index int) big.Rat {
	if index < 0 || index >= len(v.rats) {
		return big.Rat{}
	}
	return v.rats[index]
}

// Float64 widens any integral or rational variant to float64. dtFloat and
// dtDouble values are kept as opaque bytes and yield 0.
func (v TypedValue) Float64(index int) float64 {
	switch v.Type {
	case dtRational, dtSRational:
		r := v.Rational(index)
		f, _ := r.Float64()
		return f
	default:
		a := v.AsLongArray()
		if index < 0 || index >= len(a) {
			return 0
		}
		return float64(a[index])
	}
}

// Raw returns the undefined/opaque byte payload.
func (v TypedValue) Raw() []byte { return v.raw }

// decodeTypedValue interprets raw per the TIFF type/count pair.
func decodeTypedValue(order binary.ByteOrder, typ uint16, count uint32, raw []byte) (TypedValue, error) {
	v := TypedValue{Type: typ, Count: count}
	switch typ {
	case dtByte:
		v.uints = make([]uint64, count)
		for i := range v.uints {
			v.uints[i] = uint64(raw[i])
		}
		v.raw = raw
	case dtASCII:
		v.raw = raw
		v.ascii = trimASCII(raw)
	case dtShort:
		v.uints = make([]uint64, count)
		for i := range v.uints {
			v.uints[i] = uint64(order.Uint16(raw[2*i : 2*i+2]))
		}
	case dtLong:
		v.uints = make([]uint64, count)
		for i := range v.uints {
			v.uints[i] = uint64(order.Uint32(raw[4*i : 4*i+4]))
		}
	case dtLong8:
		v.uints = make([]uint64, count)
		for i := range v.uints {
			v.uints[i] = order.Uint64(raw[8*i : 8*i+8])
		}
	case dtSByte:
		v.ints = make([]int64, count)
		for i := range v.ints {
			v.ints[i] = int64(int8(raw[i]))
		}
	case dtSShort:
		v.ints = make([]int64, count)
		for i := range v.ints {
			v.ints[i] = int64(int16(order.Uint16(raw[2*i : 2*i+2])))
		}
	case dtSLong:
		v.ints = make([]int64, count)
		for i := range v.ints {
			v.ints[i] = int64(int32(order.Uint32(raw[4*i : 4*i+4])))
		}
	case dtRational:
		v.rats = make([]big.Rat, count)
		for i := range v.rats {
			num := order.Uint32(raw[8*i : 8*i+4])
			den := order.Uint32(raw[8*i+4 : 8*i+8])
			if den == 0 {
				den = 1
			}
			v.rats[i] = *big.NewRat(int64(num), int64(den))
		}
	case dtSRational:
		v.rats = make([]big.Rat, count)
		for i := range v.rats {
			num := int32(order.Uint32(raw[8*i : 8*i+4]))
			den := int32(order.Uint32(raw[8*i+4 : 8*i+8]))
			if den == 0 {
				den = 1
			}
			v.rats[i] = *big.NewRat(int64(num), int64(den))
		}
	case dtFloat:
		v.raw = raw // Floating-point samples are a non-goal; kept opaque.
	case dtDouble:
		v.raw = raw
	case dtUndefined:
		v.raw = raw
	default:
		return TypedValue{}, UnsupportedError("IFD entry type")
	}
	return v, nil
}

func trimASCII(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
