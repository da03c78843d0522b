package core

import (
	"encoding/json"
	"math"
	"reflect"
)

// Decoders lose integer-ness: encoding/json produces float64 or json.Number,
// YAML produces int for integers. coerce converts such untyped numerics to the
// declared numeric type when the conversion is lossless. Strings and bools are
// never coerced.

// maxExactFloat is the largest integer magnitude a float64 holds exactly.
const maxExactFloat = 1 << 53

// coerce converts value to target, reporting whether it could do so losslessly.
//
//nolint:cyclop // one case per numeric kind family
func coerce(value any, target reflect.Type) (reflect.Value, bool) {
	if target.Kind() == reflect.Interface {
		return normalizeNumber(value, target)
	}

	num, ok := toNumber(value)
	if !ok {
		return reflect.Value{}, false
	}

	out := reflect.New(target).Elem()

	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !num.integral || num.unsigned && num.u > math.MaxInt64 {
			return reflect.Value{}, false
		}

		i := num.i
		if num.unsigned {
			i = int64(num.u)
		}

		if out.OverflowInt(i) {
			return reflect.Value{}, false
		}

		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if !num.integral || !num.unsigned && num.i < 0 {
			return reflect.Value{}, false
		}

		u := num.u
		if !num.unsigned {
			u = uint64(num.i)
		}

		if out.OverflowUint(u) {
			return reflect.Value{}, false
		}

		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, exact := num.float()
		if !exact || out.OverflowFloat(f) {
			return reflect.Value{}, false
		}

		if target.Kind() == reflect.Float32 && float64(float32(f)) != f {
			return reflect.Value{}, false
		}

		out.SetFloat(f)
	default:
		return reflect.Value{}, false
	}

	return out, true
}

// normalizeNumber unwraps json.Number for interface-typed targets so the
// function sees int64 or float64 rather than the decoder's string form.
func normalizeNumber(value any, target reflect.Type) (reflect.Value, bool) {
	number, ok := value.(json.Number)
	if !ok {
		return reflect.Value{}, false
	}

	var plain any

	if i, err := number.Int64(); err == nil {
		plain = i
	} else if f, err := number.Float64(); err == nil {
		plain = f
	} else {
		return reflect.Value{}, false
	}

	rv := reflect.ValueOf(plain)
	if !rv.Type().AssignableTo(target) {
		return reflect.Value{}, false
	}

	return rv, true
}

// number is a decoded numeric value in whichever representation is exact.
type number struct {
	i        int64
	u        uint64
	f        float64
	integral bool // i or u holds the exact value
	unsigned bool // u rather than i holds it
}

// float returns the value as a float64 and whether that is exact.
func (n number) float() (float64, bool) {
	switch {
	case !n.integral:
		return n.f, true
	case n.unsigned:
		return float64(n.u), n.u <= maxExactFloat
	default:
		return float64(n.i), n.i >= -maxExactFloat && n.i <= maxExactFloat
	}
}

// toNumber reads value as a number, if it is one.
func toNumber(value any) (number, bool) {
	if jn, ok := value.(json.Number); ok {
		if i, err := jn.Int64(); err == nil {
			return number{i: i, integral: true}, true
		}

		f, err := jn.Float64()
		if err != nil {
			return number{}, false
		}

		return fromFloat(f), true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{i: rv.Int(), integral: true}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{u: rv.Uint(), integral: true, unsigned: true}, true
	case reflect.Float32, reflect.Float64:
		return fromFloat(rv.Float()), true
	default:
		return number{}, false
	}
}

// fromFloat keeps integral floats in integer form so they can reach int targets.
func fromFloat(f float64) number {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return number{f: f}
	}

	// 2^63 itself is not representable as int64.
	if f >= -math.MaxInt64-1 && f < math.MaxInt64 {
		return number{i: int64(f), integral: true}
	}

	if f >= 0 && f < math.MaxUint64 {
		return number{u: uint64(f), integral: true, unsigned: true}
	}

	return number{f: f}
}
