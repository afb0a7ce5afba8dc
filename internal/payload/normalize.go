package payload

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/shopspring/decimal"
)

// Kind is the target type of a request field.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	List
)

// Field declares how one request field is normalized.
//
// Required fields treat an empty value as absent: they can be omitted on
// update but never cleared. Nullable applies to Float only and turns an empty
// value into an explicit null.
type Field struct {
	Kind     Kind
	Required bool
	Nullable bool
}

// Schema maps request field names to their declarations.
type Schema map[string]Field

// Raw holds the string form fields of one request. A missing key means the
// field was not sent.
type Raw map[string]string

// Values holds the typed result of Normalize. Only fields present in the
// request appear. Int fields hold int64, Float fields decimal.Decimal (or
// decimal.NullDecimal when nullable), Bool bool, List []string, String string.
type Values map[string]any

// NumericPolicy decides what an unparseable optional numeric field becomes.
type NumericPolicy int

const (
	// Lenient coerces unparseable optional numbers to zero.
	Lenient NumericPolicy = iota
	// Strict rejects them with a validation failure.
	Strict
)

// ParseNumericPolicy reads "lenient" or "strict".
func ParseNumericPolicy(s string) (NumericPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}
	return Lenient, fmt.Errorf("unknown numeric policy %q", s)
}

func (p NumericPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// Normalize converts the fields of raw declared in s. Undeclared fields are
// ignored and absent fields stay absent.
func Normalize(s Schema, raw Raw, policy NumericPolicy) (Values, error) {
	out := Values{}
	for _, name := range slices.Sorted(maps.Keys(s)) {
		f := s[name]
		rv, ok := raw[name]
		if !ok {
			continue
		}
		if f.Required && strings.TrimSpace(rv) == "" {
			continue
		}

		switch f.Kind {
		case String:
			out[name] = rv
		case Bool:
			out[name] = rv == "true"
		case Int:
			n, err := parseInt(name, rv, f, policy)
			if err != nil {
				return nil, err
			}
			out[name] = n
		case Float:
			if f.Nullable && strings.TrimSpace(rv) == "" {
				out[name] = decimal.NullDecimal{}
				continue
			}
			d, err := parseFloat(name, rv, f, policy)
			if err != nil {
				return nil, err
			}
			if f.Nullable {
				out[name] = decimal.NewNullDecimal(d)
			} else {
				out[name] = d
			}
		case List:
			l, err := DecodeList(name, rv)
			if err != nil {
				return nil, err
			}
			out[name] = l
		default:
			return nil, fmt.Errorf("payload: field %q has unknown kind %d", name, f.Kind)
		}
	}
	return out, nil
}

// parseInt also accepts decimals without a fractional part ("5.0", 2e3),
// which is how some clients and JSON encoders send whole numbers.
func parseInt(name, rv string, f Field, policy NumericPolicy) (int64, error) {
	rv = strings.TrimSpace(rv)
	if n, err := strconv.ParseInt(rv, 10, 64); err == nil {
		return n, nil
	}
	if d, err := decimal.NewFromString(rv); err == nil && d.IsInteger() {
		if n := d.IntPart(); decimal.NewFromInt(n).Equal(d) {
			return n, nil
		}
	}
	if f.Required || policy == Strict {
		return 0, apperr.Validation("%s must be a whole number", name)
	}
	return 0, nil
}

func parseFloat(name, rv string, f Field, policy NumericPolicy) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(rv))
	if err == nil {
		return d, nil
	}
	if f.Required || policy == Strict {
		return decimal.Zero, apperr.Validation("%s must be a number", name)
	}
	return decimal.Zero, nil
}

// Get returns the typed value stored under name, or absent when the field
// is missing or holds another type.
func Get[T any](v Values, name string) Optional[T] {
	x, ok := v[name]
	if !ok {
		return Optional[T]{}
	}
	t, ok := x.(T)
	if !ok {
		return Optional[T]{}
	}
	return Some(t)
}

// RawFromJSON flattens a decoded JSON object into Raw so JSON bodies follow
// the same rules as form posts. Arrays and objects are re-encoded, null
// becomes the empty string.
func RawFromJSON(body map[string]any) Raw {
	raw := make(Raw, len(body))
	for k, v := range body {
		switch x := v.(type) {
		case nil:
			raw[k] = ""
		case string:
			raw[k] = x
		case bool:
			raw[k] = strconv.FormatBool(x)
		case float64:
			raw[k] = strconv.FormatFloat(x, 'f', -1, 64)
		case json.Number:
			raw[k] = x.String()
		default:
			b, err := json.Marshal(x)
			if err != nil {
				continue
			}
			raw[k] = string(b)
		}
	}
	return raw
}
