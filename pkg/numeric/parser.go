// Package numeric implements the number parsers that validate dimension values.
package numeric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrSyntax indicates that a text could not be read as a number.
	ErrSyntax = errors.New("numeric: invalid number syntax")
	// ErrOutOfRange indicates a value outside the parser bounds.
	ErrOutOfRange = errors.New("numeric: value out of range")
	// ErrNotIntegral indicates a fractional value given to an integer parser.
	ErrNotIntegral = errors.New("numeric: value is not integral")
	// ErrNotANumber indicates a NaN value.
	ErrNotANumber = errors.New("numeric: value is NaN")
	// ErrInvalidBounds indicates an empty or widening bound request.
	ErrInvalidBounds = errors.New("numeric: invalid bounds")
)

// Kind selects integral or floating point semantics.
type Kind string

const (
	KindInt   Kind = "int"
	KindFloat Kind = "float"
)

// Parser parses numbers of one kind within a closed interval.
// The zero value is not usable; use the constructors or the predefined parsers.
type Parser struct {
	base string
	kind Kind
	min  float64
	max  float64
	// bounded is set when min/max were narrowed from the base range.
	bounded bool
}

// Predefined parsers mirroring the usual machine number types.
var (
	Byte   = newParser("byte", KindInt, math.MinInt8, math.MaxInt8)
	Short  = newParser("short", KindInt, math.MinInt16, math.MaxInt16)
	Int    = newParser("int", KindInt, math.MinInt32, math.MaxInt32)
	Long   = newParser("long", KindInt, math.MinInt64, math.MaxInt64)
	UInt   = newParser("uint", KindInt, 0, math.MaxUint32)
	Float  = newParser("float", KindFloat, -math.MaxFloat32, math.MaxFloat32)
	Double = newParser("double", KindFloat, math.Inf(-1), math.Inf(1))
)

func newParser(name string, kind Kind, min, max float64) *Parser {
	return &Parser{base: name, kind: kind, min: min, max: max}
}

// Name returns the parser name, including bounds when they were narrowed.
func (p *Parser) Name() string {
	if !p.bounded {
		return p.base
	}
	return fmt.Sprintf("%s[%s,%s]", p.base, format(p.min), format(p.max))
}

// Kind returns the number kind.
func (p *Parser) Kind() Kind { return p.kind }

// Bounds returns the inclusive value range.
func (p *Parser) Bounds() (float64, float64) { return p.min, p.max }

// WithBounds returns a parser restricted to [min, max].
// The new range must lie within the current one.
func (p *Parser) WithBounds(min, max float64) (*Parser, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return nil, fmt.Errorf("%w: [%v,%v]", ErrInvalidBounds, min, max)
	}
	if min < p.min || max > p.max {
		return nil, fmt.Errorf("%w: [%v,%v] exceeds %s", ErrInvalidBounds, min, max, p.Name())
	}
	if p.kind == KindInt && (min != math.Trunc(min) || max != math.Trunc(max)) {
		return nil, fmt.Errorf("%w: integer bounds required for %s", ErrInvalidBounds, p.base)
	}
	return &Parser{base: p.base, kind: p.kind, min: min, max: max, bounded: true}, nil
}

// Parse reads text as a number and validates it.
func (p *Parser) Parse(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrSyntax)
	}

	var v float64
	if p.kind == KindInt {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			v = float64(i)
		} else {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
			}
			v = f
		}
	} else {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
		v = f
	}

	if err := p.Check(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Check validates a numeric value against the parser kind and bounds.
func (p *Parser) Check(v float64) error {
	if math.IsNaN(v) {
		return ErrNotANumber
	}
	if p.kind == KindInt && v != math.Trunc(v) {
		return fmt.Errorf("%w: %v", ErrNotIntegral, v)
	}
	if v < p.min || v > p.max {
		return fmt.Errorf("%w: %v not in %s", ErrOutOfRange, v, p.Name())
	}
	return nil
}

// ToFloat converts common Go numeric types and numeric strings to float64.
func ToFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: unsupported type %T", ErrSyntax, value)
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
