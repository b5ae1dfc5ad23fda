package numeric_test

import (
	"math"
	"testing"

	"github.com/aretw0/flatexp/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		parser  *numeric.Parser
		input   string
		want    float64
		wantErr error
	}{
		{"int plain", numeric.Int, "42", 42, nil},
		{"int spaces", numeric.Int, "  -7 ", -7, nil},
		{"int from exponent", numeric.Long, "1e3", 1000, nil},
		{"int fractional", numeric.Int, "1.5", 0, numeric.ErrNotIntegral},
		{"byte overflow", numeric.Byte, "128", 0, numeric.ErrOutOfRange},
		{"uint negative", numeric.UInt, "-1", 0, numeric.ErrOutOfRange},
		{"double", numeric.Double, "2.25", 2.25, nil},
		{"double inf", numeric.Double, "+Inf", math.Inf(1), nil},
		{"float syntax", numeric.Float, "abc", 0, numeric.ErrSyntax},
		{"empty", numeric.Double, "", 0, numeric.ErrSyntax},
		{"nan", numeric.Double, "NaN", 0, numeric.ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parser.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_WithBounds(t *testing.T) {
	p, err := numeric.Int.WithBounds(0, 100)
	require.NoError(t, err)
	assert.Equal(t, "int[0,100]", p.Name())
	assert.Equal(t, numeric.KindInt, p.Kind())

	assert.NoError(t, p.Check(100))
	assert.ErrorIs(t, p.Check(101), numeric.ErrOutOfRange)

	_, err = p.WithBounds(-1, 10)
	assert.ErrorIs(t, err, numeric.ErrInvalidBounds, "bounds cannot widen")

	_, err = numeric.Int.WithBounds(5, 1)
	assert.ErrorIs(t, err, numeric.ErrInvalidBounds)

	_, err = numeric.Int.WithBounds(0.5, 1)
	assert.ErrorIs(t, err, numeric.ErrInvalidBounds)

	d, err := numeric.Double.WithBounds(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "double[0,1]", d.Name())
	assert.Equal(t, "double", numeric.Double.Name(), "base parser is unchanged")
}

func TestToFloat(t *testing.T) {
	for _, v := range []any{3, int8(3), int64(3), uint16(3), float32(3), 3.0, " 3 "} {
		got, err := numeric.ToFloat(v)
		require.NoError(t, err, "%T", v)
		assert.Equal(t, 3.0, got)
	}

	_, err := numeric.ToFloat(true)
	assert.ErrorIs(t, err, numeric.ErrSyntax)
}
