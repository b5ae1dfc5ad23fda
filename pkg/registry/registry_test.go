package registry_test

import (
	"testing"

	"github.com/aretw0/flatexp/pkg/numeric"
	"github.com/aretw0/flatexp/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	r := registry.Default()

	p, err := r.Lookup("double")
	require.NoError(t, err)
	assert.Same(t, numeric.Double, p)

	p, err = r.Lookup(" int[0, 100] ")
	require.NoError(t, err)
	assert.Equal(t, "int[0,100]", p.Name())
	assert.ErrorIs(t, p.Check(101), numeric.ErrOutOfRange)

	_, err = r.Lookup("decimal")
	assert.Error(t, err)

	_, err = r.Lookup("int[0,100")
	assert.Error(t, err)

	_, err = r.Lookup("int[a,b]")
	assert.Error(t, err)

	_, err = r.Lookup("byte[0,1000]")
	assert.ErrorIs(t, err, numeric.ErrInvalidBounds)
}

func TestRegistry_Register(t *testing.T) {
	r := registry.NewRegistry()
	assert.Empty(t, r.Names())

	r.Register("percent", mustBound(t, numeric.Double, 0, 100))
	r.Register("count", numeric.Long)
	assert.Equal(t, []string{"count", "percent"}, r.Names())

	p, err := r.Lookup("percent")
	require.NoError(t, err)
	assert.Equal(t, "double[0,100]", p.Name())
}

func mustBound(t *testing.T, p *numeric.Parser, min, max float64) *numeric.Parser {
	t.Helper()
	b, err := p.WithBounds(min, max)
	require.NoError(t, err)
	return b
}
