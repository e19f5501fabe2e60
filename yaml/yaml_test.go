package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godeko "github.com/reoring/godeko"
	"github.com/reoring/godeko/yaml"
)

func TestScalars(t *testing.T) {
	b, ok := yaml.Deserialize("true", godeko.Bool()).Value()
	require.True(t, ok)
	assert.True(t, b)

	s, ok := yaml.Deserialize("hello", godeko.String()).Value()
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	n, ok := yaml.Deserialize("42", godeko.Int[int]()).Value()
	require.True(t, ok)
	assert.Equal(t, 42, n)

	f, ok := yaml.Deserialize("0.5", godeko.Float[float64]()).Value()
	require.True(t, ok)
	assert.Equal(t, 0.5, f)

	p, ok := yaml.Deserialize("null", godeko.Optional(godeko.Int[int]())).Value()
	require.True(t, ok)
	assert.Nil(t, p)
}

func TestMapping(t *testing.T) {
	const src = "b: 1\na: 0\n"
	r := yaml.Deserialize(src, godeko.OrderedMapOf(godeko.Int[int]()))
	m, ok := r.Value()
	require.True(t, ok, "diagnostics: %v", r.Diagnostics())
	require.Empty(t, r.Diagnostics())

	assert.Equal(t, []string{"b", "a"}, m.Keys(), "source order must survive")
	v, _ := m.Get("a")
	assert.Equal(t, 0, v)
}

func TestSequence(t *testing.T) {
	r := yaml.Deserialize("- 0\n- 1\n", godeko.Slice(godeko.Int[int]()))
	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, v)
}

func TestTypeMismatchDiagnostic(t *testing.T) {
	r := yaml.Deserialize("not a number", godeko.Int[int]())
	_, ok := r.Value()
	assert.False(t, ok)

	ds := r.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, godeko.CodeIncorrectType, ds[0].Code)
	assert.NotEmpty(t, ds[0].InputFragment)
}

func TestBadElementIsDropped(t *testing.T) {
	r := yaml.Deserialize("- 0\n- nope\n- 1\n", godeko.Slice(godeko.Int[int]()))
	v, ok := r.Value()
	require.True(t, ok, "the sequence itself is fine")
	assert.Equal(t, []int{0, 1}, v)

	ds := r.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, godeko.CodeIncorrectType, ds[0].Code)
}

func TestParseError(t *testing.T) {
	r := yaml.Deserialize("key: [unclosed", godeko.Any())
	_, ok := r.Value()
	assert.False(t, ok)

	ds := r.Diagnostics()
	require.NotEmpty(t, ds)
	assert.Equal(t, godeko.CodeParseError, ds[0].Code)
	assert.True(t, r.HasErrors())
}

func TestEmptyDocument(t *testing.T) {
	r := yaml.Deserialize("", godeko.Any())
	_, ok := r.Value()
	assert.False(t, ok)
	require.NotEmpty(t, r.Diagnostics())
	assert.Equal(t, godeko.CodeParseError, r.Diagnostics()[0].Code)
}

func TestAliasResolvesToAnchor(t *testing.T) {
	const src = "base: &b 7\nother: *b\n"
	r := yaml.Deserialize(src, godeko.Map(godeko.Int[int]()))
	m, ok := r.Value()
	require.True(t, ok, "diagnostics: %v", r.Diagnostics())
	assert.Equal(t, 7, m["other"])
}

func TestMismatchRangePointsAtToken(t *testing.T) {
	const src = "a: 1\nb: oops\n"
	r := yaml.Deserialize(src, godeko.Map(godeko.Int[int]()))
	ds := r.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, "oops", src[ds[0].Range.Start:ds[0].Range.End])
}
