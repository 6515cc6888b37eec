package pond

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarCoercionFromText(t *testing.T) {
	t.Parallel()

	n, ok := As[int](Text("42"))
	require.True(t, ok)
	assert.Equal(t, 42, n)

	u, ok := As[uint16](Text(" 65535 "))
	require.True(t, ok)
	assert.Equal(t, uint16(65535), u)

	f, ok := As[float64](Text("3.25"))
	require.True(t, ok)
	assert.Equal(t, 3.25, f)

	i, ok := As[int64](Text("3.0"))
	require.True(t, ok)
	assert.Equal(t, int64(3), i)
}

func TestScalarCoercionRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	_, ok := As[int8](Text("128"))
	assert.False(t, ok)

	_, ok = As[uint8](Text("-1"))
	assert.False(t, ok)

	_, ok = As[int](Text("3.5"))
	assert.False(t, ok)

	_, ok = As[float64](Text("not a number"))
	assert.False(t, ok)
}

func TestBoolCoercionIsPermissive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"1", true},
		{"on", true},
		{"false", false},
		{"No", false},
		{"0", false},
		{"off", false},
	}

	for _, tt := range tests {
		got, ok := As[bool](Text(tt.input))
		require.True(t, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, ok := As[bool](Text("maybe"))
	assert.False(t, ok)
}

func TestBytesOnlyMatchBytes(t *testing.T) {
	t.Parallel()

	_, ok := As[[]byte](Text("hello"))
	assert.False(t, ok)

	_, ok = As[string](Bytes([]byte("hello")))
	assert.False(t, ok)

	b, ok := As[[]byte](Bytes([]byte{0, 1, 2}))
	require.True(t, ok)
	assert.Equal(t, []byte{0, 1, 2}, b)
}

func TestCollectionsPassThrough(t *testing.T) {
	t.Parallel()

	list := List(Text("a"), Int(1))
	items, ok := As[[]Value](list)
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, KindNumber, items[1].Kind())

	_, ok = As[map[string]Value](list)
	assert.False(t, ok)

	_, ok = As[string](list)
	assert.False(t, ok)
}

func TestNormalizedCollapsesScalars(t *testing.T) {
	t.Parallel()

	assert.True(t, Text("12").Equal(Int(12).normalized()))
	assert.True(t, Text("true").Equal(Bool(true).normalized()))

	list := List(Int(1))
	assert.True(t, list.Equal(list.normalized()))
}

func TestLargeIntegersSurvive(t *testing.T) {
	t.Parallel()

	v := ValueOf[int64](math.MaxInt64).normalized()
	got, ok := As[int64](v)
	require.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), got)

	uv := ValueOf[uint64](math.MaxUint64).normalized()
	ugot, ok := As[uint64](uv)
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), ugot)
}

func TestFromAnyConvertsDecodedJSON(t *testing.T) {
	t.Parallel()

	v, err := FromAny(map[string]any{
		"name": "pond",
		"tags": []any{"a", 1.5, true},
	})
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind())

	entries, ok := As[map[string]Value](v)
	require.True(t, ok)
	assert.True(t, Text("pond").Equal(entries["name"]))
	assert.Equal(t, KindList, entries["tags"].Kind())
	assert.Equal(t, map[string]any{"name": "pond", "tags": []any{"a", 1.5, true}}, v.Interface())
}

func TestFromAnyRejectsUnsupportedTypes(t *testing.T) {
	t.Parallel()

	_, err := FromAny(struct{ Name string }{"x"})
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = FromAny([]any{make(chan int)})
	require.ErrorIs(t, err, ErrUnsupportedType)

	v, err := FromAny(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNone())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bytes", KindBytes.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestCodecRoundTripsNestedValues(t *testing.T) {
	t.Parallel()

	original := Map(map[string]Value{
		"blob":  Bytes([]byte{0xff, 0x00}),
		"items": List(Text("x"), Int(3), Bool(false)),
		"empty": List(),
	})

	decoded, err := decodeEntry(encodeEntry(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded), decoded.String())
}
