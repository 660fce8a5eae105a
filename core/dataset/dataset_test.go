package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Dataset {
	return MustNew("items", []Column{
		{Name: "id", Kind: KindInt64},
		{Name: "Name", Kind: KindString},
	}, [][]any{
		{int64(1), "chair"},
		{int64(2), "table"},
	})
}

func TestNew_Validation(t *testing.T) {
	_, err := New("t", []Column{{Name: "a"}, {Name: "A"}}, nil)
	assert.Error(t, err, "duplicate columns ignoring case are rejected")

	_, err = New("t", []Column{{Name: "a"}}, [][]any{{1, 2}})
	assert.Error(t, err, "row width must match")
}

func TestLookup_CaseInsensitive(t *testing.T) {
	ds := sample()

	pos, ok := ds.Lookup("NAME")
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.False(t, ds.Has("missing"))
	assert.Equal(t, 1, IndexOf(ds.Columns(), "name"))
	assert.Equal(t, -1, IndexOf(ds.Columns(), "nope"))
}

func TestWithHidden_DoesNotMutateReceiver(t *testing.T) {
	ds := sample()

	view, err := ds.WithHidden(Column{Name: "__extra", Kind: KindString}, []any{"x", "y"})
	require.NoError(t, err)

	assert.False(t, ds.Has("__extra"))
	assert.Equal(t, 2, ds.Width())

	pos, ok := view.Lookup("__extra")
	require.True(t, ok)
	assert.True(t, view.IsHidden(pos))
	assert.Equal(t, "y", view.Value(1, pos))
	assert.Len(t, view.Columns(), 2, "hidden columns are not declared")

	_, err = ds.WithHidden(Column{Name: "ID"}, []any{1, 2})
	assert.Error(t, err)
	_, err = ds.WithHidden(Column{Name: "z"}, []any{1})
	assert.Error(t, err)
}

func TestRenderKey(t *testing.T) {
	assert.Equal(t, "42", RenderKey([]any{int64(42)}))
	assert.Equal(t, NullSentinel, RenderKey([]any{nil}))
	assert.Equal(t, "a"+KeySeparator+NullSentinel+KeySeparator+"1.5", RenderKey([]any{"a", nil, 1.5}))
	assert.NotEqual(t, RenderKey([]any{nil}), RenderKey([]any{""}))
}

func TestUniqueNonEmpty(t *testing.T) {
	ds := MustNew("t", []Column{{Name: "a"}, {Name: "b"}}, [][]any{
		{"1", "x"},
		{"2", "x"},
		{"3", nil},
	})

	assert.True(t, ds.UniqueNonEmpty([]string{"a"}))
	assert.False(t, ds.UniqueNonEmpty([]string{"b"}), "duplicates and nulls")
	assert.False(t, ds.UniqueNonEmpty([]string{"a", "b"}), "null component")
	assert.False(t, ds.UniqueNonEmpty([]string{"c"}))
	assert.False(t, ds.UniqueNonEmpty(nil))
}

func TestIsPseudoKey(t *testing.T) {
	assert.True(t, IsPseudoKey([]string{"__row"}))
	assert.True(t, IsPseudoKey([]string{"__ROW"}))
	assert.False(t, IsPseudoKey([]string{"__row", "id"}))
	assert.False(t, IsPseudoKey(nil))
}

func TestKindFromDatabaseType(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"INT", KindInt32},
		{"int(11) unsigned", KindInt32},
		{"BIGINT", KindInt64},
		{"integer", KindInt64},
		{"tinyint(1)", KindBool},
		{"tinyint(4)", KindByte},
		{"smallint", KindInt16},
		{"varchar(255)", KindString},
		{"TEXT", KindString},
		{"decimal(10,2)", KindDecimal},
		{"double", KindDouble},
		{"float", KindFloat32},
		{"datetime", KindDateTime},
		{"blob", KindBytes},
		{"uuid", KindGUID},
		{"", KindUnknown},
		{"geometry", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromDatabaseType(tt.in))
		})
	}
}

func TestKindCoerce(t *testing.T) {
	v, ok := KindInt32.Coerce("12")
	assert.True(t, ok)
	assert.Equal(t, int32(12), v)

	_, ok = KindByte.Coerce(300)
	assert.False(t, ok)

	v, ok = KindBool.Coerce(int64(1))
	assert.True(t, ok)
	assert.Equal(t, true, v)

	v, ok = KindString.Coerce(1.5)
	assert.True(t, ok)
	assert.Equal(t, "1.5", v)

	_, ok = KindUnknown.Coerce("x")
	assert.False(t, ok)

	v, ok = KindInt64.Coerce(nil)
	assert.True(t, ok)
	assert.Nil(t, v)
}
