package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfixture/oaserrors"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    []Segment
		wantErr bool
	}{
		{name: "empty", path: "", want: nil},
		{name: "single", path: "data", want: []Segment{{Name: "data"}}},
		{
			name: "dotted with index",
			path: "data.items[0].id",
			want: []Segment{{Name: "data"}, {Name: "items"}, {Index: 0, IsIndex: true}, {Name: "id"}},
		},
		{
			name: "nested index",
			path: "grid[1][2]",
			want: []Segment{{Name: "grid"}, {Index: 1, IsIndex: true}, {Index: 2, IsIndex: true}},
		},
		{name: "leading index", path: "[3]", want: []Segment{{Index: 3, IsIndex: true}}},
		{name: "empty segment", path: "a..b", wantErr: true},
		{name: "unterminated", path: "a[1", wantErr: true},
		{name: "bad index", path: "a[x]", wantErr: true},
		{name: "junk after index", path: "a[1]b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, oaserrors.ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.path, FormatPath(got))
		})
	}
}

func TestLookup(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"data":{"items":[{"id":"a"},{"id":"b"}]}}`))
	require.NoError(t, err)

	got, err := Lookup(v, "data.items[1].id")
	require.NoError(t, err)
	assert.Equal(t, String("b"), got)

	_, err = Lookup(v, "data.items[5]")
	assert.ErrorIs(t, err, oaserrors.ErrValue)

	_, err = Lookup(v, "data.missing")
	assert.ErrorIs(t, err, oaserrors.ErrValue)

	_, err = Lookup(v, "data.items.id")
	assert.ErrorIs(t, err, oaserrors.ErrType)

	_, err = Lookup(v, "data[0]")
	assert.ErrorIs(t, err, oaserrors.ErrType)
}
