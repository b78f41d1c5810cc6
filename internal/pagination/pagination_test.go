package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("", DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, Params{Number: 1, Size: 20}, p)
	assert.Equal(t, 0, p.Offset())

	p, err = Parse("3", ReviewPageSize)
	require.NoError(t, err)
	assert.Equal(t, 60, p.Offset())
	assert.Equal(t, 30, p.Limit())

	for _, raw := range []string{"0", "-1", "two", "1.5"} {
		_, err := Parse(raw, DefaultPageSize)
		assert.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}

func TestNewLinks(t *testing.T) {
	u, err := url.Parse("http://example.com/recipes/?search=pie&page=2")
	require.NoError(t, err)

	page, err := New(u, Params{Number: 2, Size: 2}, 5, []int{3, 4})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Count)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/recipes/?page=3&search=pie", *page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/recipes/?search=pie", *page.Previous)

	page, err = New(u, Params{Number: 3, Size: 2}, 5, []int{5})
	require.NoError(t, err)
	assert.Nil(t, page.Next)
}

func TestNewEmptyAndOutOfRange(t *testing.T) {
	u := &url.URL{Scheme: "http", Host: "example.com", Path: "/reviews/"}

	page, err := New[int](u, Params{Number: 1, Size: 30}, 0, nil)
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)

	_, err = New[int](u, Params{Number: 2, Size: 30}, 30, nil)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestMap(t *testing.T) {
	out := Map([]int{1, 2, 3}, func(i int) string { return string(rune('a' + i - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, out)
	assert.Equal(t, []string{}, Map[int, string](nil, func(int) string { return "" }))
}
