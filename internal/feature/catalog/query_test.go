package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSortMapping(t *testing.T) {
	cases := map[string]string{
		"rating":         "average_rating DESC",
		"sustainability": "sustainability_score DESC",
		"price-low":      "price ASC",
		"price-high":     "price DESC",
		"":               "created_at DESC",
		"bogus":          "created_at DESC",
	}
	for sortBy, want := range cases {
		q := Build(Params{SortBy: sortBy, Page: 1, Limit: 20})
		assert.Equal(t, want, q.OrderBy, "sortBy=%q", sortBy)
	}
}

func TestBuildCategoryAllMeansNoFilter(t *testing.T) {
	assert.Empty(t, Build(Params{Category: "all"}).Category)
	assert.Empty(t, Build(Params{Category: "  all  "}).Category)
	assert.Equal(t, "clothing", Build(Params{Category: "clothing"}).Category)
}

func TestBuildClampsPagination(t *testing.T) {
	// 负页码钳到 1，offset 不会为负
	q := Build(Params{Page: -3, Limit: 20})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 0, q.Offset)

	// limit 超上限钳到 100
	q = Build(Params{Page: 2, Limit: 9999})
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, 100, q.Offset)

	// limit <= 0 回落默认值
	q = Build(Params{Page: 1, Limit: 0})
	assert.Equal(t, DefaultLimit, q.Limit)

	q = Build(Params{Page: 3, Limit: 10})
	assert.Equal(t, 20, q.Offset)
}

func TestBuildSearchFields(t *testing.T) {
	q := Build(Params{Search: "  bamboo  "}, "name", "brand")
	assert.Equal(t, "bamboo", q.Search)
	assert.Equal(t, []string{"name", "brand"}, q.SearchFields)
}

func TestPages(t *testing.T) {
	assert.EqualValues(t, 0, Pages(0, 20))
	assert.EqualValues(t, 1, Pages(1, 20))
	assert.EqualValues(t, 1, Pages(20, 20))
	assert.EqualValues(t, 2, Pages(21, 20))
	assert.EqualValues(t, 5, Pages(100, 20))
	assert.EqualValues(t, 0, Pages(10, 0))
}
