package request

import (
	"testing"

	"product-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sortable = map[string]string{"id": "id", "name": "name", "price": "price"}

func TestParseSort(t *testing.T) {
	tests := []struct {
		raw  string
		want SortSpec
	}{
		{"", SortSpec{Field: "id"}},
		{"name", SortSpec{Field: "name"}},
		{"price,desc", SortSpec{Field: "price", Desc: true}},
		{"price, ASC", SortSpec{Field: "price"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSort(tt.raw, sortable)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortRejectsUnknown(t *testing.T) {
	_, err := ParseSort("password", sortable)
	assert.Error(t, err)

	_, err = ParseSort("name,sideways", sortable)
	assert.Error(t, err)
}

func TestPaginatedRequestBounds(t *testing.T) {
	assert.Equal(t, DefaultPageSize, PaginatedRequest{}.Limit())
	assert.Equal(t, MaxPageSize, PaginatedRequest{Size: 500}.Limit())
	assert.Equal(t, 0, PaginatedRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, PaginatedRequest{Page: 2, Size: 20}.Offset())
	assert.Equal(t, 0, PaginatedRequest{Page: -3, Size: 20}.Offset())

	assert.Empty(t, utils.ValidateStruct(PaginatedRequest{Page: MaxPage, Size: MaxPageSize}))
	assert.Equal(t, MaxPage*MaxPageSize, PaginatedRequest{Page: MaxPage, Size: MaxPageSize}.Offset())

	huge := PaginatedRequest{Page: 100_000_000_000_000_000, Size: MaxPageSize}
	assert.Contains(t, utils.ValidateStruct(huge), "page")
	assert.Positive(t, huge.Offset())
}
