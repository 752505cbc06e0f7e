package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

	tests := []struct {
		name      string
		items     []int
		size      int
		page      int
		wantTotal int
		wantItems []int
	}{
		{name: "first page", items: items, size: 6, page: 1, wantTotal: 3, wantItems: []int{1, 2, 3, 4, 5, 6}},
		{name: "last partial page", items: items, size: 6, page: 3, wantTotal: 3, wantItems: []int{13}},
		{name: "past the end", items: items, size: 6, page: 4, wantTotal: 3},
		{name: "page zero", items: items, size: 6, page: 0, wantTotal: 3},
		{name: "empty list", items: nil, size: 6, page: 1, wantTotal: 0},
		{name: "exact multiple", items: items[:12], size: 4, page: 3, wantTotal: 3, wantItems: []int{9, 10, 11, 12}},
		{name: "invalid size", items: items, size: 0, page: 1, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.items, tt.size, tt.page)
			assert.Equal(t, tt.wantTotal, got.TotalPages)
			if tt.wantItems == nil {
				assert.Empty(t, got.Items)
				return
			}
			assert.Equal(t, tt.wantItems, got.Items)
		})
	}
}

func TestPaginateConcatenationReproducesInput(t *testing.T) {
	for n := 0; n <= 25; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for size := 1; size <= 8; size++ {
			total := Paginate(items, size, 1).TotalPages
			assert.Equal(t, (n+size-1)/size, total, "n=%d size=%d", n, size)

			var joined []int
			for page := 1; page <= total; page++ {
				joined = append(joined, Paginate(items, size, page).Items...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, items, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateItemsDoNotClobberNextPage(t *testing.T) {
	items := []int{1, 2, 3, 4}
	first := Paginate(items, 2, 1).Items
	_ = append(first, 99)

	assert.Equal(t, []int{3, 4}, Paginate(items, 2, 2).Items)
}
