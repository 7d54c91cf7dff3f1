package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		expected int
	}{
		{"empty", 0, 10, 0},
		{"exact multiple", 20, 10, 2},
		{"remainder", 21, 10, 3},
		{"single item", 1, 10, 1},
		{"page size one", 7, 1, 7},
		{"invalid page size falls back to default", 25, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageCount(tt.total, tt.pageSize))
		})
	}
}

func TestPageCountMatchesCeil(t *testing.T) {
	for n := 0; n <= 50; n++ {
		for size := 1; size <= 12; size++ {
			want := n / size
			if n%size != 0 {
				want++
			}
			assert.Equal(t, want, PageCount(n, size), "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateStaysInsideWindow(t *testing.T) {
	for n := 0; n <= 30; n++ {
		items := sequence(n)
		for size := 1; size <= 8; size++ {
			count := PageCount(n, size)
			for page := 1; page <= count; page++ {
				got := Paginate(items, size, page)
				assert.LessOrEqual(t, len(got), size)
				for _, v := range got {
					assert.GreaterOrEqual(t, v, (page-1)*size)
					assert.Less(t, v, page*size)
				}
			}
		}
	}
}

func TestPaginateClampsOutOfRangePages(t *testing.T) {
	items := sequence(25)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, Paginate(items, 10, 0))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, Paginate(items, 10, -3))
	assert.Equal(t, []int{20, 21, 22, 23, 24}, Paginate(items, 10, 99))
	assert.Empty(t, Paginate([]int{}, 10, 4))
}

func TestPaginateDoesNotLeakCapacity(t *testing.T) {
	items := sequence(10)
	page := Paginate(items, 3, 1)
	page = append(page, 100)

	assert.Equal(t, 3, items[3], "appending to a page must not overwrite the source")
	assert.Len(t, page, 4)
}

func TestPaginatorClampsAfterCollectionShrinks(t *testing.T) {
	p := NewPaginator(10)
	p.GoTo(5)

	page := Apply(p, sequence(48))
	assert.Equal(t, 5, page.Page)
	assert.Equal(t, []int{40, 41, 42, 43, 44, 45, 46, 47}, page.Items)

	// a narrower filter leaves only 12 items; the paginator is not reset explicitly
	page = Apply(p, sequence(12))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageCount)
	assert.Equal(t, []int{10, 11}, page.Items)
	assert.Equal(t, 2, p.Current())

	page = Apply(p, []int{})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.PageCount)
	assert.Empty(t, page.Items)
}

func TestPaginatorNavigation(t *testing.T) {
	p := NewPaginator(0)
	assert.Equal(t, DefaultPageSize, p.PageSize())

	p.Prev()
	assert.Equal(t, 1, p.Current())

	p.Next()
	p.Next()
	assert.Equal(t, 3, p.Current())

	p.GoTo(-1)
	assert.Equal(t, 1, p.Current())

	p.GoTo(4)
	p.Reset()
	assert.Equal(t, 1, p.Current())
}
