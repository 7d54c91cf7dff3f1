package pagination

const DefaultPageSize = 10

// PageCount returns ceil(total/pageSize). An empty collection has zero pages.
func PageCount(total, pageSize int) int {
	pageSize = normalizeSize(pageSize)
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage keeps a 1-indexed page inside [1, pageCount]. With no pages it returns 1.
func ClampPage(page, pageCount int) int {
	if pageCount < 1 || page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// Paginate returns the items of the requested 1-indexed page, clamping the page
// number into range first. The returned slice shares the backing array of items.
func Paginate[T any](items []T, pageSize, page int) []T {
	pageSize = normalizeSize(pageSize)
	page = ClampPage(page, PageCount(len(items), pageSize))

	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0:0]
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end:end]
}

// Paginator remembers the page an operator is on. The page is re-clamped every time
// it is applied, so a collection that shrank under a filter change never leaves the
// paginator pointing past its last page.
type Paginator struct {
	pageSize int
	current  int
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	PageCount  int `json:"page_count"`
	TotalItems int `json:"total_items"`
}

func NewPaginator(pageSize int) *Paginator {
	return &Paginator{pageSize: normalizeSize(pageSize), current: 1}
}

func (p *Paginator) PageSize() int {
	return p.pageSize
}

func (p *Paginator) Current() int {
	return p.current
}

// GoTo sets the requested page. Bounds are enforced when the paginator is applied.
func (p *Paginator) GoTo(page int) {
	if page < 1 {
		page = 1
	}
	p.current = page
}

func (p *Paginator) Next() { p.current++ }

func (p *Paginator) Prev() {
	if p.current > 1 {
		p.current--
	}
}

// Reset returns to the first page.
func (p *Paginator) Reset() {
	p.current = 1
}

// Apply slices items for the current page and stores the clamped page back.
func Apply[T any](p *Paginator, items []T) Page[T] {
	count := PageCount(len(items), p.pageSize)
	p.current = ClampPage(p.current, count)

	return Page[T]{
		Items:      Paginate(items, p.pageSize, p.current),
		Page:       p.current,
		PageSize:   p.pageSize,
		PageCount:  count,
		TotalItems: len(items),
	}
}

func normalizeSize(pageSize int) int {
	if pageSize < 1 {
		return DefaultPageSize
	}
	return pageSize
}
