package search

// Page is a clamped pagination request.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps the raw page/pageSize to the valid window: page >= 1,
// size in [1, maxSize]. A size below 1 recovers to defaultSize rather
// than clamping to 1; an oversized value clamps to maxSize.
func NewPage(number, size, defaultSize, maxSize int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return Page{Number: number, Size: size}
}

// Offset is the zero-based slice start handed to the index LIMIT clause.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// Info is the response-side pagination metadata.
type Info struct {
	TotalCount  int64 `json:"total_count"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Paginate derives the page metadata for a total match count. Requesting
// a page past the end is not an error: it yields an empty slice with
// truthful metadata, since the total may have moved between fetches.
func (p Page) Paginate(totalCount int64) Info {
	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(p.Size) - 1) / int64(p.Size))
	}
	return Info{
		TotalCount:  totalCount,
		Page:        p.Number,
		PageSize:    p.Size,
		TotalPages:  totalPages,
		HasNext:     p.Number < totalPages,
		HasPrevious: p.Number > 1,
	}
}
