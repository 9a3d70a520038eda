package pagination

import "math"

const (
	// DefaultLimit is applied when the client does not supply a limit.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 50
)

// Params carries the client-supplied paging and sorting choices.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // "ascending" or "descending"
}

// Normalize clamps the page to >= 1 and the limit to (0, MaxLimit],
// substituting DefaultLimit when the limit is unset or out of range.
func (p Params) Normalize() (page, limit int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	limit = p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the record offset for the normalized page and limit.
func (p Params) Offset() int {
	page, limit := p.Normalize()
	return (page - 1) * limit
}

// OrderClause builds an ORDER BY fragment from the sort params, mapping the
// API sort key to a column through the caller's allow-list. Returns "" when
// no (or an unknown) sort was requested, so the query keeps its default
// ordering and arbitrary column names never reach the SQL layer.
func (p Params) OrderClause(allowed map[string]string) string {
	column, ok := allowed[p.SortBy]
	if !ok {
		return ""
	}
	direction := "ASC"
	if p.SortOrder == "descending" {
		direction = "DESC"
	}
	return column + " " + direction
}

// Meta describes the position of a page within the full result set.
type Meta struct {
	TotalRecords int64 `json:"total_records"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PreviousPage *int  `json:"previous_page"`
	NextPage     *int  `json:"next_page"`
}

// NewMeta computes page metadata for a total record count.
func NewMeta(totalRecords int64, p Params) Meta {
	page, limit := p.Normalize()
	totalPages := int(math.Ceil(float64(totalRecords) / float64(limit)))

	meta := Meta{
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
		CurrentPage:  page,
	}
	if page > 1 {
		previous := page - 1
		meta.PreviousPage = &previous
	}
	if totalPages > 0 && page < totalPages {
		next := page + 1
		meta.NextPage = &next
	}
	return meta
}
