package pagination

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 25
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps the inputs to sane bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset converts the page number into a row offset.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// Page describes one page of results for response envelopes.
type Page struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalRows  int64 `json:"total_rows"`
	TotalPages int64 `json:"total_pages"`
}

// NewPage computes the page descriptor for a total row count.
func NewPage(params Params, totalRows int64) Page {
	n := params.Normalize()
	totalPages := totalRows / int64(n.PerPage)
	if totalRows%int64(n.PerPage) != 0 {
		totalPages++
	}
	return Page{
		Page:       n.Page,
		PerPage:    n.PerPage,
		TotalRows:  totalRows,
		TotalPages: totalPages,
	}
}
