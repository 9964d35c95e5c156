package domain

import (
	"fmt"
	"math"
)

// Page window bounds for list endpoints that page. MaxPage keeps the
// offset of the last window representable.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = math.MaxInt32 / MaxPageLimit
)

// PaginationParams is a 1-indexed page window.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams applies defaults to optional query values. Values
// below 1 are ignored, the page is clamped to MaxPage and the limit to
// MaxPageLimit. Callers that must reject out-of-range pages check
// ValidatePage first.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = min(*page, MaxPage)
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset is the number of rows before the window.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is the number of windows needed for total rows, at least one.
func (p PaginationParams) TotalPages(total int) int {
	if p.Limit <= 0 || total <= 0 {
		return 1
	}
	return (total + p.Limit - 1) / p.Limit
}

// ValidatePage rejects a requested page beyond MaxPage.
func ValidatePage(page *int) error {
	if page != nil && *page > MaxPage {
		return fmt.Errorf("%w: page must be at most %d", ErrValidation, MaxPage)
	}
	return nil
}
