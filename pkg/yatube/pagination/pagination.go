package pagination

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PerPage is the number of posts on every listing page
const PerPage = 10

// Page is one page of a listing
type Page[T any] struct {
	Items    []T
	Number   int   // 1-based
	NumPages int   // always >= 1, an empty listing has one empty page
	Count    int64 // total number of items across all pages
	PerPage  int
}

// NumPages returns the number of pages needed for count items
func NumPages(count int64, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 1
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}

// ParseNumber turns the raw ?page= value into a valid page number.
// Missing or non-numeric values give the first page, numbers out of range the last one.
func ParseNumber(raw string, numPages int) int {
	if numPages < 1 {
		numPages = 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		// an integer, just too big (or too small) for int
		return numPages
	} else if err != nil {
		return 1
	}
	if n < 1 || n > numPages {
		return numPages
	}
	return n
}

// Paginate counts the rows matched by query and loads the requested page into a Page.
// scopes (ordering, preloads) are applied to the page query only so counting stays portable.
func Paginate[T any](query *gorm.DB, raw string, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	base := query.Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, err
	}

	page := &Page[T]{
		NumPages: NumPages(count, perPage),
		Count:    count,
		PerPage:  perPage,
		Items:    []T{},
	}
	page.Number = ParseNumber(raw, page.NumPages)
	if count == 0 {
		return page, nil
	}

	offset := (page.Number - 1) * perPage
	if err := base.Scopes(scopes...).Offset(offset).Limit(perPage).Find(&page.Items).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.NumPages > 1
}

func (p *Page[T]) NextNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousNumber() int {
	return p.Number - 1
}

// PageRange lists every page number, for the paginator links
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
