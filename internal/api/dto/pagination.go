package dto

import "fmt"

// PageLinks carries navigation URLs for a listing page. Prev and Next are
// null at the respective edges.
type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// PageMeta carries pagination bookkeeping. From and To are null for an empty
// page.
type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int    `json:"total"`
}

// NewPageMeta computes metadata for a page holding count items out of total
// matches. last_page is ceil(total/perPage), never below 1.
func NewPageMeta(path string, page, perPage, count, total int) PageMeta {
	meta := PageMeta{
		CurrentPage: page,
		LastPage:    lastPage(total, perPage),
		Path:        path,
		PerPage:     perPage,
		Total:       total,
	}
	if count > 0 {
		from := (page-1)*perPage + 1
		to := from + count - 1
		meta.From = &from
		meta.To = &to
	}
	return meta
}

// NewPageLinks builds the first/last/prev/next URLs for a page.
func NewPageLinks(path string, page, perPage, total int) PageLinks {
	last := lastPage(total, perPage)
	links := PageLinks{
		First: pageURL(path, 1, perPage),
		Last:  pageURL(path, last, perPage),
	}
	if page > 1 {
		prev := pageURL(path, page-1, perPage)
		links.Prev = &prev
	}
	if page < last {
		next := pageURL(path, page+1, perPage)
		links.Next = &next
	}
	return links
}

func lastPage(total, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	return last
}

func pageURL(path string, page, perPage int) string {
	return fmt.Sprintf("%s?page=%d&per_page=%d", path, page, perPage)
}
