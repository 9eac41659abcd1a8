package pagination

import (
	"net/url"
	"strconv"
)

// Reserved query parameters consumed by PageRequestFromQuery.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
)

// PageRequest represents a client request for a page of data.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Offset calculates the number of records to skip based on page and page size.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery parses the page and pageSize parameters from URL query values.
// The result is normalized according to the provided config.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get(ParamPage))
	pageSize, _ := strconv.Atoi(values.Get(ParamPageSize))

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data with links to the neighbouring pages.
type PageResult[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPageResult creates a PageResult. When self is non-nil the next and previous
// links are derived from it by rewriting its page parameter.
func NewPageResult[T any](data []T, total int, req PageRequest, self *url.URL) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	result := PageResult[T]{
		Count:   total,
		Results: data,
	}

	if self == nil {
		return result
	}

	if req.Offset()+len(data) < total {
		result.Next = pageLink(self, req.Page+1)
	}
	if req.Page > 1 {
		result.Previous = pageLink(self, req.Page-1)
	}

	return result
}

func pageLink(self *url.URL, page int) *string {
	u := *self
	q := u.Query()
	q.Set(ParamPage, strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
