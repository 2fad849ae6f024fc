package models

import "slices"

const DefaultPageSize = 12

var PageSizes = []int{6, 12, 24}

func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// NextPageSize cycles through PageSizes.
func NextPageSize(n int) int {
	i := slices.Index(PageSizes, n)
	return PageSizes[(i+1)%len(PageSizes)]
}

type PageCursor struct {
	Page int `json:"page"`
	Size int `json:"page_size"`
}

func NewCursor(size int) PageCursor {
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	return PageCursor{Page: 1, Size: size}
}

// TotalPages is ceil(count/size), never below 1.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return max(1, (count+size-1)/size)
}

func (c PageCursor) Clamp(totalPages int) PageCursor {
	c.Page = min(max(c.Page, 1), max(totalPages, 1))
	return c
}
