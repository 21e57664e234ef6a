package router

import (
	"sustainably-yours/internal/feature/catalog"
)

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type listOut[T any] struct {
	Items      []T        `json:"items"`
	Pagination pagination `json:"pagination"`
}

func newListOut[T any](items []T, page, limit int, total int64) listOut[T] {
	if items == nil {
		items = []T{}
	}
	return listOut[T]{
		Items: items,
		Pagination: pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: catalog.Pages(total, limit),
		},
	}
}
