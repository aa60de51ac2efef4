package response

import "product-catalog/pkg/utils"

type PaginatedResponse[T any] struct {
	Content    []T            `json:"content"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPaginatedResponse[T any](content []T, page, size int, total int64) *PaginatedResponse[T] {
	if content == nil {
		content = []T{}
	}

	return &PaginatedResponse[T]{
		Content: content,
		Pagination: PaginationMeta{
			Page:          page,
			Size:          size,
			TotalElements: total,
			TotalPages:    utils.CalculateTotalPages(total, size),
		},
	}
}
