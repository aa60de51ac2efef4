package request

import (
	"fmt"
	"strings"

	"product-catalog/pkg/utils"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1_000_000
	DefaultSort     = "id"
)

// PaginatedRequest uses zero-based pages.
type PaginatedRequest struct {
	Page int    `json:"page" validate:"min=0,max=1000000"`
	Size int    `json:"size" validate:"min=0,max=100"`
	Sort string `json:"sort"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.Size < 1 {
		return DefaultPageSize
	}
	if p.Size > MaxPageSize {
		return MaxPageSize
	}
	return p.Size
}

type SortSpec struct {
	Field string
	Desc  bool
}

// ParseSort reads "field" or "field,asc|desc". An empty value sorts by id ascending.
func ParseSort(raw string, allowed map[string]string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{Field: DefaultSort}, nil
	}

	field, direction, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if _, ok := allowed[field]; !ok {
		return SortSpec{}, fmt.Errorf("unsupported sort field %q", field)
	}

	spec := SortSpec{Field: field}
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc":
	case "desc":
		spec.Desc = true
	default:
		return SortSpec{}, fmt.Errorf("unsupported sort direction %q", direction)
	}

	return spec, nil
}
