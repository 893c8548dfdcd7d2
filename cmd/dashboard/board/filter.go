package board

import (
	"strings"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/clients/postclient"
	"post-dashboard/cmd/dashboard/editor"
)

const (
	SortCreatedAt = "createdAt"
	SortTitle     = "title"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Filter 는 목록 조회 조건이다. 빈 문자열은 "지정 안 함" 이다.
// 어떤 필드든 바뀌면 누적된 목록을 버리고 첫 페이지부터 다시 불러온다.
type Filter struct {
	Sort     string `json:"sort,omitempty"`
	Order    string `json:"order,omitempty"`
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Normalize 는 앞뒤 공백을 제거한 Filter 를 돌려준다.
func (f Filter) Normalize() Filter {
	return Filter{
		Sort:     strings.TrimSpace(f.Sort),
		Order:    strings.ToLower(strings.TrimSpace(f.Order)),
		Category: strings.ToUpper(strings.TrimSpace(f.Category)),
		Search:   strings.TrimSpace(f.Search),
	}
}

func (f Filter) Validate() error {
	switch f.Sort {
	case "", SortCreatedAt, SortTitle:
	default:
		return apperr.NewValidation("sort", "정렬 기준은 createdAt 또는 title 이어야 합니다.")
	}
	switch f.Order {
	case "", OrderAsc, OrderDesc:
	default:
		return apperr.NewValidation("order", "정렬 방향은 asc 또는 desc 이어야 합니다.")
	}
	if f.Category != "" && !editor.IsCategory(f.Category) {
		return apperr.NewValidation("category", "카테고리는 NOTICE, QNA, FREE 중 하나여야 합니다.")
	}
	return nil
}

// Params 는 Filter 와 커서로 GET /posts 쿼리를 만든다.
func (f Filter) Params(limit int, cursor string) postclient.ListParams {
	return postclient.ListParams{
		Limit:      limit,
		Sort:       f.Sort,
		Order:      f.Order,
		Category:   f.Category,
		Search:     f.Search,
		NextCursor: cursor,
	}
}
