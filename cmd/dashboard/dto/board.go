package dto

import "post-dashboard/cmd/dashboard/table"

// FilterRequestDTO 는 목록 조회 조건이다. 빈 값은 "지정 안 함" 이다.
type FilterRequestDTO struct {
	Sort     string `json:"sort" example:"createdAt"`
	Order    string `json:"order" example:"desc"`
	Category string `json:"category" example:"NOTICE"`
	Search   string `json:"search" example:"공지"`
}

// SentinelRequestDTO 는 목록 끝 sentinel 과 뷰포트 사이 거리다.
type SentinelRequestDTO struct {
	Distance int `json:"distance" example:"120"`
}

// ColumnRequestDTO 는 컬럼 너비/표시 여부 변경이다. 지정한 필드만 반영된다.
type ColumnRequestDTO struct {
	Width   *int  `json:"width,omitempty" example:"240"`
	Visible *bool `json:"visible,omitempty" example:"true"`
}

// BoardResponseDTO 는 표 화면 상태다.
type BoardResponseDTO struct {
	Filter     FilterRequestDTO `json:"filter"`
	Table      table.View       `json:"table"`
	Count      int              `json:"count" example:"20"`
	NextCursor string           `json:"nextCursor,omitempty" example:"MjA="`
	HasNext    bool             `json:"hasNext"`
	Fetching   bool             `json:"fetching"`
	Fetched    bool             `json:"fetched"`
	Error      string           `json:"error,omitempty"`
}
