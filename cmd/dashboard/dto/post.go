package dto

// PostDTO 는 게시글 상세다.
type PostDTO struct {
	ID        string   `json:"id" example:"1"`
	UserID    string   `json:"userId" example:"1"`
	Title     string   `json:"title" example:"공지사항"`
	Body      string   `json:"body" example:"본문"`
	Category  string   `json:"category" example:"NOTICE"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt" example:"2024-01-01T00:00:00Z"`
	EditURL   string   `json:"editUrl" example:"/post/write?id=1"`
}

// PostWriteRequestDTO 는 작성/수정 요청이다. Tags 는 쉼표 또는 줄바꿈으로 구분한 원문이다.
type PostWriteRequestDTO struct {
	Title    string `json:"title" example:"공지사항"`
	Body     string `json:"body" example:"본문"`
	Category string `json:"category" example:"NOTICE"`
	Tags     string `json:"tags" example:"go, gin"`
}

type PostWriteResponseDTO struct {
	ID      string `json:"id" example:"21"`
	Created bool   `json:"created"`
	State   string `json:"state" example:"read_only"`
}

// TagPreviewRequestDTO 는 태그 입력 미리보기다.
//
//	action: "add" (기본) 또는 "backspace"
type TagPreviewRequestDTO struct {
	Tags   []string `json:"tags"`
	Input  string   `json:"input" example:"react, vue"`
	Action string   `json:"action" example:"add"`
}

type TagPreviewResponseDTO struct {
	Tags []string `json:"tags"`
}
