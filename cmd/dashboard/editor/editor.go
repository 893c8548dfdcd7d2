package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"post-dashboard/cmd/dashboard/apperr"
)

const (
	MaxTitleLength = 80
	MaxBodyLength  = 2000

	DefaultCategory = "NOTICE"
)

var (
	ErrReadOnly   = errors.New("editor: draft is read-only")
	ErrSubmitting = errors.New("editor: submit in progress")
)

// State 는 편집기 상태다.
//
//	ReadOnly -> Editing -> Submitting -> (ReadOnly | Editing)
type State int

const (
	ReadOnly State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case ReadOnly:
		return "read_only"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Draft 는 작성/수정 중인 게시글이다. ID 가 비어 있으면 새 글이다.
type Draft struct {
	ID       string   `json:"id,omitempty"`
	UserID   string   `json:"userId,omitempty"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (d Draft) clone() Draft {
	tags := make([]string, len(d.Tags))
	copy(tags, d.Tags)
	d.Tags = tags
	return d
}

// Submitter 는 검증을 통과한 Draft 를 백엔드로 보낸다.
type Submitter interface {
	CreatePost(ctx context.Context, d Draft) (string, error)
	UpdatePost(ctx context.Context, d Draft) error
}

// Editor 는 게시글 하나의 편집 상태 머신이다. 동시 사용은 안전하지 않다.
type Editor struct {
	state State
	draft Draft
	guard *Guard
}

// New 는 새 글 편집기를 만든다. 바로 Editing 상태이며 카테고리는 NOTICE 다.
func New(guard *Guard) *Editor {
	if guard == nil {
		guard = NewGuard(nil)
	}
	return &Editor{
		state: Editing,
		draft: Draft{Category: DefaultCategory, Tags: []string{}},
		guard: guard,
	}
}

// Open 은 기존 글을 ReadOnly 상태로 연다.
func Open(guard *Guard, d Draft) *Editor {
	e := New(guard)
	e.state = ReadOnly
	e.draft = d.clone()
	return e
}

func (e *Editor) State() State { return e.state }

func (e *Editor) Draft() Draft { return e.draft.clone() }

// BeginEdit 은 ReadOnly 에서 Editing 으로 바꾼다.
func (e *Editor) BeginEdit() error {
	switch e.state {
	case Submitting:
		return ErrSubmitting
	default:
		e.state = Editing
		return nil
	}
}

func (e *Editor) editable() error {
	switch e.state {
	case Editing:
		return nil
	case Submitting:
		return ErrSubmitting
	default:
		return ErrReadOnly
	}
}

func (e *Editor) SetTitle(v string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Title = v
	return nil
}

func (e *Editor) SetBody(v string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Body = v
	return nil
}

func (e *Editor) SetCategory(v string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Category = strings.ToUpper(strings.TrimSpace(v))
	return nil
}

// AddTags 는 raw 를 태그로 나눠 추가한다. 5개를 넘는 태그는 조용히 무시된다.
func (e *Editor) AddTags(raw string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Tags = MergeTags(e.draft.Tags, raw)
	return nil
}

func (e *Editor) RemoveTag(tag string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Tags = RemoveTag(e.draft.Tags, tag)
	return nil
}

// Backspace 는 태그 입력창이 비어 있을 때 마지막 태그를 지운다.
func (e *Editor) Backspace(input string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Tags = Backspace(e.draft.Tags, input)
	return nil
}

// Validate 는 제목, 본문, 카테고리, 금칙어, 길이 순서로 검사하고 첫 번째 오류를 돌려준다.
func (e *Editor) Validate() error {
	d := e.draft
	if strings.TrimSpace(d.Title) == "" {
		return apperr.NewValidation("title", "제목을 입력해주세요.")
	}
	if strings.TrimSpace(d.Body) == "" {
		return apperr.NewValidation("body", "본문을 입력해주세요.")
	}
	if d.Category == "" {
		return apperr.NewValidation("category", "카테고리를 선택해주세요.")
	}
	if !IsCategory(d.Category) {
		return apperr.NewValidation("category", "카테고리는 NOTICE, QNA, FREE 중 하나여야 합니다.")
	}
	if word, found := e.guard.Find(d.Title + " " + d.Body); found {
		return apperr.NewValidation("body", fmt.Sprintf("등록 불가: 금칙어(%q)가 포함되어 있습니다.", word))
	}
	if utf8.RuneCountInString(d.Title) > MaxTitleLength {
		return apperr.NewValidation("title", fmt.Sprintf("제목은 %d자 이하로 입력해주세요.", MaxTitleLength))
	}
	if utf8.RuneCountInString(d.Body) > MaxBodyLength {
		return apperr.NewValidation("body", fmt.Sprintf("본문은 %d자 이하로 입력해주세요.", MaxBodyLength))
	}
	if len(d.Tags) > MaxTags {
		return apperr.NewValidation("tags", fmt.Sprintf("태그는 최대 %d개까지 입력할 수 있습니다.", MaxTags))
	}
	return nil
}

// Result 는 제출 결과다.
type Result struct {
	Created bool   `json:"created"`
	ID      string `json:"id,omitempty"`
}

// Submit 은 검증 후 ID 유무에 따라 생성 또는 수정을 요청한다.
// 검증에 실패하면 네트워크를 호출하지 않는다. 요청이 실패하면 Editing 으로 돌아가고
// Draft 는 그대로 유지된다. 성공하면 ReadOnly 가 된다.
func (e *Editor) Submit(ctx context.Context, s Submitter) (Result, error) {
	if err := e.editable(); err != nil {
		return Result{}, err
	}
	if err := e.Validate(); err != nil {
		return Result{}, err
	}

	e.state = Submitting
	d := e.draft.clone()

	var res Result
	var err error
	if d.ID == "" {
		var id string
		id, err = s.CreatePost(ctx, d)
		res = Result{Created: true, ID: id}
	} else {
		err = s.UpdatePost(ctx, d)
		res = Result{ID: d.ID}
	}
	if err != nil {
		e.state = Editing
		return Result{}, err
	}

	if res.ID != "" {
		e.draft.ID = res.ID
	}
	e.state = ReadOnly
	return res, nil
}

// IsCategory 는 v 가 NOTICE, QNA, FREE 중 하나인지 확인한다.
func IsCategory(v string) bool {
	switch v {
	case "NOTICE", "QNA", "FREE":
		return true
	}
	return false
}
