package table

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"post-dashboard/cmd/dashboard/clients/postclient"
)

const MinColumnWidth = 20

// Column 은 게시글 표의 고정 컬럼 정의다.
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
	Width  int    `json:"width"`
}

// Columns 는 표시 순서대로의 기본 컬럼이다.
var Columns = []Column{
	{Key: "id", Header: "ID", Width: 80},
	{Key: "userId", Header: "작성자", Width: 120},
	{Key: "title", Header: "게시글 제목", Width: 220},
	{Key: "body", Header: "게시글 본문", Width: 320},
	{Key: "category", Header: "카테고리", Width: 120},
	{Key: "tags", Header: "태그", Width: 200},
	{Key: "createdAt", Header: "시간", Width: 160},
}

var ErrUnknownColumn = errors.New("table: unknown column")

func lookup(key string) (Column, bool) {
	for _, c := range Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Layout 은 컬럼 너비와 표시 여부다. 목록 fetch 와 무관한 로컬 상태다.
type Layout struct {
	mu     sync.RWMutex
	widths map[string]int
	hidden map[string]bool
}

func NewLayout() *Layout {
	return &Layout{widths: map[string]int{}, hidden: map[string]bool{}}
}

// Resize 는 컬럼 너비를 바꾼다. MinColumnWidth 보다 작으면 MinColumnWidth 로 맞춘다.
func (l *Layout) Resize(key string, width int) error {
	if _, ok := lookup(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if width < MinColumnWidth {
		width = MinColumnWidth
	}
	l.mu.Lock()
	l.widths[key] = width
	l.mu.Unlock()
	return nil
}

func (l *Layout) SetVisible(key string, visible bool) error {
	if _, ok := lookup(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	l.mu.Lock()
	if visible {
		delete(l.hidden, key)
	} else {
		l.hidden[key] = true
	}
	l.mu.Unlock()
	return nil
}

// Toggle 은 표시 여부를 뒤집고 바뀐 값을 돌려준다.
func (l *Layout) Toggle(key string) (bool, error) {
	if _, ok := lookup(key); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hidden[key] {
		delete(l.hidden, key)
		return true, nil
	}
	l.hidden[key] = true
	return false, nil
}

// ColumnState 는 컬럼 하나의 현재 상태다.
type ColumnState struct {
	Column
	Visible bool `json:"visible"`
}

// State 는 모든 컬럼의 현재 상태를 기본 순서대로 돌려준다.
func (l *Layout) State() []ColumnState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ColumnState, 0, len(Columns))
	for _, c := range Columns {
		if w, ok := l.widths[c.Key]; ok {
			c.Width = w
		}
		out = append(out, ColumnState{Column: c, Visible: !l.hidden[c.Key]})
	}
	return out
}

// Row 는 표의 한 줄이다. Cells 는 보이는 컬럼 순서를 따른다.
type Row struct {
	ID    string   `json:"id"`
	Cells []string `json:"cells"`
	Link  string   `json:"link"`
}

type View struct {
	Columns []ColumnState `json:"columns"`
	Headers []string      `json:"headers"`
	Rows    []Row         `json:"rows"`
}

// Project 는 게시글 목록을 현재 레이아웃으로 표에 투영한다. 행 순서는 입력 순서 그대로다.
func (l *Layout) Project(posts []postclient.Post) View {
	state := l.State()
	visible := make([]ColumnState, 0, len(state))
	headers := make([]string, 0, len(state))
	for _, c := range state {
		if c.Visible {
			visible = append(visible, c)
			headers = append(headers, c.Header)
		}
	}

	rows := make([]Row, 0, len(posts))
	for _, p := range posts {
		cells := make([]string, 0, len(visible))
		for _, c := range visible {
			cells = append(cells, Cell(p, c.Key))
		}
		id := string(p.ID)
		rows = append(rows, Row{ID: id, Cells: cells, Link: RowLink(id)})
	}
	return View{Columns: state, Headers: headers, Rows: rows}
}

// Cell 은 게시글의 컬럼 값을 문자열로 만든다. 태그는 ", " 로 잇는다.
func Cell(p postclient.Post, key string) string {
	switch key {
	case "id":
		return string(p.ID)
	case "userId":
		return p.UserID
	case "title":
		return p.Title
	case "body":
		return p.Body
	case "category":
		return p.Category
	case "tags":
		return strings.Join(p.Tags, ", ")
	case "createdAt":
		return p.CreatedAt
	default:
		return ""
	}
}

// RowLink 는 행을 눌렀을 때 이동할 편집 화면 경로다.
func RowLink(id string) string {
	return "/post/write?id=" + url.QueryEscape(id)
}
