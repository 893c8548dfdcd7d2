package postclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/internal/logger"
)

// Client는 게시글 REST API(/posts)를 호출하는 얇은 클라이언트다.
// 인증 헤더는 BaseClient 의 TokenSource 가 붙인다.
type Client struct {
	base *httpclient.BaseClient
}

func New(base *httpclient.BaseClient) *Client {
	return &Client{base: base}
}

const maxBodySize = 5 * 1024 * 1024

// -------------------- DTOs --------------------

// ID 는 백엔드가 문자열 또는 숫자로 보내는 게시글 id 를 문자열로 받는다.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("post id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Post struct {
	ID        ID       `json:"id"`
	UserID    string   `json:"userId"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
}

type Page struct {
	Items      []Post `json:"items"`
	PrevCursor string `json:"prevCursor,omitempty"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// ListParams 는 GET /posts 쿼리다. 빈 값은 전송하지 않는다.
type ListParams struct {
	Limit      int
	Sort       string
	Order      string
	Category   string
	Search     string
	NextCursor string
	PrevCursor string
	From       string
	To         string
}

func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	set := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}
	set("sort", p.Sort)
	set("order", p.Order)
	set("category", p.Category)
	set("search", p.Search)
	set("nextCursor", p.NextCursor)
	set("prevCursor", p.PrevCursor)
	set("from", p.From)
	set("to", p.To)
	return q
}

// WriteRequest 는 생성/수정 요청 바디다.
type WriteRequest struct {
	ID       string   `json:"id,omitempty"`
	UserID   string   `json:"userId,omitempty"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// -------------------- Calls --------------------

// List는 GET /posts 를 호출한다.
func (c *Client) List(ctx context.Context, params ListParams) (Page, error) {
	const op = "posts List"
	body, err := c.call(ctx, op, http.MethodGet, "/posts", params.Values(), nil, http.StatusOK, nil)
	if err != nil {
		return Page{}, err
	}
	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return Page{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	if page.Items == nil {
		page.Items = []Post{}
	}
	return page, nil
}

// Detail은 GET /posts/{id} 를 호출한다. 200 이 아니면 모두 NotFound 로 본다.
func (c *Client) Detail(ctx context.Context, id string) (Post, error) {
	const op = "posts Detail"
	body, err := c.call(ctx, op, http.MethodGet, path.Join("/posts", url.PathEscape(id)), nil, nil, http.StatusOK, apperr.ErrNotFound)
	if err != nil {
		return Post{}, err
	}
	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return Post{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	return post, nil
}

// Create는 POST /posts 를 호출한다. 201 만 성공이다.
// 백엔드가 생성된 게시글을 돌려주면 디코딩해서 반환하고, 아니면 빈 Post 를 반환한다.
func (c *Client) Create(ctx context.Context, in WriteRequest) (Post, error) {
	const op = "posts Create"
	in.ID = ""
	body, err := c.call(ctx, op, http.MethodPost, "/posts", nil, in, http.StatusCreated, apperr.ErrValidation)
	if err != nil {
		return Post{}, err
	}
	var post Post
	if len(bytes.TrimSpace(body)) == 0 {
		return post, nil
	}
	// 생성 응답 바디 형식은 백엔드마다 다르므로 디코딩 실패는 생성 실패로 보지 않는다.
	if err := json.Unmarshal(body, &post); err != nil {
		logger.WarnWithFields("post create response not decodable", logger.Fields{
			"op":    op,
			"error": err.Error(),
			"body":  apperr.DetailFromBody(body),
		})
		return Post{}, nil
	}
	if post.ID == "" {
		logger.WarnWithFields("post create response has no id", logger.Fields{"op": op})
	}
	return post, nil
}

// Update는 PATCH /posts/{id} 를 호출한다. 200 만 성공이다.
func (c *Client) Update(ctx context.Context, in WriteRequest) error {
	const op = "posts Update"
	if in.ID == "" {
		return apperr.NewValidation("id", "수정할 게시글 id 가 없습니다.")
	}
	_, err := c.call(ctx, op, http.MethodPatch, path.Join("/posts", url.PathEscape(in.ID)), nil, in, http.StatusOK, apperr.ErrValidation)
	return err
}

// call 은 요청을 보내고 want 상태 코드면 바디를, 아니면 분류된 에러를 돌려준다.
// kind 는 상태 코드 오류에 붙일 종류(ErrNotFound 등)이며 nil 일 수 있다.
func (c *Client) call(ctx context.Context, op, method, relPath string, query url.Values, payload any, want int, kind error) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.base.NewRequest(ctx, method, relPath, query, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		terr := &apperr.TransportError{Op: op, Err: err}
		logger.ErrorWithFields("post api transport error", logger.Fields{"op": op, "error": err.Error()})
		return nil, terr
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return nil, &apperr.TransportError{Op: op, Err: fmt.Errorf("response read failed: %w", readErr)}
	}

	if resp.StatusCode != want {
		serr := &apperr.HTTPStatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     apperr.DetailFromBody(body),
			Kind:       kind,
		}
		logger.WarnWithFields("post api unexpected status", logger.Fields{
			"op":     op,
			"status": resp.StatusCode,
			"detail": serr.Detail,
		})
		return nil, serr
	}
	return body, nil
}
