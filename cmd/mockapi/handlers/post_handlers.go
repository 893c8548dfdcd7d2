package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"post-dashboard/models"
	"post-dashboard/repositories"
)

const (
	maxTags      = 5
	maxTitleLen  = 80
	maxBodyLen   = 2000
	maxTagLength = 24
)

type postWriteRequest struct {
	UserID   string   `json:"userId"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (r postWriteRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return "title is required"
	case utf8.RuneCountInString(r.Title) > maxTitleLen:
		return "title is too long"
	case strings.TrimSpace(r.Body) == "":
		return "body is required"
	case utf8.RuneCountInString(r.Body) > maxBodyLen:
		return "body is too long"
	}
	switch r.Category {
	case "NOTICE", "QNA", "FREE":
	default:
		return "category must be one of NOTICE, QNA, FREE"
	}
	if len(r.Tags) > maxTags {
		return "too many tags"
	}
	for _, t := range r.Tags {
		if t == "" || utf8.RuneCountInString(t) > maxTagLength {
			return "invalid tag"
		}
	}
	return ""
}

func (r postWriteRequest) toModel() models.Post {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Post{
		UserID:   r.UserID,
		Title:    r.Title,
		Body:     r.Body,
		Category: r.Category,
		Tags:     tags,
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortMessage(c, http.StatusNotFound, "post not found")
		return 0, false
	}
	return id, true
}

// ListPostsHandler 는 GET /posts 다.
// nextCursor 와 prevCursor 가 같이 오면 nextCursor 를 쓴다.
func ListPostsHandler(posts PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		opt := repositories.ListPostsOptions{
			Sort:     c.Query("sort"),
			Order:    c.Query("order"),
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Cursor:   c.Query("nextCursor"),
			From:     c.Query("from"),
			To:       c.Query("to"),
		}
		if opt.Cursor == "" {
			opt.Cursor = c.Query("prevCursor")
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				abortMessage(c, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			opt.Limit = n
		}

		page, err := posts.List(c.Request.Context(), opt)
		if err != nil {
			if errors.Is(err, repositories.ErrInvalidCursor) || errors.Is(err, repositories.ErrInvalidRange) {
				abortMessage(c, http.StatusBadRequest, err.Error())
				return
			}
			internalError(c, "posts List", err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// GetPostHandler 는 GET /posts/:id 다.
func GetPostHandler(posts PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		p, err := posts.FindByID(c.Request.Context(), id)
		if err != nil {
			if isNotFound(err) {
				abortMessage(c, http.StatusNotFound, "post not found")
				return
			}
			internalError(c, "posts FindByID", err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// CreatePostHandler 는 POST /posts 다. userId 가 비어 있으면 토큰의 사용자로 채운다.
func CreatePostHandler(posts PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postWriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortMessage(c, http.StatusBadRequest, "invalid body")
			return
		}
		if msg := req.validate(); msg != "" {
			abortMessage(c, http.StatusBadRequest, msg)
			return
		}
		if req.UserID == "" {
			req.UserID = c.GetString(ContextKeyUserID)
		}

		p := req.toModel()
		if err := posts.Insert(c.Request.Context(), &p); err != nil {
			internalError(c, "posts Insert", err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// UpdatePostHandler 는 PATCH /posts/:id 다. 태그는 통째로 바뀐다.
func UpdatePostHandler(posts PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req postWriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortMessage(c, http.StatusBadRequest, "invalid body")
			return
		}
		if msg := req.validate(); msg != "" {
			abortMessage(c, http.StatusBadRequest, msg)
			return
		}

		p, err := posts.Update(c.Request.Context(), id, req.toModel())
		if err != nil {
			if isNotFound(err) {
				abortMessage(c, http.StatusNotFound, "post not found")
				return
			}
			internalError(c, "posts Update", err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
