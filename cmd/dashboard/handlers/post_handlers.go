package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/clients/postclient"
	"post-dashboard/cmd/dashboard/dto"
	"post-dashboard/cmd/dashboard/editor"
	"post-dashboard/cmd/dashboard/services"
	"post-dashboard/cmd/dashboard/table"
)

var errUnknownAction = apperr.NewValidation("action", "action 은 add 또는 backspace 여야 합니다.")

func toPostDTO(p postclient.Post) dto.PostDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	id := string(p.ID)
	return dto.PostDTO{
		ID:        id,
		UserID:    p.UserID,
		Title:     p.Title,
		Body:      p.Body,
		Category:  p.Category,
		Tags:      tags,
		CreatedAt: p.CreatedAt,
		EditURL:   table.RowLink(id),
	}
}

// fill 은 요청 값을 편집기에 넣는다. 카테고리가 비어 있으면 편집기 값을 유지한다.
func fill(e *editor.Editor, req dto.PostWriteRequestDTO) error {
	if err := e.SetTitle(req.Title); err != nil {
		return err
	}
	if err := e.SetBody(req.Body); err != nil {
		return err
	}
	if strings.TrimSpace(req.Category) != "" {
		if err := e.SetCategory(req.Category); err != nil {
			return err
		}
	}
	return e.AddTags(req.Tags)
}

func writeResponse(e *editor.Editor, res editor.Result) dto.PostWriteResponseDTO {
	return dto.PostWriteResponseDTO{ID: res.ID, Created: res.Created, State: e.State().String()}
}

// GetPostHandler godoc
// @Summary      게시글 상세
// @Tags         posts
// @Param        id   path      string  true  "게시글 id"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Detail(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toPostDTO(post))
	}
}

// CreatePostHandler godoc
// @Summary      게시글 작성
// @Description  제목/본문/카테고리/금칙어/길이/태그 규칙을 통과하면 백엔드에 생성합니다. 카테고리 기본값은 NOTICE 입니다.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PostWriteRequestDTO  true  "게시글"
// @Success      201   {object}  dto.PostWriteResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Failure      503   {object}  dto.ErrorResponseDTO
// @Router       /posts [post]
func CreatePostHandler(svc *services.PostService, guard *editor.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := currentSession(c)
		if err != nil {
			writeError(c, err)
			return
		}
		var req dto.PostWriteRequestDTO
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}

		e := editor.Open(guard, editor.Draft{UserID: s.UserID, Category: editor.DefaultCategory})
		if err := e.BeginEdit(); err != nil {
			writeError(c, err)
			return
		}
		if err := fill(e, req); err != nil {
			writeError(c, err)
			return
		}

		res, err := e.Submit(c.Request.Context(), svc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, writeResponse(e, res))
	}
}

// UpdatePostHandler godoc
// @Summary      게시글 수정
// @Description  기존 글을 불러와 요청 값으로 바꾼 뒤 작성과 같은 규칙으로 검증하고 백엔드에 반영합니다. 태그는 요청 값으로 교체됩니다.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "게시글 id"
// @Param        body  body      dto.PostWriteRequestDTO  true  "게시글"
// @Success      200   {object}  dto.PostWriteResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Failure      502   {object}  dto.ErrorResponseDTO
// @Failure      503   {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [patch]
func UpdatePostHandler(svc *services.PostService, guard *editor.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.PostWriteRequestDTO
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}

		post, err := svc.Detail(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		d := services.DraftFromPost(post)
		d.Tags = nil

		e := editor.Open(guard, d)
		if err := e.BeginEdit(); err != nil {
			writeError(c, err)
			return
		}
		if err := fill(e, req); err != nil {
			writeError(c, err)
			return
		}

		res, err := e.Submit(c.Request.Context(), svc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, writeResponse(e, res))
	}
}

// TagPreviewHandler godoc
// @Summary      태그 입력 미리보기
// @Description  action=add 는 입력을 쉼표/줄바꿈으로 나눠 추가하고(최대 5개, 24자 이하, 대소문자 무시 중복 제거), action=backspace 는 입력이 비어 있으면 마지막 태그를 지웁니다.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TagPreviewRequestDTO  true  "현재 태그와 입력"
// @Success      200   {object}  dto.TagPreviewResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /editor/tags [post]
func TagPreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.TagPreviewRequestDTO
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}

		tags := editor.MergeTags(nil, strings.Join(req.Tags, ","))
		switch strings.ToLower(req.Action) {
		case "", "add":
			tags = editor.MergeTags(tags, req.Input)
		case "backspace":
			tags = editor.Backspace(tags, req.Input)
		default:
			writeError(c, errUnknownAction)
			return
		}
		c.JSON(http.StatusOK, dto.TagPreviewResponseDTO{Tags: tags})
	}
}
