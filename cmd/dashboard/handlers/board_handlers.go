package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/board"
	"post-dashboard/cmd/dashboard/dto"
	"post-dashboard/cmd/dashboard/workspace"
)

func workspaceOf(c *gin.Context, reg *workspace.Registry) (*workspace.Workspace, error) {
	s, err := currentSession(c)
	if err != nil {
		return nil, err
	}
	return reg.Get(s.ID), nil
}

func boardResponse(ws *workspace.Workspace, fetched bool) dto.BoardResponseDTO {
	snap := ws.Board.Snapshot()
	return dto.BoardResponseDTO{
		Filter: dto.FilterRequestDTO{
			Sort:     snap.Filter.Sort,
			Order:    snap.Filter.Order,
			Category: snap.Filter.Category,
			Search:   snap.Filter.Search,
		},
		Table:      ws.Layout.Project(snap.Rows),
		Count:      len(snap.Rows),
		NextCursor: snap.NextCursor,
		HasNext:    snap.HasNext,
		Fetching:   snap.Fetching,
		Fetched:    fetched,
		Error:      snap.Error,
	}
}

// GetBoardHandler godoc
// @Summary      게시글 표
// @Description  세션의 누적 목록을 현재 컬럼 레이아웃으로 돌려줍니다. 처음 호출하면 첫 페이지를 불러옵니다.
// @Tags         board
// @Produce      json
// @Success      200  {object}  dto.BoardResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /board [get]
func GetBoardHandler(reg *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := workspaceOf(c, reg)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := ws.Board.EnsureLoaded(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boardResponse(ws, false))
	}
}

// SetFilterHandler godoc
// @Summary      목록 필터 변경
// @Description  정렬/방향/카테고리/검색어를 바꾸고 누적 목록을 버린 뒤 첫 페이지부터 다시 불러옵니다.
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        body  body      dto.FilterRequestDTO  true  "필터"
// @Success      200   {object}  dto.BoardResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      503   {object}  dto.ErrorResponseDTO
// @Router       /board/filter [put]
func SetFilterHandler(reg *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := workspaceOf(c, reg)
		if err != nil {
			writeError(c, err)
			return
		}
		var req dto.FilterRequestDTO
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}

		f := board.Filter{Sort: req.Sort, Order: req.Order, Category: req.Category, Search: req.Search}
		if _, err := ws.Board.SetFilter(c.Request.Context(), f); err != nil && !errors.Is(err, board.ErrSuperseded) {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boardResponse(ws, true))
	}
}

// SentinelHandler godoc
// @Summary      무한 스크롤 sentinel
// @Description  목록 끝 sentinel 과 뷰포트 사이 거리를 알립니다. 200 이내면 다음 페이지를 불러옵니다. 이미 요청 중이면 무시됩니다.
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SentinelRequestDTO  true  "거리"
// @Success      200   {object}  dto.BoardResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      503   {object}  dto.ErrorResponseDTO
// @Router       /board/sentinel [post]
func SentinelHandler(reg *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := workspaceOf(c, reg)
		if err != nil {
			writeError(c, err)
			return
		}
		var req dto.SentinelRequestDTO
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}

		fetched, err := ws.Board.OnSentinel(c.Request.Context(), req.Distance)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, boardResponse(ws, fetched))
	}
}

// UpdateColumnHandler godoc
// @Summary      컬럼 너비/표시 변경
// @Description  컬럼 너비(최소 20)와 표시 여부를 바꿉니다. 목록을 다시 불러오지 않습니다.
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        column  path      string                true  "컬럼 키 (id, userId, title, body, category, tags, createdAt)"
// @Param        body    body      dto.ColumnRequestDTO  true  "변경 내용"
// @Success      200     {array}   table.ColumnState
// @Failure      400     {object}  dto.ErrorResponseDTO
// @Failure      404     {object}  dto.ErrorResponseDTO
// @Router       /board/columns/{column} [patch]
func UpdateColumnHandler(reg *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := workspaceOf(c, reg)
		if err != nil {
			writeError(c, err)
			return
		}
		var req dto.ColumnRequestDTO
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}
		if req.Width == nil && req.Visible == nil {
			writeError(c, apperr.NewValidation("body", "width 또는 visible 을 지정해주세요."))
			return
		}

		key := c.Param("column")
		if req.Width != nil {
			if err := ws.Layout.Resize(key, *req.Width); err != nil {
				writeError(c, err)
				return
			}
		}
		if req.Visible != nil {
			if err := ws.Layout.SetVisible(key, *req.Visible); err != nil {
				writeError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, ws.Layout.State())
	}
}
