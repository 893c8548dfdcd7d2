package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-dashboard/internal/logger"
	"post-dashboard/models"
	"post-dashboard/repositories"
)

// PostStore 는 게시글 저장소다. repositories.PostRepository 가 구현한다.
type PostStore interface {
	List(ctx context.Context, opt repositories.ListPostsOptions) (repositories.PostPage, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	Insert(ctx context.Context, p *models.Post) error
	Update(ctx context.Context, id int64, p models.Post) (*models.Post, error)
}

// UserStore 는 로그인 계정 조회다. repositories.UserRepository 가 구현한다.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer 는 액세스 토큰 발급/검증이다. auth.JWTManager 가 구현한다.
type TokenIssuer interface {
	Sign(userID, email string) (string, error)
	Parse(token string) (string, error)
}

const ContextKeyUserID = "mock_user_id"

type messageResponse struct {
	Message string `json:"message"`
}

func abortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, messageResponse{Message: msg})
}

// internalError 는 저장소 오류를 500 으로 응답한다.
func internalError(c *gin.Context, op string, err error) {
	logger.ErrorWithFields("mockapi store error", logger.Fields{
		"op":    op,
		"error": err.Error(),
		"path":  c.Request.URL.Path,
	})
	abortMessage(c, http.StatusInternalServerError, "internal error")
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
