package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/board"
	"post-dashboard/cmd/dashboard/chart"
	"post-dashboard/cmd/dashboard/clients/authclient"
	"post-dashboard/cmd/dashboard/dto"
	"post-dashboard/cmd/dashboard/editor"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/cmd/dashboard/session"
	"post-dashboard/cmd/dashboard/table"
	"post-dashboard/internal/logger"
)

// statusFor 는 에러 종류를 응답 상태 코드와 알림 문구로 바꾼다.
func statusFor(err error) (int, string) {
	var ve *apperr.ValidationError
	var se *apperr.HTTPStatusError
	var te *httpclient.TokenError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, authclient.ErrInvalidCredentials):
		return http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다."
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrBadSession), errors.As(err, &te):
		return http.StatusUnauthorized, "로그인이 필요합니다."
	case errors.As(err, &se):
		if errors.Is(se.Kind, apperr.ErrNotFound) {
			return http.StatusNotFound, apperr.UserMessage(err)
		}
		return http.StatusBadGateway, apperr.UserMessage(err)
	case errors.Is(err, apperr.ErrTransport):
		return http.StatusServiceUnavailable, apperr.UserMessage(err)
	case errors.Is(err, chart.ErrUnknownType), errors.Is(err, table.ErrUnknownColumn):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, board.ErrFetchInFlight), errors.Is(err, board.ErrStaleCursor),
		errors.Is(err, editor.ErrReadOnly), errors.Is(err, editor.ErrSubmitting):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, apperr.UserMessage(err)
	}
}

// writeError 는 에러를 {"error": 문구} 로 응답하고 로그를 남긴다.
func writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	fields := logger.Fields{
		"status":     status,
		"error":      err.Error(),
		"path":       c.Request.URL.Path,
		"request_id": c.Request.Header.Get("X-Request-Id"),
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorWithFields("request failed", fields)
	} else {
		logger.DebugWithFields("request rejected", fields)
	}
	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponseDTO{Error: msg})
}

// currentSession 은 SessionAuth 미들웨어가 넣어 둔 세션을 꺼낸다.
func currentSession(c *gin.Context) (session.Session, error) {
	s, ok := session.FromContext(c.Request.Context())
	if !ok {
		return session.Session{}, session.ErrNoSession
	}
	return s, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.NewValidation("body", "요청 본문 형식이 올바르지 않습니다.")
	}
	return nil
}
