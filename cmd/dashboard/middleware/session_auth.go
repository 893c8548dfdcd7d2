package middleware

import (
	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/dashboard/dto"
	"post-dashboard/cmd/dashboard/session"
	"post-dashboard/cmd/internal/bearer"
	"post-dashboard/internal/logger"
)

// ContextKeySession 은 gin.Context 에 저장되는 세션 키다.
const ContextKeySession = "session"

// Authenticator 는 세션 토큰을 검증한다. services.AuthService 가 구현한다.
type Authenticator interface {
	Authenticate(token string) (session.Session, error)
}

// SessionAuth 는 세션 쿠키(없으면 Authorization: Bearer)를 검증하고
// 세션을 요청 컨텍스트에 넣는다. 실패하면 401 로 끝낸다.
func SessionAuth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			token, err = bearer.Extract(c)
			if err != nil {
				abortNoSession(c)
				return
			}
		}

		s, err := auth.Authenticate(token)
		if err != nil {
			logger.DebugWithFields("session rejected", logger.Fields{
				"error":      err.Error(),
				"request_id": c.Request.Header.Get(headerRequestID),
			})
			abortNoSession(c)
			return
		}

		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))
		c.Set(ContextKeySession, s)
		c.Next()
	}
}

func abortNoSession(c *gin.Context) {
	bearer.AbortWithUnauthorized(c, dto.ErrorResponseDTO{Error: "로그인이 필요합니다."})
}
