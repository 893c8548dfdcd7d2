package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/dashboard/dto"
	"post-dashboard/cmd/dashboard/services"
	"post-dashboard/cmd/dashboard/session"
	"post-dashboard/cmd/dashboard/workspace"
	"post-dashboard/internal/logger"
)

// CookieConfig 는 세션 쿠키 속성이다.
type CookieConfig struct {
	Name   string
	Secure bool
}

func toSessionDTO(s session.Session) dto.SessionDTO {
	return dto.SessionDTO{UserID: s.UserID, Email: s.Email, ExpiresAt: s.ExpiresAt}
}

// LoginHandler godoc
// @Summary      로그인
// @Description  백엔드 /auth/login 으로 자격 증명을 확인하고 세션 쿠키를 발급합니다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequestDTO  true  "이메일/비밀번호"
// @Success      200   {object}  dto.SessionDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Failure      503   {object}  dto.ErrorResponseDTO
// @Router       /auth/login [post]
func LoginHandler(authSvc *services.AuthService, cookie CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequestDTO
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}

		token, s, err := authSvc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, token, authSvc.SessionTTL(), "/", "", cookie.Secure, true)
		logger.InfoWithFields("dashboard login", logger.Fields{
			"user_id":    s.UserID,
			"session_id": s.ID,
			"request_id": c.Request.Header.Get("X-Request-Id"),
		})
		c.JSON(http.StatusOK, toSessionDTO(s))
	}
}

// LogoutHandler godoc
// @Summary      로그아웃
// @Description  세션 쿠키를 지우고 세션의 목록/표/차트 상태를 버립니다.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/logout [post]
func LogoutHandler(reg *workspace.Registry, cookie CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := currentSession(c)
		if err != nil {
			writeError(c, err)
			return
		}
		reg.Drop(s.ID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "logged out"})
	}
}

// SessionHandler godoc
// @Summary      현재 세션
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/session [get]
func SessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := currentSession(c)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toSessionDTO(s))
	}
}
