package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/internal/bearer"
	"post-dashboard/internal/logger"
	"post-dashboard/cmd/mockapi/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// loginResponse 는 token 과 accessToken 을 같이 내려준다.
type loginResponse struct {
	Token       string    `json:"token"`
	AccessToken string    `json:"accessToken"`
	User        loginUser `json:"user"`
}

// LoginHandler 는 시드 계정의 bcrypt 해시와 비밀번호를 비교하고 토큰을 발급한다.
func LoginHandler(users UserStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			abortMessage(c, http.StatusBadRequest, "email and password are required")
			return
		}

		u, err := users.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if isNotFound(err) {
				abortMessage(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			internalError(c, "users FindByEmail", err)
			return
		}
		if !auth.CheckPassword(u.PasswordHash, req.Password) {
			logger.WarnWithFields("mockapi login rejected", logger.Fields{"email": u.Email})
			abortMessage(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		id := u.ID.Hex()
		token, err := tokens.Sign(id, u.Email)
		if err != nil {
			internalError(c, "token Sign", err)
			return
		}
		c.JSON(http.StatusOK, loginResponse{
			Token:       token,
			AccessToken: token,
			User:        loginUser{ID: id, Email: u.Email, Name: u.Name},
		})
	}
}

// RequireBearer 는 Authorization: Bearer 토큰을 검증한다.
func RequireBearer(tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearer.Extract(c)
		if err != nil {
			bearer.AbortWithUnauthorized(c, messageResponse{Message: err.Error()})
			return
		}
		sub, err := tokens.Parse(token)
		if err != nil {
			bearer.AbortWithUnauthorized(c, messageResponse{Message: "invalid_token"})
			return
		}
		c.Set(ContextKeyUserID, sub)
		c.Next()
	}
}
