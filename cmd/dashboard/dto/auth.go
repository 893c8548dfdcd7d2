package dto

import "time"

type LoginRequestDTO struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"password"`
}

// SessionDTO 는 현재 로그인 세션 정보다. 백엔드 액세스 토큰은 내보내지 않는다.
type SessionDTO struct {
	UserID    string    `json:"userId" example:"1"`
	Email     string    `json:"email" example:"admin@example.com"`
	ExpiresAt time.Time `json:"expiresAt"`
}
