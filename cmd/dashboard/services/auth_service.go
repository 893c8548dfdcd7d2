package services

import (
	"context"
	"strings"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/clients/authclient"
	"post-dashboard/cmd/dashboard/session"
)

// LoginAPI 는 백엔드 자격 증명 로그인이다. authclient.Client 가 구현한다.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (authclient.Result, error)
}

type AuthService struct {
	client   LoginAPI
	sessions *session.Manager
}

func NewAuthService(client LoginAPI, sessions *session.Manager) *AuthService {
	return &AuthService{client: client, sessions: sessions}
}

// Login 은 백엔드 로그인에 성공하면 세션 토큰(쿠키 값)과 세션을 돌려준다.
// 이메일/비밀번호가 비어 있으면 백엔드를 호출하지 않는다.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", session.Session{}, apperr.NewValidation("credentials", "이메일과 비밀번호를 입력해주세요.")
	}

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return "", session.Session{}, err
	}
	return s.sessions.Issue(string(res.User.ID), res.User.Email, res.AccessToken)
}

// Authenticate 는 쿠키 값으로 세션을 복원한다.
func (s *AuthService) Authenticate(token string) (session.Session, error) {
	return s.sessions.Parse(token)
}

func (s *AuthService) SessionTTL() int {
	return int(s.sessions.TTL().Seconds())
}
