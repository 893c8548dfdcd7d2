package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/clients/postclient"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/internal/logger"
)

// Client는 백엔드 /auth/login 을 호출하는 자격 증명 로그인 클라이언트다.
// 다른 클라이언트와 같은 BaseClient 를 쓴다. 로그인 요청 컨텍스트에는 세션이 없어서
// session.TokenSource 가 빈 토큰을 주므로 Authorization 헤더가 붙지 않는다.
type Client struct {
	base *httpclient.BaseClient
}

var ErrInvalidCredentials = errors.New("invalid credentials")

func New(base *httpclient.BaseClient) *Client {
	return &Client{base: base}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID    postclient.ID `json:"id"`
	Email string        `json:"email"`
	Name  string        `json:"name,omitempty"`
}

// LoginResponse 는 백엔드마다 token 또는 accessToken 으로 내려온다.
type LoginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

type Result struct {
	AccessToken string
	User        User
}

// Login은 POST /auth/login 을 호출한다.
// 2xx 가 아니거나 토큰이 비어 있으면 ErrInvalidCredentials 를 반환한다.
func (c *Client) Login(ctx context.Context, email, password string) (Result, error) {
	const op = "auth Login"
	buf, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return Result{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/auth/login", nil, bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return Result{}, &apperr.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return Result{}, &apperr.TransportError{Op: op, Err: fmt.Errorf("response read failed: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.WarnWithFields("login rejected", logger.Fields{"status": resp.StatusCode})
		return Result{}, ErrInvalidCredentials
	}

	var out LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Result{}, ErrInvalidCredentials
	}
	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	if token == "" {
		return Result{}, ErrInvalidCredentials
	}
	if out.User.Email == "" {
		out.User.Email = email
	}
	return Result{AccessToken: token, User: out.User}, nil
}
