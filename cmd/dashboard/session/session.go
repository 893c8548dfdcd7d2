package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoSession  = errors.New("no_session")
	ErrBadSession = errors.New("invalid_session")
)

// Session 은 로그인한 사용자 한 명의 대시보드 세션이다.
// AccessToken 은 백엔드 호출에 쓰는 토큰이며 쿠키 JWT 안에만 보관된다.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	AccessToken string    `json:"-"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Claims 는 세션 쿠키에 들어가는 JWT 클레임이다.
type Claims struct {
	Email       string `json:"email"`
	AccessToken string `json:"at"`
	jwt.RegisteredClaims
}

// Manager 는 HS256 단일 시크릿으로 세션 토큰을 발급/검증한다.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, issuer string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if issuer == "" {
		issuer = "post-dashboard"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue 는 새 세션 id 를 만들어 서명된 토큰과 함께 돌려준다.
func (m *Manager) Issue(userID, email, accessToken string) (string, Session, error) {
	now := m.now()
	s := Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		Email:       email,
		AccessToken: accessToken,
		ExpiresAt:   now.Add(m.ttl).Truncate(time.Second),
	}
	claims := Claims{
		Email:       email,
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Session{}, err
	}
	return token, s, nil
}

// Parse 는 세션 토큰을 검증하고 Session 을 복원한다.
func (m *Manager) Parse(tokenString string) (Session, error) {
	if tokenString == "" {
		return Session{}, ErrNoSession
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrBadSession, err)
	}
	if !parsed.Valid || claims.ID == "" || claims.AccessToken == "" {
		return Session{}, ErrBadSession
	}
	s := Session{
		ID:          claims.ID,
		UserID:      claims.Subject,
		Email:       claims.Email,
		AccessToken: claims.AccessToken,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// TokenSource 는 요청 컨텍스트의 세션에서 백엔드 액세스 토큰을 꺼낸다.
// 세션이 없으면 빈 토큰(헤더 없음)을 돌려준다.
type TokenSource struct{}

func (TokenSource) AccessToken(ctx context.Context) (string, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return "", nil
	}
	return s.AccessToken, nil
}
