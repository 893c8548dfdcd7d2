package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/board"
	"post-dashboard/cmd/dashboard/chart"
	"post-dashboard/cmd/dashboard/clients/authclient"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/cmd/dashboard/session"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperr.NewValidation("title", "제목을 입력해주세요."), http.StatusBadRequest, "제목을 입력해주세요."},
		{"not found", &apperr.HTTPStatusError{StatusCode: 404, Kind: apperr.ErrNotFound}, http.StatusNotFound, "게시글을 찾을 수 없습니다."},
		{"upstream status", &apperr.HTTPStatusError{StatusCode: 500, Detail: "db down"}, http.StatusBadGateway, "db down"},
		{"transport", &apperr.TransportError{Op: "x", Err: errors.New("refused")}, http.StatusServiceUnavailable, "서버에 연결할 수 없습니다. 잠시 후 다시 시도해주세요."},
		{"no session", session.ErrNoSession, http.StatusUnauthorized, "로그인이 필요합니다."},
		{"token", &apperr.TransportError{Op: "x", Err: &httpclient.TokenError{Err: errors.New("expired")}}, http.StatusUnauthorized, "로그인이 필요합니다."},
		{"credentials", authclient.ErrInvalidCredentials, http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다."},
		{"chart type", fmt.Errorf("%w: pie", chart.ErrUnknownType), http.StatusNotFound, ""},
		{"in flight", board.ErrFetchInFlight, http.StatusConflict, ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "알 수 없는 오류가 발생했습니다."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			if tt.message != "" {
				assert.Equal(t, tt.message, msg)
			}
		})
	}
}

func TestParseOverrides(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?colors[mood.happy]=%23000000&colors[coffee.Front.End]=%23111111&hover[coffee]=Front.End+-+Bugs", nil)

	ov, err := parseOverrides(c)
	require.NoError(t, err)

	assert.Equal(t, "#000000", ov.Colors[chart.DatasetMood]["happy"])
	assert.Equal(t, "#111111", ov.Colors[chart.DatasetCoffee]["Front.End"])
	assert.Equal(t, "Front.End - Bugs", ov.Hover[chart.DatasetCoffee])

	bad, _ := gin.CreateTestContext(httptest.NewRecorder())
	bad.Request = httptest.NewRequest(http.MethodGet, "/?colors[mood]=%23000000", nil)
	_, err = parseOverrides(bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
