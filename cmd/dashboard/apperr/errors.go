package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// 오류 종류. errors.Is 로 판별한다.
var (
	// ErrTransport 는 응답 자체를 받지 못한 실패(DNS, 타임아웃, 오프라인 등)다.
	ErrTransport = errors.New("transport failure")
	// ErrHTTPStatus 는 응답은 왔지만 기대한 상태 코드가 아닌 경우다.
	ErrHTTPStatus = errors.New("unexpected http status")
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
)

// TransportError 는 요청이 서버에 닿지 못했거나 응답을 받지 못한 경우다.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// HTTPStatusError 는 기대하지 않은 상태 코드 응답이다.
// Kind 는 ErrNotFound / ErrValidation 처럼 호출 측이 구분해야 하는 종류를 담는다.
type HTTPStatusError struct {
	Op         string
	StatusCode int
	Detail     string
	Kind       error
}

func (e *HTTPStatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status=%d detail=%s", e.Op, e.StatusCode, e.Detail)
}

func (e *HTTPStatusError) Unwrap() []error {
	if e.Kind != nil {
		return []error{ErrHTTPStatus, e.Kind}
	}
	return []error{ErrHTTPStatus}
}

// ValidationError 는 네트워크 호출 전에 걸러진 입력 오류다.
// Message 는 그대로 사용자에게 보여준다.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation 은 ValidationError 를 만든다.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

const maxDetailLen = 300

// DetailFromBody 는 백엔드 응답 바디에서 사용자에게 보여줄 메시지를 뽑는다.
// JSON 의 message / error 필드를 우선하고, 없으면 바디 앞부분을 그대로 쓴다.
func DetailFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if r := []rune(trimmed); len(r) > maxDetailLen {
		return string(r[:maxDetailLen])
	}
	return trimmed
}

// UserMessage 는 화면에 띄울 알림 문구를 돌려준다.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *HTTPStatusError
	if errors.As(err, &se) {
		switch {
		case errors.Is(se.Kind, ErrNotFound):
			return "게시글을 찾을 수 없습니다."
		case se.Detail != "":
			return se.Detail
		default:
			return fmt.Sprintf("요청을 처리하지 못했습니다. (status %d)", se.StatusCode)
		}
	}
	if errors.Is(err, ErrTransport) {
		return "서버에 연결할 수 없습니다. 잠시 후 다시 시도해주세요."
	}
	return "알 수 없는 오류가 발생했습니다."
}
