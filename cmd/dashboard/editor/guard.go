package editor

import (
	"strings"
	"unicode"
)

// DefaultBannedWords 는 기본 금칙어 목록이다.
var DefaultBannedWords = []string{"캄보디아", "프놈펜", "불법체류", "텔레그램"}

// Guard 는 금칙어 검사기다. 공백을 모두 지운 텍스트에서 부분 문자열로 찾는다.
type Guard struct {
	words []string
}

func NewGuard(words []string) *Guard {
	if len(words) == 0 {
		words = DefaultBannedWords
	}
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		if w = stripSpace(w); w != "" {
			cleaned = append(cleaned, w)
		}
	}
	return &Guard{words: cleaned}
}

// Find 는 text 에 포함된 첫 번째 금칙어를 돌려준다. 목록 순서대로 검사한다.
func (g *Guard) Find(text string) (string, bool) {
	normalized := stripSpace(text)
	for _, w := range g.words {
		if strings.Contains(normalized, w) {
			return w, true
		}
	}
	return "", false
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
