package editor

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxTags      = 5
	MaxTagLength = 24
)

// SplitTags 는 쉼표 또는 줄바꿈으로 나누고 앞뒤 공백을 제거한 뒤 빈 항목을 버린다.
func SplitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// MergeTags 는 current 뒤에 raw 에서 나온 태그를 붙인다.
// 5개에 도달하면 멈추고, 24자 초과 태그와 대소문자 무시 중복은 건너뛴다.
// current 는 수정하지 않는다.
func MergeTags(current []string, raw string) []string {
	next := make([]string, len(current), len(current)+MaxTags)
	copy(next, current)

	seen := make(map[string]struct{}, len(current))
	for _, t := range current {
		seen[strings.ToLower(t)] = struct{}{}
	}
	for _, tag := range SplitTags(raw) {
		if len(next) >= MaxTags {
			break
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		next = append(next, tag)
	}
	return next
}

// RemoveTag 는 target 과 정확히 같은 태그를 모두 제거한다.
func RemoveTag(tags []string, target string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != target {
			out = append(out, t)
		}
	}
	return out
}

// Backspace 는 입력창이 비어 있을 때 마지막 태그를 제거한다.
func Backspace(tags []string, input string) []string {
	if input != "" || len(tags) == 0 {
		return tags
	}
	return tags[:len(tags)-1:len(tags)-1]
}
