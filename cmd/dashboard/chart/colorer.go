package chart

import (
	"errors"
	"regexp"
	"strings"
	"sync"
)

// Palette 는 색이 지정되지 않은 시리즈에 순서대로 배정하는 기본 색상이다.
var Palette = []string{
	"#4F46E5",
	"#22C55E",
	"#F59E0B",
	"#EF4444",
	"#06B6D4",
	"#A855F7",
	"#EC4899",
}

const FallbackColor = "#999999"

// GroupSeparator 는 "<그룹> - <지표>" 형태 시리즈 이름의 구분자다.
const GroupSeparator = " - "

var ErrInvalidColor = errors.New("chart: color must be #RRGGBB")

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// SeriesColorer 는 시리즈 키별 색상과 hover 그룹을 관리한다.
// 사용자가 지정한 색은 유지되고, 색이 없는 키에만 Palette 를 인덱스 순으로 배정한다.
type SeriesColorer struct {
	mu     sync.RWMutex
	colors map[string]string
	hover  string
}

func NewSeriesColorer(defaults map[string]string) *SeriesColorer {
	colors := make(map[string]string, len(defaults))
	for k, v := range defaults {
		colors[k] = v
	}
	return &SeriesColorer{colors: colors}
}

// Assign 은 keys 중 색이 없는 키에 Palette[index % 7] 을 배정한다.
func (c *SeriesColorer) Assign(keys []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, k := range keys {
		if _, ok := c.colors[k]; !ok {
			c.colors[k] = Palette[i%len(Palette)]
		}
	}
}

// Set 은 사용자가 고른 색을 저장한다.
func (c *SeriesColorer) Set(key, color string) error {
	if !hexColor.MatchString(color) {
		return ErrInvalidColor
	}
	c.mu.Lock()
	c.colors[key] = strings.ToUpper(color)
	c.mu.Unlock()
	return nil
}

// Color 는 key 의 색을 돌려준다. 없으면 FallbackColor 다.
func (c *SeriesColorer) Color(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.colors[key]; ok {
		return v
	}
	return FallbackColor
}

// Colors 는 keys 순서대로의 색 목록이다.
func (c *SeriesColorer) Colors(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = c.Color(k)
	}
	return out
}

// Hover 는 마우스가 올라간 시리즈 이름에서 그룹을 기억한다.
func (c *SeriesColorer) Hover(seriesName string) {
	c.mu.Lock()
	c.hover = GroupOf(seriesName)
	c.mu.Unlock()
}

func (c *SeriesColorer) ClearHover() {
	c.mu.Lock()
	c.hover = ""
	c.mu.Unlock()
}

func (c *SeriesColorer) Hovered() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hover
}

// GroupOf 는 "<그룹> - <지표>" 에서 그룹을 꺼낸다. 구분자가 없으면 이름 전체다.
func GroupOf(seriesName string) string {
	group, _, _ := strings.Cut(seriesName, GroupSeparator)
	return group
}

// MetricOf 는 "<그룹> - <지표>" 에서 지표를 꺼낸다.
func MetricOf(seriesName string) string {
	_, metric, found := strings.Cut(seriesName, GroupSeparator)
	if !found {
		return seriesName
	}
	return metric
}
