package chart

import (
	"errors"
	"strings"
)

// Type 은 차트 화면 종류다.
type Type string

const (
	Bar         Type = "bar"
	Donut       Type = "donut"
	StackedBar  Type = "stacked-bar"
	StackedArea Type = "stacked-area"
	MultiLine   Type = "multi-line"
)

// Types 는 화면에 보여줄 순서다.
var Types = []Type{Bar, Donut, StackedBar, StackedArea, MultiLine}

var typeLabels = map[Type]string{
	Bar:         "바차트",
	Donut:       "도넛차트",
	StackedBar:  "스택형바",
	StackedArea: "스택형면적",
	MultiLine:   "멀티라인",
}

var ErrUnknownType = errors.New("chart: unknown chart type")

func (t Type) Label() string { return typeLabels[t] }

// ParseType 은 영문 이름 또는 화면 라벨(바차트 등)을 받는다.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range Types {
		if string(t) == s || typeLabels[t] == s {
			return t, nil
		}
	}
	return "", ErrUnknownType
}

// Dataset 은 분석 엔드포인트 하나에 대응하는 데이터 묶음이다.
type Dataset string

const (
	DatasetMood         Dataset = "mood"
	DatasetSnack        Dataset = "snack"
	DatasetWorkout      Dataset = "workout"
	DatasetCoffee       Dataset = "coffee"
	DatasetSnackImpact  Dataset = "snack-impact"
	DatasetCoffeeBrands Dataset = "coffee-brands"
)

// Datasets 는 차트 종류별로 필요한 데이터 묶음이다.
func (t Type) Datasets() []Dataset {
	switch t {
	case Bar, Donut:
		return []Dataset{DatasetMood, DatasetSnack}
	case StackedBar:
		return []Dataset{DatasetMood, DatasetWorkout}
	case StackedArea:
		return []Dataset{DatasetWorkout, DatasetCoffeeBrands}
	case MultiLine:
		return []Dataset{DatasetCoffee, DatasetSnackImpact}
	default:
		return nil
	}
}

type seriesKey struct {
	Key   string
	Label string
}

var moodKeys = []seriesKey{
	{Key: "happy", Label: "Happy"},
	{Key: "tired", Label: "Tired"},
	{Key: "stressed", Label: "Stressed"},
}

var workoutKeys = []seriesKey{
	{Key: "running", Label: "Running"},
	{Key: "cycling", Label: "Cycling"},
	{Key: "stretching", Label: "Stretching"},
}

// Colorers 는 한 세션이 데이터 묶음별로 가진 색상 상태다.
// 같은 데이터 묶음은 차트 종류가 달라도 같은 색을 쓴다.
type Colorers struct {
	byDataset map[Dataset]*SeriesColorer
}

func NewColorers() *Colorers {
	return &Colorers{byDataset: map[Dataset]*SeriesColorer{
		DatasetMood: NewSeriesColorer(map[string]string{
			"happy":    "#4F46E5",
			"tired":    "#F59E0B",
			"stressed": "#EF4444",
		}),
		DatasetSnack: NewSeriesColorer(nil),
		DatasetWorkout: NewSeriesColorer(map[string]string{
			"running":    "#22C55E",
			"cycling":    "#06B6D4",
			"stretching": "#A855F7",
		}),
		DatasetCoffee:       NewSeriesColorer(nil),
		DatasetSnackImpact:  NewSeriesColorer(nil),
		DatasetCoffeeBrands: NewSeriesColorer(nil),
	}}
}

func (c *Colorers) For(d Dataset) (*SeriesColorer, bool) {
	s, ok := c.byDataset[d]
	return s, ok
}
