package chart

import (
	"fmt"
	"math"
	"sort"

	"post-dashboard/cmd/dashboard/clients/chartclient"
)

// Chart 는 화면의 차트 카드 하나다. Colors 는 색상 선택 UI 에 쓰는 키별 현재 색이다.
type Chart struct {
	ID       string            `json:"id"`
	Dataset  Dataset           `json:"dataset"`
	Title    string            `json:"title"`
	Option   Option            `json:"option"`
	Colors   map[string]string `json:"colors"`
	Keys     []string          `json:"keys"`
	Hover    string            `json:"hover,omitempty"`
	Tooltips [][]string        `json:"tooltips,omitempty"`
}

var (
	axisGrid    = &Grid{Left: 40, Right: 20, Top: 40, Bottom: 40}
	percentGrid = &Grid{Left: 50, Right: 20, Top: 40, Bottom: 40}
	dualGrid    = &Grid{Left: 60, Right: 60, Top: 50, Bottom: 40}
	donutRadius = []string{"55%", "75%"}
)

func keysOf(ks []seriesKey) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.Key
	}
	return out
}

func moodValue(r chartclient.MoodRow, key string) float64 {
	switch key {
	case "happy":
		return r.Happy
	case "tired":
		return r.Tired
	case "stressed":
		return r.Stressed
	}
	return 0
}

func workoutValue(r chartclient.WorkoutRow, key string) float64 {
	switch key {
	case "running":
		return r.Running
	case "cycling":
		return r.Cycling
	case "stretching":
		return r.Stretching
	}
	return 0
}

// -------------------- bar --------------------

func MoodBar(rows []chartclient.MoodRow, colors *SeriesColorer) Chart {
	weeks := make([]any, len(rows))
	for i, r := range rows {
		weeks[i] = r.Week
	}
	series := make([]Series, 0, len(moodKeys))
	for _, k := range moodKeys {
		data := make([]any, len(rows))
		for i, r := range rows {
			data[i] = moodValue(r, k.Key)
		}
		series = append(series, Series{Name: k.Label, Type: "bar", Data: data, ItemStyle: itemColor(colors.Color(k.Key))})
	}
	keys := keysOf(moodKeys)
	return Chart{
		ID:      "mood-bar",
		Dataset: DatasetMood,
		Title:   "Weekly Mood Trend",
		Option: Option{
			Tooltip: Tooltip{Trigger: "axis"},
			Grid:    axisGrid,
			XAxis:   &Axis{Type: "category", Data: weeks},
			YAxis:   []Axis{{Type: "value"}},
			Series:  series,
		},
		Colors: colors.Colors(keys),
		Keys:   keys,
	}
}

func snackKeys(shares []chartclient.SnackShare) []string {
	keys := make([]string, len(shares))
	for i, s := range shares {
		keys[i] = s.Name
	}
	return keys
}

// SnackBar 는 브랜드마다 시리즈 하나를 만들어 범례에서 브랜드별로 켜고 끌 수 있게 한다.
func SnackBar(shares []chartclient.SnackShare, colors *SeriesColorer) Chart {
	keys := snackKeys(shares)
	colors.Assign(keys)
	series := make([]Series, 0, len(shares))
	for _, s := range shares {
		series = append(series, Series{Name: s.Name, Type: "bar", Data: []any{s.Share}, ItemStyle: itemColor(colors.Color(s.Name))})
	}
	return Chart{
		ID:      "snack-bar",
		Dataset: DatasetSnack,
		Title:   "Popular Snack Brands",
		Option: Option{
			Tooltip: Tooltip{Trigger: "axis"},
			Grid:    axisGrid,
			XAxis:   &Axis{Type: "category", Data: []any{"Share"}},
			YAxis:   []Axis{{Type: "value"}},
			Series:  series,
		},
		Colors: colors.Colors(keys),
		Keys:   keys,
	}
}

// -------------------- donut --------------------

// MoodDonut 은 주간 값을 합산해 도넛으로 보여준다.
func MoodDonut(rows []chartclient.MoodRow, colors *SeriesColorer) Chart {
	items := make([]any, 0, len(moodKeys))
	for _, k := range moodKeys {
		var sum float64
		for _, r := range rows {
			sum += moodValue(r, k.Key)
		}
		items = append(items, DataItem{Name: k.Label, Value: sum, ItemStyle: itemColor(colors.Color(k.Key))})
	}
	keys := keysOf(moodKeys)
	return Chart{
		ID:      "mood-donut",
		Dataset: DatasetMood,
		Title:   "Weekly Mood (Total)",
		Option: Option{
			Tooltip: Tooltip{Trigger: "item"},
			Series:  []Series{{Name: "Mood", Type: "pie", Radius: donutRadius, Data: items}},
		},
		Colors: colors.Colors(keys),
		Keys:   keys,
	}
}

func SnackDonut(shares []chartclient.SnackShare, colors *SeriesColorer) Chart {
	keys := snackKeys(shares)
	colors.Assign(keys)
	items := make([]any, 0, len(shares))
	for _, s := range shares {
		items = append(items, DataItem{Name: s.Name, Value: s.Share, ItemStyle: itemColor(colors.Color(s.Name))})
	}
	return Chart{
		ID:      "snack-donut",
		Dataset: DatasetSnack,
		Title:   "Popular Snack Brands",
		Option: Option{
			Tooltip: Tooltip{Trigger: "item"},
			Series:  []Series{{Name: "Snack", Type: "pie", Radius: donutRadius, Data: items}},
		},
		Colors: colors.Colors(keys),
		Keys:   keys,
	}
}

// -------------------- stacked bar --------------------

// PercentRow 는 values 를 합계 대비 백분율(소수 첫째 자리)로 바꾼다. 합계가 0 이면 모두 0 이다.
func PercentRow(values []float64) []float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	out := make([]float64, len(values))
	if sum == 0 {
		return out
	}
	for i, v := range values {
		out[i] = math.Round(v/sum*1000) / 10
	}
	return out
}

func stackedPercent(id, title, stack string, weeks []string, keys []seriesKey, value func(i int, key string) float64, colors *SeriesColorer) Chart {
	perKey := make(map[string][]any, len(keys))
	for _, k := range keys {
		perKey[k.Key] = make([]any, len(weeks))
	}
	for i := range weeks {
		raw := make([]float64, len(keys))
		for j, k := range keys {
			raw[j] = value(i, k.Key)
		}
		for j, p := range PercentRow(raw) {
			perKey[keys[j].Key][i] = p
		}
	}

	x := make([]any, len(weeks))
	for i, w := range weeks {
		x[i] = w
	}
	series := make([]Series, 0, len(keys))
	for _, k := range keys {
		series = append(series, Series{
			Name:      k.Label,
			Type:      "bar",
			Stack:     stack,
			BarWidth:  "50%",
			Data:      perKey[k.Key],
			ItemStyle: itemColor(colors.Color(k.Key)),
			Emphasis:  &Emphasis{Focus: "series"},
		})
	}
	names := keysOf(keys)
	return Chart{
		ID:    id,
		Title: title,
		Option: Option{
			Tooltip: Tooltip{Trigger: "axis", ValueSuffix: "%"},
			Grid:    percentGrid,
			XAxis:   &Axis{Type: "category", Data: x},
			YAxis:   []Axis{{Type: "value", Min: ptr(0), Max: ptr(100), AxisLabel: &AxisLabel{Formatter: "{value}%"}}},
			Series:  series,
		},
		Colors: colors.Colors(names),
		Keys:   names,
	}
}

func MoodStacked(rows []chartclient.MoodRow, colors *SeriesColorer) Chart {
	weeks := make([]string, len(rows))
	for i, r := range rows {
		weeks[i] = r.Week
	}
	c := stackedPercent("mood-stacked", "Weekly Mood Trend (Stacked %)", "mood", weeks, moodKeys,
		func(i int, key string) float64 { return moodValue(rows[i], key) }, colors)
	c.Dataset = DatasetMood
	return c
}

func WorkoutStacked(rows []chartclient.WorkoutRow, colors *SeriesColorer) Chart {
	weeks := make([]string, len(rows))
	for i, r := range rows {
		weeks[i] = r.Week
	}
	c := stackedPercent("workout-stacked", "Weekly Workout Trend (Stacked %)", "workout", weeks, workoutKeys,
		func(i int, key string) float64 { return workoutValue(rows[i], key) }, colors)
	c.Dataset = DatasetWorkout
	return c
}

// -------------------- stacked area --------------------

func WorkoutArea(rows []chartclient.WorkoutRow, colors *SeriesColorer) Chart {
	weeks := make([]any, len(rows))
	for i, r := range rows {
		weeks[i] = r.Week
	}
	series := make([]Series, 0, len(workoutKeys))
	for _, k := range workoutKeys {
		data := make([]any, len(rows))
		for i, r := range rows {
			data[i] = workoutValue(r, k.Key)
		}
		series = append(series, Series{
			Name:      k.Label,
			Type:      "line",
			Stack:     "workout",
			Smooth:    true,
			AreaStyle: &AreaStyle{},
			Data:      data,
			ItemStyle: itemColor(colors.Color(k.Key)),
			Emphasis:  &Emphasis{Focus: "series"},
		})
	}
	keys := keysOf(workoutKeys)
	return Chart{
		ID:      "workout-area",
		Dataset: DatasetWorkout,
		Title:   "Weekly Workout Trend",
		Option: Option{
			Tooltip: Tooltip{Trigger: "axis"},
			Grid:    axisGrid,
			XAxis:   &Axis{Type: "category", Data: weeks},
			YAxis:   []Axis{{Type: "value"}},
			Series:  series,
		},
		Colors: colors.Colors(keys),
		Keys:   keys,
	}
}

// CoffeeBrandArea 는 브랜드별 시리즈를 같은 stack 에 쌓는다.
// 각 시리즈는 자기 브랜드 위치에만 값을 갖고 나머지는 0 이다.
func CoffeeBrandArea(brands []chartclient.CoffeeBrand, colors *SeriesColorer) Chart {
	keys := make([]string, len(brands))
	x := make([]any, len(brands))
	for i, b := range brands {
		keys[i] = b.Name
		x[i] = b.Name
	}
	colors.Assign(keys)
	series := make([]Series, 0, len(brands))
	for i, b := range brands {
		data := make([]any, len(brands))
		for j := range data {
			data[j] = 0.0
		}
		data[i] = b.Popularity
		series = append(series, Series{
			Name:      b.Name,
			Type:      "line",
			Stack:     "brands",
			AreaStyle: &AreaStyle{},
			Data:      data,
			ItemStyle: itemColor(colors.Color(b.Name)),
			Emphasis:  &Emphasis{Focus: "series"},
		})
	}
	return Chart{
		ID:      "coffee-brand-area",
		Dataset: DatasetCoffeeBrands,
		Title:   "Top Coffee Brands",
		Option: Option{
			Tooltip: Tooltip{Trigger: "axis"},
			Grid:    axisGrid,
			XAxis:   &Axis{Type: "category", Data: x},
			YAxis:   []Axis{{Type: "value"}},
			Series:  series,
		},
		Colors: colors.Colors(keys),
		Keys:   keys,
	}
}

// -------------------- multi line --------------------

// UniqueSorted 는 중복을 제거하고 오름차순으로 정렬한다.
func UniqueSorted(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

type linePoint struct {
	x, left, right float64
}

type lineGroup struct {
	name   string
	points []linePoint
}

type dualAxis struct {
	id, title, xName, leftName, rightName string
	dataset                               Dataset
}

// dualLine 은 그룹마다 좌/우 Y 축 시리즈 두 개를 만든다.
// X 축은 모든 그룹의 x 값을 합쳐 정렬한 것이고, 그룹에 없는 x 는 null 이다.
func dualLine(axis dualAxis, groups []lineGroup, colors *SeriesColorer) Chart {
	keys := make([]string, len(groups))
	var all []float64
	for i, g := range groups {
		keys[i] = g.name
		for _, p := range g.points {
			all = append(all, p.x)
		}
	}
	colors.Assign(keys)
	xs := UniqueSorted(all)

	series := make([]Series, 0, len(groups)*2)
	for _, g := range groups {
		byX := make(map[float64]linePoint, len(g.points))
		for _, p := range g.points {
			byX[p.x] = p
		}
		left := make([]any, len(xs))
		right := make([]any, len(xs))
		for i, x := range xs {
			if p, ok := byX[x]; ok {
				left[i] = p.left
				right[i] = p.right
			}
		}
		c := itemColor(colors.Color(g.name))
		series = append(series,
			Series{
				Name:       g.name + GroupSeparator + axis.leftName,
				Type:       "line",
				YAxisIndex: 0,
				Symbol:     "circle",
				SymbolSize: 8,
				LineStyle:  &LineStyle{Type: "solid", Width: 2},
				ItemStyle:  c,
				Emphasis:   &Emphasis{Focus: "series"},
				Data:       left,
			},
			Series{
				Name:       g.name + GroupSeparator + axis.rightName,
				Type:       "line",
				YAxisIndex: 1,
				Symbol:     "rect",
				SymbolSize: 8,
				LineStyle:  &LineStyle{Type: "dashed", Width: 2},
				ItemStyle:  c,
				Emphasis:   &Emphasis{Focus: "series"},
				Data:       right,
			},
		)
	}

	x := make([]any, len(xs))
	for i, v := range xs {
		x[i] = v
	}
	ch := Chart{
		ID:      axis.id,
		Dataset: axis.dataset,
		Title:   axis.title,
		Option: Option{
			Tooltip: Tooltip{Trigger: "axis"},
			Legend:  Legend{Type: "scroll"},
			Grid:    dualGrid,
			XAxis:   &Axis{Type: "category", Name: axis.xName, Data: x},
			YAxis:   []Axis{{Type: "value", Name: axis.leftName}, {Type: "value", Name: axis.rightName}},
			Series:  series,
		},
		Colors: colors.Colors(keys),
		Keys:   keys,
	}
	if hover := colors.Hovered(); hover != "" {
		ch.Hover = hover
		ch.Tooltips = GroupTooltips(ch.Option, hover)
	}
	return ch
}

func CoffeeMultiLine(data chartclient.CoffeeConsumption, colors *SeriesColorer) Chart {
	groups := make([]lineGroup, 0, len(data.Teams))
	for _, t := range data.Teams {
		g := lineGroup{name: t.Team}
		for _, p := range t.Series {
			g.points = append(g.points, linePoint{x: p.Cups, left: p.Bugs, right: p.Productivity})
		}
		groups = append(groups, g)
	}
	return dualLine(dualAxis{
		id:        "coffee-multi-line",
		dataset:   DatasetCoffee,
		title:     "Coffee Consumption",
		xName:     "커피(잔/일)",
		leftName:  "Bugs",
		rightName: "Productivity",
	}, groups, colors)
}

func SnackImpactMultiLine(data chartclient.SnackImpact, colors *SeriesColorer) Chart {
	groups := make([]lineGroup, 0, len(data.Departments))
	for _, d := range data.Departments {
		g := lineGroup{name: d.Name}
		for _, m := range d.Metrics {
			g.points = append(g.points, linePoint{x: m.Snacks, left: m.MeetingsMissed, right: m.Morale})
		}
		groups = append(groups, g)
	}
	return dualLine(dualAxis{
		id:        "snack-impact-multi-line",
		dataset:   DatasetSnackImpact,
		title:     "Snack Impact",
		xName:     "스낵 수",
		leftName:  "Meetings Missed",
		rightName: "Morale",
	}, groups, colors)
}

// GroupTooltips 는 x 위치마다 group 에 속한 시리즈만 "지표: 값" 으로 나열한다.
// 값이 없으면 "-" 로 표시한다.
func GroupTooltips(opt Option, group string) [][]string {
	if opt.XAxis == nil {
		return nil
	}
	out := make([][]string, len(opt.XAxis.Data))
	for i := range opt.XAxis.Data {
		var lines []string
		for _, s := range opt.Series {
			if GroupOf(s.Name) != group || i >= len(s.Data) {
				continue
			}
			v := "-"
			if s.Data[i] != nil {
				v = fmt.Sprint(s.Data[i])
			}
			lines = append(lines, MetricOf(s.Name)+": "+v)
		}
		out[i] = lines
	}
	return out
}
