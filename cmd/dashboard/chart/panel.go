package chart

import "post-dashboard/cmd/dashboard/clients/chartclient"

// Data 는 차트를 그리는 데 필요한 원본 데이터다. 차트 종류에 필요한 필드만 채워진다.
type Data struct {
	Mood         []chartclient.MoodRow
	Snack        []chartclient.SnackShare
	Workout      []chartclient.WorkoutRow
	Coffee       chartclient.CoffeeConsumption
	SnackImpact  chartclient.SnackImpact
	CoffeeBrands []chartclient.CoffeeBrand
}

// Panel 은 차트 종류 하나의 화면이다.
type Panel struct {
	Type   Type    `json:"type"`
	Label  string  `json:"label"`
	Charts []Chart `json:"charts"`
}

// Build 는 차트 종류에 맞는 차트 카드들을 만든다.
func Build(t Type, d Data, colorers *Colorers) (Panel, error) {
	get := func(ds Dataset) *SeriesColorer {
		c, _ := colorers.For(ds)
		return c
	}
	p := Panel{Type: t, Label: t.Label()}
	switch t {
	case Bar:
		p.Charts = []Chart{MoodBar(d.Mood, get(DatasetMood)), SnackBar(d.Snack, get(DatasetSnack))}
	case Donut:
		p.Charts = []Chart{MoodDonut(d.Mood, get(DatasetMood)), SnackDonut(d.Snack, get(DatasetSnack))}
	case StackedBar:
		p.Charts = []Chart{MoodStacked(d.Mood, get(DatasetMood)), WorkoutStacked(d.Workout, get(DatasetWorkout))}
	case StackedArea:
		p.Charts = []Chart{WorkoutArea(d.Workout, get(DatasetWorkout)), CoffeeBrandArea(d.CoffeeBrands, get(DatasetCoffeeBrands))}
	case MultiLine:
		p.Charts = []Chart{CoffeeMultiLine(d.Coffee, get(DatasetCoffee)), SnackImpactMultiLine(d.SnackImpact, get(DatasetSnackImpact))}
	default:
		return Panel{}, ErrUnknownType
	}
	return p, nil
}
