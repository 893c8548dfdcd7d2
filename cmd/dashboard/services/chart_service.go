package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/chart"
	"post-dashboard/cmd/dashboard/clients/chartclient"
)

// ChartAPI 는 분석 엔드포인트 호출이다. chartclient.Client 가 구현한다.
type ChartAPI interface {
	WeeklyMoodTrend(ctx context.Context) ([]chartclient.MoodRow, error)
	PopularSnackBrands(ctx context.Context) ([]chartclient.SnackShare, error)
	WeeklyWorkoutTrend(ctx context.Context) ([]chartclient.WorkoutRow, error)
	CoffeeConsumption(ctx context.Context) (chartclient.CoffeeConsumption, error)
	SnackImpact(ctx context.Context) (chartclient.SnackImpact, error)
	TopCoffeeBrands(ctx context.Context) ([]chartclient.CoffeeBrand, error)
}

type ChartService struct {
	client ChartAPI
}

func NewChartService(client ChartAPI) *ChartService {
	return &ChartService{client: client}
}

// ChartOverrides 는 사용자가 바꾼 색과 hover 상태다. 세션의 Colorers 에 반영된다.
//
//	Colors[dataset][key] = "#RRGGBB"
//	Hover[dataset] = "<그룹> - <지표>" (빈 문자열이면 hover 해제)
type ChartOverrides struct {
	Colors map[chart.Dataset]map[string]string
	Hover  map[chart.Dataset]string
}

// Render 는 차트 종류에 필요한 데이터만 동시에 가져와 차트 옵션을 만든다.
// 하나라도 실패하면 전체가 실패한다.
func (s *ChartService) Render(ctx context.Context, t chart.Type, colorers *chart.Colorers, ov ChartOverrides) (chart.Panel, error) {
	if err := applyOverrides(colorers, ov); err != nil {
		return chart.Panel{}, err
	}

	var data chart.Data
	g, gctx := errgroup.WithContext(ctx)
	for _, ds := range t.Datasets() {
		switch ds {
		case chart.DatasetMood:
			g.Go(func() (err error) {
				data.Mood, err = s.client.WeeklyMoodTrend(gctx)
				return err
			})
		case chart.DatasetSnack:
			g.Go(func() (err error) {
				data.Snack, err = s.client.PopularSnackBrands(gctx)
				return err
			})
		case chart.DatasetWorkout:
			g.Go(func() (err error) {
				data.Workout, err = s.client.WeeklyWorkoutTrend(gctx)
				return err
			})
		case chart.DatasetCoffee:
			g.Go(func() (err error) {
				data.Coffee, err = s.client.CoffeeConsumption(gctx)
				return err
			})
		case chart.DatasetSnackImpact:
			g.Go(func() (err error) {
				data.SnackImpact, err = s.client.SnackImpact(gctx)
				return err
			})
		case chart.DatasetCoffeeBrands:
			g.Go(func() (err error) {
				data.CoffeeBrands, err = s.client.TopCoffeeBrands(gctx)
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return chart.Panel{}, err
	}
	return chart.Build(t, data, colorers)
}

func applyOverrides(colorers *chart.Colorers, ov ChartOverrides) error {
	for ds, colors := range ov.Colors {
		c, ok := colorers.For(ds)
		if !ok {
			return apperr.NewValidation("colors", fmt.Sprintf("알 수 없는 데이터셋입니다: %s", ds))
		}
		for key, value := range colors {
			if err := c.Set(key, value); err != nil {
				return apperr.NewValidation("colors", fmt.Sprintf("색상 형식이 올바르지 않습니다: %s", value))
			}
		}
	}
	for ds, series := range ov.Hover {
		c, ok := colorers.For(ds)
		if !ok {
			return apperr.NewValidation("hover", fmt.Sprintf("알 수 없는 데이터셋입니다: %s", ds))
		}
		if series == "" {
			c.ClearHover()
		} else {
			c.Hover(series)
		}
	}
	return nil
}
