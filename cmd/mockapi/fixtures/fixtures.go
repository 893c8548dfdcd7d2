// Package fixtures 는 /mock/* 분석 엔드포인트가 돌려주는 고정 데이터다.
package fixtures

import "post-dashboard/cmd/dashboard/clients/chartclient"

func WeeklyMoodTrend() []chartclient.MoodRow {
	return []chartclient.MoodRow{
		{Week: "2024-W10", Happy: 120, Tired: 80, Stressed: 40},
		{Week: "2024-W11", Happy: 100, Tired: 90, Stressed: 60},
		{Week: "2024-W12", Happy: 130, Tired: 70, Stressed: 30},
		{Week: "2024-W13", Happy: 90, Tired: 100, Stressed: 70},
		{Week: "2024-W14", Happy: 140, Tired: 60, Stressed: 20},
		{Week: "2024-W15", Happy: 110, Tired: 85, Stressed: 45},
	}
}

func PopularSnackBrands() []chartclient.SnackShare {
	return []chartclient.SnackShare{
		{Name: "새우깡", Share: 24},
		{Name: "포카칩", Share: 19},
		{Name: "허니버터칩", Share: 16},
		{Name: "꼬북칩", Share: 14},
		{Name: "오감자", Share: 11},
		{Name: "프링글스", Share: 9},
		{Name: "빼빼로", Share: 7},
	}
}

func WeeklyWorkoutTrend() []chartclient.WorkoutRow {
	return []chartclient.WorkoutRow{
		{Week: "2024-W10", Running: 12, Cycling: 8, Stretching: 20},
		{Week: "2024-W11", Running: 15, Cycling: 6, Stretching: 18},
		{Week: "2024-W12", Running: 10, Cycling: 10, Stretching: 25},
		{Week: "2024-W13", Running: 18, Cycling: 9, Stretching: 15},
		{Week: "2024-W14", Running: 20, Cycling: 12, Stretching: 22},
		{Week: "2024-W15", Running: 16, Cycling: 14, Stretching: 19},
	}
}

func CoffeeConsumption() chartclient.CoffeeConsumption {
	return chartclient.CoffeeConsumption{Teams: []chartclient.CoffeeTeam{
		{Team: "Frontend", Series: []chartclient.CoffeePoint{
			{Cups: 1, Bugs: 9, Productivity: 55},
			{Cups: 2, Bugs: 7, Productivity: 65},
			{Cups: 3, Bugs: 5, Productivity: 78},
			{Cups: 4, Bugs: 6, Productivity: 80},
			{Cups: 5, Bugs: 8, Productivity: 72},
		}},
		{Team: "Backend", Series: []chartclient.CoffeePoint{
			{Cups: 1, Bugs: 7, Productivity: 60},
			{Cups: 2, Bugs: 5, Productivity: 70},
			{Cups: 3, Bugs: 4, Productivity: 82},
			{Cups: 4, Bugs: 4, Productivity: 85},
			{Cups: 6, Bugs: 7, Productivity: 74},
		}},
		{Team: "AI", Series: []chartclient.CoffeePoint{
			{Cups: 2, Bugs: 6, Productivity: 68},
			{Cups: 3, Bugs: 4, Productivity: 79},
			{Cups: 5, Bugs: 3, Productivity: 88},
			{Cups: 7, Bugs: 6, Productivity: 76},
		}},
	}}
}

func SnackImpact() chartclient.SnackImpact {
	return chartclient.SnackImpact{Departments: []chartclient.Department{
		{Name: "Marketing", Metrics: []chartclient.SnackImpactPoint{
			{Snacks: 1, MeetingsMissed: 4, Morale: 60},
			{Snacks: 2, MeetingsMissed: 3, Morale: 68},
			{Snacks: 3, MeetingsMissed: 2, Morale: 75},
			{Snacks: 4, MeetingsMissed: 2, Morale: 80},
		}},
		{Name: "Sales", Metrics: []chartclient.SnackImpactPoint{
			{Snacks: 1, MeetingsMissed: 5, Morale: 55},
			{Snacks: 2, MeetingsMissed: 4, Morale: 62},
			{Snacks: 4, MeetingsMissed: 2, Morale: 77},
			{Snacks: 5, MeetingsMissed: 3, Morale: 74},
		}},
		{Name: "HR", Metrics: []chartclient.SnackImpactPoint{
			{Snacks: 2, MeetingsMissed: 2, Morale: 70},
			{Snacks: 3, MeetingsMissed: 1, Morale: 82},
			{Snacks: 5, MeetingsMissed: 1, Morale: 88},
		}},
	}}
}

func TopCoffeeBrands() []chartclient.CoffeeBrand {
	return []chartclient.CoffeeBrand{
		{Name: "스타벅스", Popularity: 38},
		{Name: "메가커피", Popularity: 24},
		{Name: "컴포즈커피", Popularity: 15},
		{Name: "이디야", Popularity: 12},
		{Name: "빽다방", Popularity: 11},
	}
}
