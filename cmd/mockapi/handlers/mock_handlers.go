package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/mockapi/fixtures"
)

// FixtureHandler 는 고정 분석 데이터를 그대로 돌려준다.
func FixtureHandler[T any](load func() T) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, load())
	}
}

// RegisterFixtures 는 /mock/* 여섯 개 엔드포인트를 묶는다.
func RegisterFixtures(g *gin.RouterGroup) {
	g.GET("/weekly-mood-trend", FixtureHandler(fixtures.WeeklyMoodTrend))
	g.GET("/popular-snack-brands", FixtureHandler(fixtures.PopularSnackBrands))
	g.GET("/weekly-workout-trend", FixtureHandler(fixtures.WeeklyWorkoutTrend))
	g.GET("/coffee-consumption", FixtureHandler(fixtures.CoffeeConsumption))
	g.GET("/snack-impact", FixtureHandler(fixtures.SnackImpact))
	g.GET("/top-coffee-brands", FixtureHandler(fixtures.TopCoffeeBrands))
}
