package chartclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/internal/logger"
)

// Client는 분석용 mock 엔드포인트(/mock/*)를 호출한다.
type Client struct {
	base *httpclient.BaseClient
}

func New(base *httpclient.BaseClient) *Client {
	return &Client{base: base}
}

// -------------------- DTOs --------------------

type MoodRow struct {
	Week     string  `json:"week"`
	Happy    float64 `json:"happy"`
	Tired    float64 `json:"tired"`
	Stressed float64 `json:"stressed"`
}

type SnackShare struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

type WorkoutRow struct {
	Week       string  `json:"week"`
	Running    float64 `json:"running"`
	Cycling    float64 `json:"cycling"`
	Stretching float64 `json:"stretching"`
}

type CoffeePoint struct {
	Cups         float64 `json:"cups"`
	Bugs         float64 `json:"bugs"`
	Productivity float64 `json:"productivity"`
}

type CoffeeTeam struct {
	Team   string        `json:"team"`
	Series []CoffeePoint `json:"series"`
}

type CoffeeConsumption struct {
	Teams []CoffeeTeam `json:"teams"`
}

type SnackImpactPoint struct {
	Snacks         float64 `json:"snacks"`
	MeetingsMissed float64 `json:"meetingsMissed"`
	Morale         float64 `json:"morale"`
}

type Department struct {
	Name    string             `json:"name"`
	Metrics []SnackImpactPoint `json:"metrics"`
}

type SnackImpact struct {
	Departments []Department `json:"departments"`
}

type CoffeeBrand struct {
	Name       string  `json:"name"`
	Popularity float64 `json:"popularity"`
}

// -------------------- Calls --------------------

func (c *Client) WeeklyMoodTrend(ctx context.Context) ([]MoodRow, error) {
	return getJSON[[]MoodRow](ctx, c.base, "mock WeeklyMoodTrend", "/mock/weekly-mood-trend")
}

func (c *Client) PopularSnackBrands(ctx context.Context) ([]SnackShare, error) {
	return getJSON[[]SnackShare](ctx, c.base, "mock PopularSnackBrands", "/mock/popular-snack-brands")
}

func (c *Client) WeeklyWorkoutTrend(ctx context.Context) ([]WorkoutRow, error) {
	return getJSON[[]WorkoutRow](ctx, c.base, "mock WeeklyWorkoutTrend", "/mock/weekly-workout-trend")
}

func (c *Client) CoffeeConsumption(ctx context.Context) (CoffeeConsumption, error) {
	return getJSON[CoffeeConsumption](ctx, c.base, "mock CoffeeConsumption", "/mock/coffee-consumption")
}

func (c *Client) SnackImpact(ctx context.Context) (SnackImpact, error) {
	return getJSON[SnackImpact](ctx, c.base, "mock SnackImpact", "/mock/snack-impact")
}

func (c *Client) TopCoffeeBrands(ctx context.Context) ([]CoffeeBrand, error) {
	return getJSON[[]CoffeeBrand](ctx, c.base, "mock TopCoffeeBrands", "/mock/top-coffee-brands")
}

const maxBodySize = 5 * 1024 * 1024

// getJSON 은 GET 을 보내고 200 응답만 T 로 디코딩한다.
func getJSON[T any](ctx context.Context, base *httpclient.BaseClient, op, relPath string) (T, error) {
	var zero T
	req, err := base.NewRequest(ctx, http.MethodGet, relPath, nil, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := base.Do(req)
	if err != nil {
		logger.ErrorWithFields("chart api transport error", logger.Fields{"op": op, "error": err.Error()})
		return zero, &apperr.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return zero, &apperr.TransportError{Op: op, Err: fmt.Errorf("response read failed: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		serr := &apperr.HTTPStatusError{Op: op, StatusCode: resp.StatusCode, Detail: apperr.DetailFromBody(body)}
		logger.WarnWithFields("chart api unexpected status", logger.Fields{"op": op, "status": resp.StatusCode})
		return zero, serr
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, fmt.Errorf("%s: decode: %w", op, err)
	}
	return out, nil
}
