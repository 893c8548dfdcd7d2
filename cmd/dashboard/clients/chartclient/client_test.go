package chartclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/httpclient"
)

func newFixtureClient(t *testing.T, fixtures map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(httpclient.NewBaseClient(srv.URL, httpclient.Config{}))
}

func TestDecodesEachEndpoint(t *testing.T) {
	c := newFixtureClient(t, map[string]string{
		"/mock/weekly-mood-trend":    `[{"week":"W1","happy":3,"tired":2,"stressed":1}]`,
		"/mock/popular-snack-brands": `[{"name":"Pocky","share":32.5}]`,
		"/mock/weekly-workout-trend": `[{"week":"W1","running":5,"cycling":3,"stretching":2}]`,
		"/mock/coffee-consumption":   `{"teams":[{"team":"Frontend","series":[{"cups":1,"bugs":4,"productivity":60}]}]}`,
		"/mock/snack-impact":         `{"departments":[{"name":"Sales","metrics":[{"snacks":2,"meetingsMissed":1,"morale":70}]}]}`,
		"/mock/top-coffee-brands":    `[{"name":"Starbucks","popularity":40}]`,
	})
	ctx := context.Background()

	mood, err := c.WeeklyMoodTrend(ctx)
	require.NoError(t, err)
	assert.Equal(t, []MoodRow{{Week: "W1", Happy: 3, Tired: 2, Stressed: 1}}, mood)

	snacks, err := c.PopularSnackBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32.5, snacks[0].Share)

	workout, err := c.WeeklyWorkoutTrend(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, workout[0].Stretching)

	coffee, err := c.CoffeeConsumption(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Frontend", coffee.Teams[0].Team)
	assert.Equal(t, 60.0, coffee.Teams[0].Series[0].Productivity)

	impact, err := c.SnackImpact(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, impact.Departments[0].Metrics[0].MeetingsMissed)

	brands, err := c.TopCoffeeBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Starbucks", brands[0].Name)
}

func TestNon200IsStatusError(t *testing.T) {
	c := newFixtureClient(t, map[string]string{})

	_, err := c.WeeklyMoodTrend(context.Background())

	var se *apperr.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}
