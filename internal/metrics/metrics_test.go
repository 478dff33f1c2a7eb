package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRouteTemplate(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/metrics", Handler())

	before := counterValue(t, httpRequests.WithLabelValues("GET", "/items/:id", "204"))
	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+id, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}
	after := counterValue(t, httpRequests.WithLabelValues("GET", "/items/:id", "204"))
	assert.Equal(t, 2.0, after-before)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "storerating_http_requests_total")
}

func TestRecordEventPublish(t *testing.T) {
	before := counterValue(t, eventPublishes.WithLabelValues(PublishSkipped))
	RecordEventPublish(PublishSkipped)
	assert.Equal(t, 1.0, counterValue(t, eventPublishes.WithLabelValues(PublishSkipped))-before)

	before = counterValue(t, ratingsSubmitted)
	RecordRatingSubmitted()
	assert.Equal(t, 1.0, counterValue(t, ratingsSubmitted)-before)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}
