package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestLoggerRequestID(t *testing.T) {
	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("request_id").(string))
	})

	cases := map[string]struct {
		header string
		keep   bool
	}{
		"upstream uuid":       {header: uuid.NewString(), keep: true},
		"upstream opaque id":  {header: "lb-7f3a9c:42", keep: true},
		"missing":             {header: "", keep: false},
		"blank":               {header: "   ", keep: false},
		"longer than the cap": {header: strings.Repeat("x", maxRequestIDLength+1), keep: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			got := resp.Header.Get(RequestIDHeader)
			require.NotEmpty(t, got)
			if tc.keep {
				assert.Equal(t, tc.header, got)
				return
			}
			_, err = uuid.Parse(got)
			assert.NoError(t, err)
		})
	}

	assert.Equal(t, int64(len(cases)), metrics.Snapshot().Requests["/ping|GET|200"])
}
