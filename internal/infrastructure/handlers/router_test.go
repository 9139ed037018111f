//go:build unit

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/handlers"
	"github.com/rios0rios0/cvefinder/test/domain/commanddoubles"
)

func newTestRouter(stub *commanddoubles.StubIngestCommand) http.Handler {
	return handlers.NewRouter(handlers.NewFindingsHandler(stub, entities.DefaultSettings()))
}

func TestRouter(t *testing.T) {
	t.Parallel()

	t.Run("should answer the healthcheck", func(t *testing.T) {
		t.Parallel()

		// given
		router := newTestRouter(&commanddoubles.StubIngestCommand{})
		recorder := httptest.NewRecorder()

		// when
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"status":"OK"}`, recorder.Body.String())
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	})

	t.Run("should ingest a posted finding", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{Result: entities.IngestResult{
			StatusCode: http.StatusOK,
			Body: entities.IngestBody{
				Message:              "Hello from Lambda!",
				VulnerabilityDetails: entities.VulnerabilityRecord{LibraryName: "Flask"},
			},
		}}
		router := newTestRouter(stub)
		recorder := httptest.NewRecorder()
		body := `{"resources":["arn:aws:ecr:us-west-2:1:repository/app/sha256:1"]}`

		// when
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/findings", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		event, ok := stub.LastRaw.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, event, "resources")

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.InDelta(t, 200, response["statusCode"], 0)
		details := response["body"].(map[string]any)["vulnerability_details"].(map[string]any)
		assert.Equal(t, "Flask", details["library_name"])
		assert.Nil(t, details["cve_id"])
	})

	t.Run("should still answer 200 for an undecodable body", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{Result: entities.IngestResult{StatusCode: http.StatusOK}}
		router := newTestRouter(stub)
		recorder := httptest.NewRecorder()

		// when
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/findings", strings.NewReader("{")))

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Nil(t, stub.LastRaw)
	})

	t.Run("should expose Prometheus metrics", func(t *testing.T) {
		t.Parallel()

		// given
		router := newTestRouter(&commanddoubles.StubIngestCommand{})
		recorder := httptest.NewRecorder()

		// when
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "go_goroutines")
	})

	t.Run("should reject other methods on the findings route", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{}
		router := newTestRouter(stub)
		recorder := httptest.NewRecorder()

		// when
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/findings", nil))

		// then
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		assert.Zero(t, stub.ExecuteCallCount)
	})
}
