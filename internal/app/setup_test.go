package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/storecatalog/internal/service"
	pkgconfig "github.com/abgdnv/storecatalog/pkg/config"
	"github.com/abgdnv/storecatalog/pkg/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SetupHttpHandler_InMemory(t *testing.T) {
	// given
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, closeStore, err := SetupStore(ctx, pkgconfig.DatabaseConfig{Driver: pkgconfig.DriverMemory}, logger)
	require.NoError(t, err)
	defer closeStore()
	publisher, closePublisher, err := SetupPublisher(ctx, pkgconfig.NATSConfig{}, logger)
	require.NoError(t, err)
	defer closePublisher()
	assert.IsType(t, messaging.NoopPublisher{}, publisher)

	deps := SetupDependencies(catalog, publisher, logger, service.WithBatchedUniqueness(true))
	deps.MetricsPath = "/metrics"
	deps.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("catalog_stores_created_total 1"))
	})
	handler := SetupHttpHandler(deps)

	// when
	create := httptest.NewRecorder()
	handler.ServeHTTP(create, httptest.NewRequest(http.MethodPost, "/api/v1/stores/",
		strings.NewReader(`{"name":"Central","location":"Lenin St"}`)))
	list := httptest.NewRecorder()
	handler.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/v1/stores/", nil))
	metrics := httptest.NewRecorder()
	handler.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// then
	assert.Equal(t, http.StatusCreated, create.Code)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"name":"Central"`)
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "catalog_stores_created_total")
}
