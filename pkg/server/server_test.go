package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func Test_NewChiRouter_RequestIDAndCORS(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := NewChiRouter(logger, "https://shop.example")
	var seenReqID string
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		seenReqID = middleware.GetReqID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://shop.example")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, seenReqID)
	assert.Equal(t, "https://shop.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func Test_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer(HTTPConfig{Port: 8081, MaxHeaderBytes: 1 << 20}, "catalog", http.NotFoundHandler())

	assert.Equal(t, ":8081", srv.Addr)
	assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
	assert.NotNil(t, srv.Handler)
}

func Test_NewGRPCServer_Health(t *testing.T) {
	// given
	lis := bufconn.Listen(1 << 20)
	grpcServer, healthServer := NewGRPCServer(false)
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := healthpb.NewHealthClient(conn)

	// when
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})

	// then
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
