package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/config"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/graph"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	srv := New(nil, config.Defaults().HTTP, handler)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}

func TestChecks_JoinsNamedFailures(t *testing.T) {
	checks := Checks{
		{Name: "graph", Check: GraphHealthService{Client: graph.NewMemoryClient()}},
		{Name: "sessions", Check: ProbeFunc(func(context.Context) error { return errors.New("redis down") })},
		{Name: "skipped"},
	}

	err := checks.Probe(context.Background())
	require.Error(t, err)
	assert.Equal(t, "sessions: redis down", err.Error())

	assert.NoError(t, Checks{{Name: "graph", Check: GraphHealthService{}}}.Probe(context.Background()))
}
