package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-api/internal/config"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	router := setupRouter(t, enrichedOptions)
	server := NewServer(&config.ServerConfig{
		Listen:          "127.0.0.1:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}, router, zerolog.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/search", ln.Addr()))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["web","db"]`, string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

func TestServer_RunListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	server := NewServer(&config.ServerConfig{Listen: ln.Addr().String()}, http.NotFoundHandler(), zerolog.Nop())

	err = server.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestNewServer_DefaultShutdownTimeout(t *testing.T) {
	server := NewServer(&config.ServerConfig{Listen: ":8000"}, http.NotFoundHandler(), zerolog.Nop())

	assert.Equal(t, 15*time.Second, server.shutdownTimeout)
	assert.Equal(t, ":8000", server.httpServer.Addr)
}
