package serve

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/store/memory"
)

func TestRunnerServesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	addrs := make(chan net.Addr, 1)
	done := make(chan error, 1)

	r := Runner{
		Backend:     memory.New(),
		Schemas:     entities.All(),
		ListenAddr:  "127.0.0.1:0",
		OnListening: func(a net.Addr) { addrs <- a },
	}
	go func() { done <- r.Do(ctx) }()

	var addr net.Addr
	select {
	case addr = <-addrs:
	case err := <-done:
		t.Fatalf("runner exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner never listened")
	}

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerRequiresBothTLSFiles(t *testing.T) {
	err := Runner{Backend: memory.New(), CertFile: "cert.pem"}.Do(context.Background())
	assert.Error(t, err)
}

func TestRunnerRequiresBackend(t *testing.T) {
	assert.Error(t, Runner{}.Do(context.Background()))
}
