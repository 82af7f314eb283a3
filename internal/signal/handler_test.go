package signal

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_HandleCancelsContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err())
	assert.Nil(t, h.Signal())

	h.handle(syscall.SIGTERM)
	h.handle(syscall.SIGINT)

	select {
	case <-h.Interrupted():
	case <-time.After(time.Second):
		t.Fatal("interrupted channel was not closed")
	}
	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.Equal(t, syscall.SIGTERM, h.Signal(), "first signal wins")
}

func TestHandler_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()
	<-h.Context().Done()

	select {
	case <-h.Interrupted():
		t.Fatal("parent cancellation is not an interrupt")
	default:
	}
}

func TestHandler_StopIsIdempotent(t *testing.T) {
	h := NewHandler(context.Background())
	h.Stop()
	h.Stop()
	require.ErrorIs(t, h.Context().Err(), context.Canceled)
}
