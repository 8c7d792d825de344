package polaris

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuturePollNeverBlocks(t *testing.T) {
	release := make(chan struct{})
	f := Async(context.Background(), func(context.Context) (int, error) {
		<-release
		return 7, nil
	})

	v, state, err := f.Poll()
	assert.Equal(t, FuturePending, state)
	assert.Zero(t, v)
	assert.NoError(t, err)

	close(release)
	require.Eventually(t, func() bool {
		_, s, _ := f.Poll()
		return s == FutureReady
	}, 2*time.Second, time.Millisecond)
	v, _, _ = f.Poll()
	assert.Equal(t, 7, v)
}

func TestFutureFailed(t *testing.T) {
	boom := errors.New("boom")
	_, state, err := Rejected[string](boom).Poll()
	assert.Equal(t, FutureFailed, state)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "failed", state.String())
}

func TestFutureAwaitHonorsContext(t *testing.T) {
	f := Async(context.Background(), func(ctx context.Context) (int, error) {
		time.Sleep(time.Second)
		return 1, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFutureResolved(t *testing.T) {
	v, err := Resolved("ok").Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}
