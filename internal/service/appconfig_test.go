package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dictate-io/dictate/internal/mocks"
)

func TestConfigService_SnapshotColdCacheIsLoading(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockConfigSource(ctrl)
	// The cold snapshot triggers a background refresh; allow it.
	source.EXPECT().Fetch(gomock.Any()).Return([]byte(`{}`), time.Time{}, nil).AnyTimes()

	svc := NewConfigService(ConfigServiceOptions{Source: source})

	snap := svc.Snapshot()
	assert.True(t, snap.IsLoading)
	assert.Empty(t, snap.Config.LoggedOutRedirectURL)
	assert.Empty(t, snap.Config.Pages)

	// The cold snapshot kicked off a background refresh; wait for it so the
	// mock is not called after the test ends.
	assert.Eventually(t, func() bool {
		return !svc.Snapshot().IsLoading
	}, time.Second, 5*time.Millisecond)
}

func TestConfigService_RefreshThenSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := mocks.NewMockConfigSource(ctrl)
	source.EXPECT().Fetch(gomock.Any()).Return(
		[]byte(`{"logged_out_redirect_url":"https://landing.example.com","pages":{"about":{"name":"About","text":"hi"}}}`),
		updatedAt, nil,
	)

	svc := NewConfigService(ConfigServiceOptions{Source: source, TTL: time.Hour})
	require.NoError(t, svc.Refresh(context.Background()))

	snap := svc.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "https://landing.example.com", snap.Config.LoggedOutRedirectURL)
	assert.Equal(t, "About", snap.Config.Pages["about"].Name)
	assert.True(t, updatedAt.Equal(snap.UpdatedAt))
}

func TestConfigService_RefreshFailureKeepsLastGoodConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockConfigSource(ctrl)
	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any()).Return(
			[]byte(`{"logged_out_redirect_url":"https://landing.example.com"}`), time.Now(), nil),
		source.EXPECT().Fetch(gomock.Any()).Return(nil, time.Time{}, errors.New("db down")).AnyTimes(),
	)

	svc := NewConfigService(ConfigServiceOptions{Source: source, TTL: time.Hour})
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))
	require.Error(t, svc.Refresh(ctx))

	snap := svc.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "https://landing.example.com", snap.Config.LoggedOutRedirectURL)
}

func TestConfigService_RefreshRejectsInvalidDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockConfigSource(ctrl)
	// The final cold snapshot kicks off a background refresh that may call
	// Fetch again after the test ends; allow it like the other tests do.
	source.EXPECT().Fetch(gomock.Any()).Return([]byte(`not json`), time.Time{}, nil).AnyTimes()

	svc := NewConfigService(ConfigServiceOptions{Source: source, TTL: time.Hour})

	err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")

	assert.True(t, svc.Snapshot().IsLoading, "bad document never counts as loaded")
}

// downConfigSource always fails, like a database that is unreachable from
// boot. A plain stub so background refreshes outliving the test are harmless.
type downConfigSource struct{}

func (downConfigSource) Fetch(context.Context) ([]byte, time.Time, error) {
	return nil, time.Time{}, errors.New("connection refused")
}

func TestConfigService_ColdCacheSettlesAfterRepeatedFailures(t *testing.T) {
	svc := NewConfigService(ConfigServiceOptions{
		Source:       downConfigSource{},
		TTL:          time.Hour,
		WarmupWindow: time.Hour,
	})
	ctx := context.Background()

	for i := 0; i < warmupFailureLimit; i++ {
		require.Error(t, svc.Refresh(ctx))
	}

	snap := svc.Snapshot()
	assert.False(t, snap.IsLoading, "cache must settle once the source keeps failing")
	assert.Empty(t, snap.Config.LoggedOutRedirectURL)
	assert.Empty(t, snap.Config.Pages)
	assert.True(t, snap.UpdatedAt.IsZero())
}

func TestConfigService_ColdCacheSettlesWhenWarmupWindowCloses(t *testing.T) {
	svc := NewConfigService(ConfigServiceOptions{
		Source:       downConfigSource{},
		TTL:          time.Hour,
		WarmupWindow: 10 * time.Second,
	})

	require.Error(t, svc.Refresh(context.Background()))

	// Advance the clock past the window before the first snapshot, so no
	// background refresh is in flight while now is swapped.
	base := svc.startedAt
	svc.now = func() time.Time { return base.Add(11 * time.Second) }

	snap := svc.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.Empty(t, snap.Config.Pages)
}

func TestConfigService_RunStopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockConfigSource(ctrl)
	source.EXPECT().Fetch(gomock.Any()).Return([]byte(`{}`), time.Now(), nil).AnyTimes()

	svc := NewConfigService(ConfigServiceOptions{Source: source, TTL: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// Give the loop a moment to perform the initial load.
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	assert.False(t, svc.Snapshot().IsLoading)
}
