package reporter

import (
	"context"
	"testing"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/discord"
	"github.com/PancyStudios/ModBotGo/pkg/store"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T) (*Reporter, *store.Store) {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)

	return New(&discord.ExtendedClient{}, st), st
}

func TestTickSurvivesStoreFailure(t *testing.T) {
	r, st := newTestReporter(t)
	require.NoError(t, st.Close())

	// A failed read logs and skips the tick; the loop must stay alive, so
	// consecutive ticks against a dead handle cannot panic.
	r.tick()
	r.tick()
}

func TestTickReadsGlobalTotal(t *testing.T) {
	r, st := newTestReporter(t)
	t.Cleanup(func() { st.Close() })

	_, err := st.AddWarning(context.Background(), "u1", "m1", "g1", "spam")
	require.NoError(t, err)

	r.tick()
}

func TestStopEndsLoop(t *testing.T) {
	r, st := newTestReporter(t)
	t.Cleanup(func() { st.Close() })

	r.interval = 10 * time.Millisecond
	r.Start()
	r.Stop()
}
