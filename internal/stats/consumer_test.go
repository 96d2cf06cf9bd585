package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/stats"
	"github.com/schoolhub/library-service/pkg/kafka"
)

// The consumer-group loop hands the same handler to every session, so a
// rebalance or broker reconnect runs Setup again on the same Consumer.
func TestConsumer_SetupSurvivesResubscribe(t *testing.T) {
	t.Parallel()
	c := stats.NewConsumer(func(context.Context, kafka.ChangeEvent) error {
		return nil
	}, zap.NewNop())

	require.NoError(t, c.Setup(nil))
	require.NotPanics(t, func() {
		require.NoError(t, c.Setup(nil))
	})
	require.NoError(t, c.Cleanup(nil))
}
