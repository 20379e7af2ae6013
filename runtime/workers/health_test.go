package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedCounter struct{ n int }

func (c fixedCounter) Size() int { return c.n }

func TestHealthWorker_StopsOnCancel(t *testing.T) {
	req := require.New(t)
	worker := NewHealthWorker(slog.Default(), fixedCounter{n: 3}, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Run must return cleanly once the context expires, never an error,
	// so the supervisor does not restart it during shutdown.
	err := worker.Run(ctx)
	req.NoError(err)
}
