package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// SessionCounter reports the number of live registered sessions.
type SessionCounter interface {
	Size() int
}

// HealthWorker periodically logs the relay's own vitals: live session count,
// process CPU and RSS. Metrics collection must never disturb the relay itself,
// so every failure is logged and skipped.
type HealthWorker struct {
	log            *slog.Logger
	sessions       SessionCounter
	metricInterval time.Duration
}

func NewHealthWorker(log *slog.Logger, sessions SessionCounter, metricInterval time.Duration) *HealthWorker {
	return &HealthWorker{log: log, sessions: sessions, metricInterval: metricInterval}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping health worker")
			return nil
		case <-ticker.C:
			cpu, err := p.CPUPercent()
			if err != nil {
				w.log.Error("Error while finding process cpu usage", "err", err)
				continue
			}
			mem, err := p.MemoryInfo()
			if err != nil {
				w.log.Error("Error while finding process memory usage", "err", err)
				continue
			}
			w.log.Info("Relay health",
				"sessions", w.sessions.Size(),
				"cpu_percent", cpu,
				"rss_bytes", mem.RSS)
		}
	}
}
