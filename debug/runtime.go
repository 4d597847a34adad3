package debug

// Runtime logger started with -debug. Emits goroutine count, stack and heap
// usage together with the application's own counters at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartRuntimeLogger logs runtime stats every interval until ctx is done.
// stats is called from the logging goroutine and must be safe for that.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, stats func() []slog.Attr) {
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			attrs := []slog.Attr{
				slog.Uint64("goroutines", samples[0].Value.Uint64()),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			}
			if stats != nil {
				attrs = append(attrs, stats()...)
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "runtime", attrs...)
		}
	}()
}
