package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartRuntimeLogger(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartRuntimeLogger(ctx, 5*time.Millisecond, logger, func() []slog.Attr {
		return []slog.Attr{slog.Int("frame", 7)}
	})
	assert.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, `"msg":"runtime"`) && strings.Contains(s, `"frame":7`)
	}, 2*time.Second, 5*time.Millisecond)
	assert.Contains(t, out.String(), `"goroutines":`)
}
