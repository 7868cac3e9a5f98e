package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/riskibarqy/league-manager/internal/usecase"
)

// LogNotifier records notifications in the structured log.
type LogNotifier struct {
	logger *logging.Logger
}

func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note usecase.Notification) {
	if note.Kind == usecase.NotificationError {
		n.logger.WarnContext(ctx, "roster notification", "kind", string(note.Kind), "message", note.Message)
		return
	}
	n.logger.InfoContext(ctx, "roster notification", "kind", string(note.Kind), "message", note.Message)
}

// WriterNotifier prints notifications for a terminal user.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, note usecase.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	prefix := "ok"
	if note.Kind == usecase.NotificationError {
		prefix = "error"
	}
	_, _ = fmt.Fprintf(n.w, "[%s] %s\n", prefix, note.Message)
}

// Fanout delivers every notification to each sink in order.
type Fanout []usecase.Notifier

func (f Fanout) Notify(ctx context.Context, note usecase.Notification) {
	for _, sink := range f {
		if sink != nil {
			sink.Notify(ctx, note)
		}
	}
}
