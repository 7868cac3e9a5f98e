package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

// OperationSender performs one remote roster operation. A nil error means the
// remote side accepted it.
type OperationSender interface {
	Send(ctx context.Context, op roster.Operation) (roster.SendResult, error)
}

type OperationSenderFunc func(ctx context.Context, op roster.Operation) (roster.SendResult, error)

func (f OperationSenderFunc) Send(ctx context.Context, op roster.Operation) (roster.SendResult, error) {
	return f(ctx, op)
}

// BatchObserver receives per-operation and per-batch results, e.g. for metrics.
type BatchObserver interface {
	ObserveOperation(op roster.Operation, succeeded bool, elapsed time.Duration)
	ObserveBatch(size int, allSucceeded bool)
}

// BatchExecutor fans a batch out to the sender and waits for every operation
// to settle. Each operation is attempted exactly once.
type BatchExecutor struct {
	sender     OperationSender
	maxWorkers int
	observer   BatchObserver
	logger     *logging.Logger
}

// NewBatchExecutor sizes the worker pool to the batch; maxWorkers > 0 caps it.
func NewBatchExecutor(sender OperationSender, maxWorkers int, observer BatchObserver, logger *logging.Logger) *BatchExecutor {
	if logger == nil {
		logger = logging.Default()
	}

	return &BatchExecutor{
		sender:     sender,
		maxWorkers: maxWorkers,
		observer:   observer,
		logger:     logger,
	}
}

func (e *BatchExecutor) Execute(ctx context.Context, ops []roster.Operation) roster.BatchOutcome {
	if len(ops) == 0 {
		return roster.BatchOutcome{AllSucceeded: true}
	}

	// in-flight operations outlive caller cancellation
	ctx = context.WithoutCancel(ctx)
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchExecutor.Execute")
	defer span.End()

	outcomes := make([]roster.OperationOutcome, len(ops))
	for i, op := range ops {
		outcomes[i] = roster.OperationOutcome{Operation: op}
	}

	var failedCount atomic.Int32
	pool, err := ants.NewPool(e.workerCount(len(ops)))
	if err != nil {
		for i := range outcomes {
			outcomes[i].Err = fmt.Errorf("create worker pool: %w", err)
		}
		e.logger.ErrorContext(ctx, "roster batch not dispatched", "operations", len(ops), "error", err)
		return e.finish(ctx, outcomes, len(ops))
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range ops {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if !e.run(ctx, &outcomes[i]) {
				failedCount.Add(1)
			}
		}); err != nil {
			workers.Done()
			outcomes[i].Err = fmt.Errorf("submit operation to worker pool: %w", err)
			failedCount.Add(1)
		}
	}
	workers.Wait()

	return e.finish(ctx, outcomes, int(failedCount.Load()))
}

func (e *BatchExecutor) run(ctx context.Context, outcome *roster.OperationOutcome) bool {
	start := time.Now()

	var (
		result  roster.SendResult
		sendErr error
		catcher panics.Catcher
	)
	catcher.Try(func() {
		result, sendErr = e.sender.Send(ctx, outcome.Operation)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		sendErr = recovered.AsError()
	}

	outcome.Succeeded = sendErr == nil
	outcome.Err = sendErr
	if outcome.Succeeded {
		outcome.CreatedID = result.CreatedID
	}
	if e.observer != nil {
		e.observer.ObserveOperation(outcome.Operation, outcome.Succeeded, time.Since(start))
	}

	return outcome.Succeeded
}

func (e *BatchExecutor) finish(ctx context.Context, outcomes []roster.OperationOutcome, failed int) roster.BatchOutcome {
	out := roster.BatchOutcome{
		AllSucceeded: failed == 0,
		Outcomes:     outcomes,
	}

	for _, o := range out.Failed() {
		e.logger.WarnContext(ctx, "roster operation failed",
			"verb", string(o.Operation.Verb),
			"path", o.Operation.Path,
			"error", o.Err,
		)
	}
	e.logger.InfoContext(ctx, "roster batch settled",
		"operations", len(outcomes),
		"failed", failed,
		"all_succeeded", out.AllSucceeded,
	)
	if e.observer != nil {
		e.observer.ObserveBatch(len(outcomes), out.AllSucceeded)
	}

	return out
}

func (e *BatchExecutor) workerCount(size int) int {
	if e.maxWorkers > 0 && e.maxWorkers < size {
		return e.maxWorkers
	}
	return size
}
