package tasks

import (
	"context"
	"errors"
	"log/slog"
)

var ErrStalePayload = errors.New("refresh served a stale payload")

type RefreshBenefitsTask struct {
	Task
	loader BenefitsLoader
}

func NewRefreshBenefitsTask(loader BenefitsLoader) *RefreshBenefitsTask {
	return &RefreshBenefitsTask{
		Task:   NewTask(TaskTypeRefreshBenefits, loader.SourceURL()),
		loader: loader,
	}
}

// NewRefreshFactory returns a TaskFactory producing one refresh per tick.
func NewRefreshFactory(loader BenefitsLoader) TaskFactory {
	return func() []TaskInterface {
		return []TaskInterface{NewRefreshBenefitsTask(loader)}
	}
}

// Execute warms the cache. A stale result counts as a failure so the
// scheduler retries it.
func (t *RefreshBenefitsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	payload, err := t.loader.Load(ctx)
	if err != nil {
		return err
	}

	if payload.Stale {
		return ErrStalePayload
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.Source,
		"duration", t.GetDuration(),
		"items", len(payload.Items),
		"updated_at", payload.UpdatedAt)

	return nil
}
