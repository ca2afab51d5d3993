package tasks

import (
	"context"

	"github.com/lysyi3m/benefit-slides/app/benefits"
)

// TaskSchedulerInterface runs background tasks on a worker pool.
//
//	scheduler := NewScheduler(NewRefreshFactory(loader), interval, workers)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// BenefitsLoader is satisfied by *loader.Loader.
type BenefitsLoader interface {
	Load(ctx context.Context) (benefits.Payload, error)
	SourceURL() string
}

// TaskFactory builds the tasks enqueued at startup and on every tick.
type TaskFactory func() []TaskInterface
