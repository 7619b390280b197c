package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Refresher reloads the catalog on a cron schedule, typically just after
// midnight so the board follows the new day's card.
type Refresher struct {
	cron  *cron.Cron
	load  func(context.Context) Result
	apply func(Result)
	log   logger.Logger

	mu sync.Mutex // serialises runs
}

// NewRefresher schedules load+apply on schedule, a standard five-field cron
// expression evaluated in local time.
func NewRefresher(schedule string, load func(context.Context) Result, apply func(Result), log logger.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:  cron.New(),
		load:  load,
		apply: apply,
		log:   log,
	}
	if _, err := r.cron.AddFunc(schedule, func() { r.RunNow(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start begins the schedule in the background.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running reload to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// RunNow loads and applies the catalog immediately.
func (r *Refresher) RunNow(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.load(ctx)
	r.log.Info("catalog refreshed: %d races (%s)", len(res.Races), res.Origin)
	r.apply(res)
}
