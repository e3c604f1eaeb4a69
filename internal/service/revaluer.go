package service

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Revaluer triggers periodic full valuation passes on a cron schedule, so
// the served snapshot tracks market prices without a request having to pay
// for the rebuild. A failed pass only logs; the last good snapshot stays
// available.
type Revaluer struct {
	service  *ValuationService
	schedule string
	cron     *cron.Cron
}

// NewRevaluer creates a revaluer with a cron spec schedule (e.g.
// "@every 30m" or "0 */6 * * *").
func NewRevaluer(service *ValuationService, schedule string) *Revaluer {
	return &Revaluer{
		service:  service,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the schedule and starts the cron runner.
func (r *Revaluer) Start() error {
	_, err := r.cron.AddFunc(r.schedule, func() {
		if _, err := r.service.Revalue(context.Background()); err != nil {
			log.Printf("scheduled revaluation failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the cron runner. Running jobs finish; none are interrupted.
func (r *Revaluer) Stop() {
	r.cron.Stop()
}
