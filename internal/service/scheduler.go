package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartAutoRefresh re-fetches every collection on a cron schedule such as
// "@every 30s" or "*/5 * * * *". A run still in progress when the next one
// is due is skipped. after, when not nil, receives the outcome of every run.
// Call the returned func to stop; it waits for a running refresh to finish.
func (d *Dashboard) StartAutoRefresh(ctx context.Context, schedule string, after func(error)) (func(), error) {
	logger := cron.PrintfLogger(d.log)
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(logger)))

	_, err := c.AddFunc(schedule, func() {
		err := d.RefreshAll(ctx)
		if err != nil {
			d.log.WithFields(logrus.Fields{
				"dashboard": d.name,
				"error":     err,
			}).Warn("Scheduled refresh incomplete")
		} else {
			d.log.WithField("dashboard", d.name).Debug("Scheduled refresh done")
		}
		if after != nil {
			after(err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	c.Start()
	return func() {
		<-c.Stop().Done()
	}, nil
}
