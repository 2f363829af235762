package helpers

import (
	"context"

	"github.com/robfig/cron/v3"
)

// ScheduleRefresh runs refresh following the cron spec,
// e.g. "@every 1m" or "*/5 * * * *"
func ScheduleRefresh(spec string, refresh func(context.Context) error) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		Info("starting scheduled refresh", "spec", spec)
		if err := refresh(context.Background()); err != nil {
			Error("scheduled refresh did not complete", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()

	return c, nil
}
