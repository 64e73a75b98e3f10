// Package coordinator schedules and drives sync passes over the configured tenants.
//
// The Driver walks the enabled tenants, those pulled longest ago first, and runs
// the events, templates and online activities collections of each in order
// through pkg/sync.Manager. A failing collection is recorded on its checkpoint
// and the pass moves on. The Driver serializes runs: a scheduled pass, a manual
// tenant sync from the admin API and a CLI run never overlap, the loser gets
// ErrSyncInProgress.
//
// The Coordinator wraps the Driver in a cron schedule:
//
//	driver := coordinator.NewDriver(cfg, stateService, fetcherFactory, manager)
//	c, err := coordinator.New(driver, cfg.Sync.GetSchedule())
//	if err != nil {
//	    return err
//	}
//	go c.Start(ctx)
//	...
//	c.Stop()
//
// Start registers the configured tenants, runs one pass immediately and then
// follows the schedule until the context is cancelled. Stop waits for a pass
// in flight to return.
package coordinator
