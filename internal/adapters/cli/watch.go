package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/config"
	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/starmaploader"
)

// runIndexWatch polls verify_freshness on a cron schedule until SIGINT or
// SIGTERM, logging each transition. Supplements spec §4.4's one-shot
// verify_freshness with the "keep checking" behavior a long-lived process
// needs. SIGHUP forces an immediate out-of-band check, e.g. right after a
// dataset/index redeploy, without waiting for the next cron tick.
//
// Both the cron tick and SIGHUP funnel through the same rate.Limiter so a
// burst of SIGHUPs can't stampede VerifyIndex's dataset hash into running
// back-to-back.
func runIndexWatch(cfg *config.Config, interval time.Duration) error {
	c := cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %s", interval)

	limiter := rate.NewLimiter(rate.Every(interval/2), 1)
	check := func() {
		if !limiter.Allow() {
			return
		}
		report := starmaploader.VerifyIndex(cfg.IndexPath(), cfg.DatasetPath(), cfg.StrictFreshness, "")
		fmt.Printf("[%s] index-watch: %s\n", time.Now().Format(time.RFC3339), report.Result.String())
	}

	if _, err := c.AddFunc(spec, check); err != nil {
		return fmt.Errorf("schedule index-watch: %w", err)
	}

	check() // report the initial state immediately, don't wait a full interval
	c.Start()
	defer c.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigCh {
		if sig == syscall.SIGHUP {
			check()
			continue
		}
		return nil
	}
	return nil
}
