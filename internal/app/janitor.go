package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"tripwise/internal/domain"
)

// Janitor periodically drops expired storage entries on backends that do not
// expire keys themselves.
type Janitor struct {
	cron   *cron.Cron
	purger domain.Purger
	spec   string
}

func NewJanitor(p domain.Purger, every time.Duration) *Janitor {
	if every <= 0 {
		every = 10 * time.Minute
	}
	return &Janitor{
		cron:   cron.New(),
		purger: p,
		spec:   fmt.Sprintf("@every %s", every),
	}
}

// JanitorFor returns a janitor for store when it needs explicit purging
// (MySQL, memory), or nil when the backend expires keys itself or is absent.
func JanitorFor(store domain.Storage, every time.Duration) *Janitor {
	p, ok := store.(domain.Purger)
	if !ok {
		return nil
	}
	return NewJanitor(p, every)
}

func (j *Janitor) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	j.cron.Start()
	log.Info().Str("spec", j.spec).Msg("storage janitor started")
	return nil
}

// Stop waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	log.Info().Msg("storage janitor stopped")
}

func (j *Janitor) RunOnce(ctx context.Context) int64 {
	n, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("purge expired entries failed")
		return 0
	}
	if n > 0 {
		log.Info().Int64("purged", n).Msg("expired storage entries removed")
	}
	return n
}
