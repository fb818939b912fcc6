package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"emberguard/internal/domain"
)

// Janitor drops idle workspaces and expired login sessions on an interval.
type Janitor struct {
	workspaces domain.WorkspaceRepository
	sessions   domain.SessionRepository
	idleTTL    time.Duration
	interval   time.Duration
	now        func() time.Time
}

// NewJanitor creates a janitor. sessions may be nil.
func NewJanitor(workspaces domain.WorkspaceRepository, sessions domain.SessionRepository, idleTTL, interval time.Duration) *Janitor {
	return &Janitor{
		workspaces: workspaces,
		sessions:   sessions,
		idleTTL:    idleTTL,
		interval:   interval,
		now:        time.Now,
	}
}

// Sweep runs one pass and reports how many workspaces and sessions it removed.
func (j *Janitor) Sweep(ctx context.Context) (workspaces, sessions int, err error) {
	now := j.now()
	workspaces, err = j.workspaces.DeleteIdle(ctx, now.Add(-j.idleTTL))
	if err != nil {
		return 0, 0, err
	}
	if j.sessions != nil {
		sessions, err = j.sessions.DeleteExpired(ctx, now)
		if err != nil {
			return workspaces, 0, err
		}
	}
	return workspaces, sessions, nil
}

// Run sweeps until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	t := time.NewTicker(j.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			ws, ss, err := j.Sweep(ctx)
			if err != nil {
				log.WithError(err).Error("sweep failed")
				continue
			}
			if ws > 0 || ss > 0 {
				log.WithFields(log.Fields{"workspaces": ws, "sessions": ss}).Debug("swept idle state")
			}
		}
	}
}
