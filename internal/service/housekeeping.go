package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/store"
)

// RedeemedInviteRetention is how long redeemed invites are kept for audit
// before housekeeping removes them.
const RedeemedInviteRetention = 30 * 24 * time.Hour

// HousekeepingService periodically removes stale invite rows so the invites
// table does not grow without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// DeleteExpired also removes expired unredeemed invites. Deleting one
	// unblocks a fresh invite for that email, so this mirrors the re-invite
	// policy and must stay off when re-inviting after expiry is disallowed.
	DeleteExpired bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration, deleteExpired bool) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:         st,
		Logger:        logger,
		Interval:      interval,
		DeleteExpired: deleteExpired,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker, blocking until any in-progress cleanup
// finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run once immediately on startup.
	s.Cleanup()

	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass of deletions. Each deletion is independent;
// a failure in one does not stop the others.
func (s *HousekeepingService) Cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Store.Invites().DeleteRedeemedInvitesBefore(ctx, now.Add(-RedeemedInviteRetention)); err != nil {
		s.Logger.Error("failed to delete old redeemed invites", "error", err)
	} else {
		s.Logger.Debug("deleted old redeemed invites")
	}

	if s.DeleteExpired {
		if err := s.Store.Invites().DeleteExpiredInvites(ctx, now); err != nil {
			s.Logger.Error("failed to delete expired invites", "error", err)
		} else {
			s.Logger.Debug("deleted expired invites")
		}
	}

	s.Logger.Info("housekeeping cleanup completed")
}
