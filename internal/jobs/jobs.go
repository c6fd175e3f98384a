package jobs

import (
	"context"
	"time"
)

const (
	NameSessionPurge   = "session_purge"
	NameActivityPrune  = "activity_prune"
	NameVisitorCleanup = "rate_limit_cleanup"
)

// PurgeSessions задача очистки сессий
func PurgeSessions(sessions SessionPurger, logger Logger) Job {
	return func(ctx context.Context) error {
		purged, err := sessions.Purge(ctx)
		if err != nil {
			return err
		}
		logger.Info("Jobs: purged %d sessions", purged)
		return nil
	}
}

// PruneActivities задача очистки журнала активности. retentionDays == 0 - хранить всё.
func PruneActivities(activities ActivityPruner, retentionDays int, logger Logger) Job {
	retention := time.Duration(retentionDays) * 24 * time.Hour

	return func(ctx context.Context) error {
		if retention <= 0 {
			return nil
		}
		deleted, err := activities.Prune(ctx, retention)
		if err != nil {
			return err
		}
		logger.Info("Jobs: pruned %d activities", deleted)
		return nil
	}
}

// CleanupVisitors задача очистки счетчиков ограничителя частоты запросов
func CleanupVisitors(limiter VisitorCleaner, idle time.Duration) Job {
	return func(context.Context) error {
		limiter.Cleanup(idle)
		return nil
	}
}
