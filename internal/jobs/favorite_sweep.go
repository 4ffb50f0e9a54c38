// File: internal/jobs/favorite_sweep.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/favorite"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// FavoriteSweepJob periodically removes favorites whose listing is gone.
// The delete saga clears favorites transactionally; this sweep catches
// rows written by a toggle that raced the deletion.
type FavoriteSweepJob struct {
	favoriteService favorite.Service
	logger          *zap.Logger
	cfg             *config.Config
	cronScheduler   *cron.Cron
}

// NewFavoriteSweepJob creates a new FavoriteSweepJob.
func NewFavoriteSweepJob(
	favoriteService favorite.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *FavoriteSweepJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &FavoriteSweepJob{
		favoriteService: favoriteService,
		logger:          logger.Named("FavoriteSweepJob"),
		cfg:             cfg,
		cronScheduler:   scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *FavoriteSweepJob) SetupAndStart() error {
	jobSpec := j.cfg.FavoriteSweepSchedule
	if jobSpec == "" {
		j.logger.Warn("Favorite sweep schedule not defined (FAVORITE_SWEEP_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule favorite sweep job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Favorite sweep job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *FavoriteSweepJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := j.favoriteService.SweepOrphans(ctx)
	if err != nil {
		j.logger.Error("Favorite sweep run failed", zap.Error(err))
		return
	}
	j.logger.Info("Favorite sweep run completed", zap.Int64("favorites_removed", removed))
}

// Stop gracefully stops the cron scheduler.
func (j *FavoriteSweepJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping favorite sweep scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Favorite sweep scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Favorite sweep scheduler stop timed out.")
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
