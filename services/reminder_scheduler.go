package services

import (
	"classtrack_go/config"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler runs the daily fee reminder sweep on a cron schedule
type ReminderScheduler struct {
	cron      *cron.Cron
	messaging *MessagingService
}

func NewReminderScheduler(messaging *MessagingService) *ReminderScheduler {
	return &ReminderScheduler{
		cron:      cron.New(),
		messaging: messaging,
	}
}

// Start registers the sweep and launches the cron loop. No-op when the sweep
// is disabled in config.
func (r *ReminderScheduler) Start() error {
	if !config.AppConfig.EnableReminderSweep {
		logrus.Info("Fee reminder sweep disabled")
		return nil
	}

	spec := config.AppConfig.ReminderSweepSpec
	_, err := r.cron.AddFunc(spec, func() {
		if _, err := r.messaging.SendFeeReminders(); err != nil {
			logrus.WithError(err).Error("Fee reminder sweep failed")
		}
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	logrus.WithField("spec", spec).Info("Fee reminder sweep scheduled")
	return nil
}

func (r *ReminderScheduler) Stop() {
	r.cron.Stop()
}
