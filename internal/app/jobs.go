package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/openkasse/cashierd/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err := a.sched.AddFunc("@daily", func() {
		a.SchedPurgeStaleCarts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedPurgeStaleCarts deletes unpaid carts abandoned longer than the
// configured retention window. Paid carts are the sales history and are
// never touched; line items go with their cart via the cascade.
func (a *Application) SchedPurgeStaleCarts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	idays := a.settings.GetInt64("cashier", "CartRetentionDays")
	if idays == 0 {
		idays = 30
	}

	res := a.gormDB.
		Where("paid = ? AND updated_at < ?", false,
			time.Now().Add(-time.Hour*24*time.Duration(idays))).
		Delete(&domain.Cart{})
	if res.Error != nil {
		zap.L().Error("failed to purge stale carts", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		zap.L().Info("purged stale unpaid carts", zap.Int64("count", res.RowsAffected))
	}
}
