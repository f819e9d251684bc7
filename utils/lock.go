package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/sirupsen/logrus"
)

// ImportLock obtains a best-effort Redis lock for one uploader's import run.
// Reliability must not depend on Redis: upserts are keyed by (product, date)
// and executed in one transaction, so a missing lock only means two runs may
// race with last-write-wins semantics. The returned release func is always
// safe to call.
func ImportLock(ctx context.Context, key string, moduleName string, functionName string) func() {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	noop := func() {}

	if locker == nil {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": functionName,
			"key":      key,
		}).Warn("redis lock not ready; proceeding without import lock")
		return noop
	}

	lockKey := fmt.Sprintf("import:%s", key)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": functionName,
			"key":      key,
		}).Warn("could not obtain import lock; proceeding without it")
		return noop
	} else if err != nil {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": functionName,
			"key":      key,
		}).Warn("error obtaining import lock; proceeding without it: " + err.Error())
		return noop
	}

	return func() {
		if releaseErr := lock.Release(ctx); releaseErr != nil && releaseErr != redislock.ErrLockNotHeld {
			logger.WithFields(logrus.Fields{
				"module":   moduleName,
				"funcName": functionName,
				"key":      key,
			}).Warn("failed to release import lock: " + releaseErr.Error())
		}
	}
}
