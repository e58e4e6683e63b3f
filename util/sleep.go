package util

import (
	"context"
	"time"
)

// SleepContext waits for 'dur', returning early with the context's cause if
// 'ctx' is done first.
func SleepContext(ctx context.Context, dur time.Duration) (err error) {
	if dur <= 0 {
		return context.Cause(ctx)
	}

	timer := time.NewTimer(dur)
	defer func() {
		if err != nil && !timer.Stop() {
			<-timer.C
		}
	}()
	select {
	case <-ctx.Done():
		err = context.Cause(ctx)
		return
	case <-timer.C:
		return
	}
}

// Retry calls fn up to 'attempts' times with 'delay' between calls. fn
// returns stop=true for failures another attempt will not fix. The last
// error from fn is returned.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func(attempt int) (stop bool, err error)) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var stop bool
		stop, err = fn(attempt)
		if err == nil || stop || attempt == attempts {
			return err
		}
		if sleepErr := SleepContext(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}
