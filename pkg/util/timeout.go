package util

import (
	"errors"
	"time"
)

// Timeout runs fn and gives up after the specified interval. A call that
// outlives the deadline keeps running in the background; its result is dropped.
func Timeout(fn func() error, duration time.Duration) error {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
	}()
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case err := <-ch:
		return err
	case <-timer.C:
		return errors.New("Timeout")
	}
}
