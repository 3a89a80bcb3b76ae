// Package clock provides the real-time pipeline.Clock implementation.
package clock

import "time"

// System is the wall-clock-backed pipeline.Clock.
type System struct{}

// NowMS returns the current time in Unix milliseconds.
func (System) NowMS() int64 {
	return time.Now().UnixMilli()
}
