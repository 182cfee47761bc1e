package classify

import (
	"time"

	"github.com/jonathan/resume-screener/internal/types"
)

// ActiveWindow is how long after posting a job counts as active.
const ActiveWindow = 30 * 24 * time.Hour

// JobState is the derived active/closed label of a job.
type JobState string

// Job states.
const (
	JobActive JobState = "active"
	JobClosed JobState = "closed"
)

// Label returns the capitalized state for headings.
func (s JobState) Label() string {
	if s == JobActive {
		return "Active"
	}
	return "Closed"
}

// Color returns the palette entry for the state.
func (s JobState) Color() Color {
	if s == JobActive {
		return ColorGreen
	}
	return ColorGray
}

// StateAt reports whether a job posted at posted is active at now.
func StateAt(posted, now time.Time) JobState {
	if now.Sub(posted) < ActiveWindow {
		return JobActive
	}
	return JobClosed
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Classifier classifies jobs against one instant. Take one per render pass so
// every job in a view is judged against the same now.
type Classifier struct {
	now time.Time
}

// NewClassifier captures clock.Now() once.
func NewClassifier(clock Clock) Classifier {
	if clock == nil {
		clock = SystemClock
	}
	return Classifier{now: clock.Now()}
}

// At returns a classifier fixed at now.
func At(now time.Time) Classifier {
	return Classifier{now: now}
}

// Now returns the captured instant.
func (c Classifier) Now() time.Time {
	return c.now
}

// Job returns the state of j. A job without any posted date was just posted.
func (c Classifier) Job(j *types.Job) JobState {
	posted, ok := j.PostedTime()
	if !ok {
		return JobActive
	}
	return StateAt(posted, c.now)
}

// Posted returns the posted time of j, falling back to the captured now.
func (c Classifier) Posted(j *types.Job) time.Time {
	if posted, ok := j.PostedTime(); ok {
		return posted
	}
	return c.now
}
