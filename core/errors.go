package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSeries is returned when a series name is not part of the timeline.
	ErrUnknownSeries = errors.New("unknown series")

	// ErrEmptyTimeline is returned when a timeline has no points to measure.
	ErrEmptyTimeline = errors.New("empty timeline")
)

func wrapUnknown(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownSeries, name)
}
