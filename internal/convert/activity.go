package convert

import "sync/atomic"

// activeConversions counts dispatches currently in flight, across all four
// operations. Surfaced on the health endpoint.
var activeConversions atomic.Int64

// TrackActive marks one conversion as started and returns the function that
// marks it finished.
func TrackActive() func() {
	activeConversions.Add(1)
	return func() { activeConversions.Add(-1) }
}

// ActiveConversions returns the number of conversions in flight.
func ActiveConversions() int64 {
	return activeConversions.Load()
}
