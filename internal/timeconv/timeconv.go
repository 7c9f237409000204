// Package timeconv normalizes the three timestamp conventions found in
// browser cookie stores into one wall-clock string representation.
//
// The convention is always chosen by the caller; it can never be inferred
// from the value alone, since the numeric ranges overlap.
package timeconv

import (
	"math"
	"time"
)

// Sentinel strings emitted instead of a formatted timestamp.
const (
	// Session marks a cookie whose stored expiry is zero or absent.
	Session = "Session"
	// Unknown marks a timestamp that could not be converted.
	Unknown = "Unknown"
)

// Layout is the output format for all resolved timestamps.
const Layout = "2006-01-02 15:04:05"

// chromiumEpochOffsetSeconds is the number of seconds between the Windows NT
// epoch (1601-01-01 00:00:00 UTC) and the Unix epoch (1970-01-01 00:00:00 UTC).
const chromiumEpochOffsetSeconds int64 = 11_644_473_600

// macEpochOffsetSeconds is the number of seconds between the Unix epoch and
// the Mac absolute-time epoch (2001-01-01 00:00:00 UTC).
const macEpochOffsetSeconds int64 = 978_307_200

// maxYear bounds accepted timestamps. Anything resolving outside
// [1601, 9999] is reported as Unknown rather than a nonsense date.
const maxYear = 9999

// Normalizer converts store-specific timestamps into wall-clock strings in a
// fixed location. The zero value is not usable; construct with New.
type Normalizer struct {
	loc *time.Location
}

// New returns a Normalizer that formats timestamps in loc. A nil loc selects
// the local time zone.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Chromium resolves a Chromium expiry: microseconds since 1601-01-01 UTC.
func (n *Normalizer) Chromium(usec int64) string {
	if usec == 0 {
		return Session
	}
	if usec < 0 {
		return Unknown
	}
	unix := usec/1_000_000 - chromiumEpochOffsetSeconds
	return n.format(time.Unix(unix, (usec%1_000_000)*1_000))
}

// Mac resolves a Safari expiry: fractional seconds since 2001-01-01 UTC.
func (n *Normalizer) Mac(sec float64) string {
	if sec == 0 {
		return Session
	}
	if math.IsNaN(sec) || math.IsInf(sec, 0) || math.Abs(sec) > 1e15 {
		return Unknown
	}
	whole, frac := math.Modf(sec)
	return n.format(time.Unix(int64(whole)+macEpochOffsetSeconds, int64(frac*1e9)))
}

// Unix resolves a Firefox expiry: whole seconds since 1970-01-01 UTC.
func (n *Normalizer) Unix(sec int64) string {
	if sec == 0 {
		return Session
	}
	return n.format(time.Unix(sec, 0))
}

func (n *Normalizer) format(t time.Time) string {
	t = t.In(n.loc)
	if y := t.Year(); y < 1601 || y > maxYear {
		return Unknown
	}
	return t.Format(Layout)
}
