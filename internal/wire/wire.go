// Package wire pins the on-wire contract shared with other clients of the
// same Redis deployment: the hash field names, the Lua scripts, and the tick
// encoding used for expiration metadata. Entries written by this package must
// stay readable by clients speaking the same format (and vice versa), so
// nothing in here may change shape.
//
// Layout of an entry under its (prefixed) key:
//
//	absexp  absolute expiration, int64 ticks, -1 when unset
//	sldexp  sliding window, int64 ticks (duration), -1 when unset
//	data    opaque payload bytes
//
// A tick is 100ns; instants count ticks from 0001-01-01T00:00:00 UTC.
package wire

import (
	"fmt"
	"strconv"
	"time"
)

const (
	FieldAbsExp = "absexp"
	FieldSldExp = "sldexp"
	FieldData   = "data"

	// NotPresent is the sentinel written in place of an unset expiration
	// field, and passed as the TTL argument when no TTL applies.
	NotPresent int64 = -1
)

// SetScript writes metadata and payload in one atomic server-side step and,
// unless ARGV[4] is the sentinel, applies the relative TTL (whole seconds).
// Because the hash fields land in a single script, a concurrent reader sees
// either the whole old entry or the whole new one, never a torn mix.
const SetScript = `redis.call('HMSET', KEYS[1], 'absexp', ARGV[1], 'sldexp', ARGV[2], 'data', ARGV[3])
if ARGV[4] ~= '-1' then
  redis.call('EXPIRE', KEYS[1], ARGV[4])
end
return 1`

// HMGetScript returns the hash values for the field names in ARGV, so
// metadata-only reads skip transferring the payload.
const HMGetScript = `return redis.call('HMGET', KEYS[1], unpack(ARGV))`

const ticksPerSecond = 10_000_000 // 100ns ticks

// unixEpochTicks is 1970-01-01T00:00:00 UTC on the tick timeline.
const unixEpochTicks = 621_355_968_000_000_000

// TicksFromTime converts an instant to wire ticks. Computed from the Unix
// epoch because a time.Duration cannot span back to year 1.
func TicksFromTime(t time.Time) int64 {
	return unixEpochTicks + t.Unix()*ticksPerSecond + int64(t.Nanosecond())/100
}

// TimeFromTicks converts wire ticks back to a UTC instant.
func TimeFromTicks(ticks int64) time.Time {
	rel := ticks - unixEpochTicks
	return time.Unix(rel/ticksPerSecond, (rel%ticksPerSecond)*100).UTC()
}

// TicksFromDuration converts a duration to wire ticks.
func TicksFromDuration(d time.Duration) int64 {
	return d.Nanoseconds() / 100
}

// DurationFromTicks converts wire ticks (a duration, not an instant) back to
// a time.Duration.
func DurationFromTicks(ticks int64) time.Duration {
	return time.Duration(ticks * 100)
}

// ParseField decodes one cell of an HMGET-style reply into ticks.
// A nil cell (missing field or missing key) and the NotPresent sentinel both
// decode as absent. Anything unparsable is an error; the value may belong to
// a foreign client, so callers must not "repair" it.
func ParseField(v any) (ticks int64, ok bool, err error) {
	var s string
	switch vv := v.(type) {
	case nil:
		return 0, false, nil
	case string:
		s = vv
	case []byte:
		s = string(vv)
	case int64:
		if vv == NotPresent {
			return 0, false, nil
		}
		return vv, true, nil
	default:
		return 0, false, fmt.Errorf("wire: unexpected field type %T", v)
	}
	n, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil {
		return 0, false, fmt.Errorf("wire: malformed ticks %q: %w", s, perr)
	}
	if n == NotPresent {
		return 0, false, nil
	}
	return n, true, nil
}
