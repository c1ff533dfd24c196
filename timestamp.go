package colfer

import "time"

// Timestamp is the wire timestamp value: non-leap seconds since the Unix
// epoch plus sub-second nanoseconds (spec §3). NanoSeconds is documented
// to lie in [0, 1e9) but, per spec, the codec itself never validates
// this.
type Timestamp struct {
	Seconds     int64
	NanoSeconds uint32
}

// IsZero reports whether t is the absent value (spec §4.2: both fields
// zero encodes no bytes at all).
func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.NanoSeconds == 0
}

// Time converts t to the standard library's time.Time, in UTC. This is
// the Go-native analogue of the original Rust implementation's
// datetime.rs conversions (see SPEC_FULL.md); per spec §1's non-goals,
// no third-party calendar type is involved, only the standard library's
// own time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.NanoSeconds)).UTC()
}

// TimestampFromTime converts a time.Time to a wire Timestamp, truncating
// to whole nanoseconds.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{
		Seconds:     t.Unix(),
		NanoSeconds: uint32(t.Nanosecond()),
	}
}
