// Package codec provides decoders for string tokens that carry a richer
// wire format: timestamps, durations. Each one composes the plain string
// decoder with a format parse, so shape mismatches and format defects
// produce separate diagnostics.
package codec

import (
	"fmt"
	"time"

	godeko "github.com/reoring/godeko"
)

// RFC3339 returns a Decoder for RFC3339 timestamps. Fractional seconds are
// accepted; anything else fails with a diagnostic quoting the text.
func RFC3339() godeko.Decoder[time.Time] {
	return godeko.DecoderFunc[time.Time](func(value godeko.Value, name string, d *godeko.Diagnostics) (time.Time, bool) {
		s, ok := godeko.String().Decode(value, name, d)
		if !ok {
			return time.Time{}, false
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, s); err != nil {
				d.Push(godeko.NewParseError(fmt.Sprintf("invalid RFC3339 timestamp %q", s), value.Range()))
				return time.Time{}, false
			}
		}
		return t, true
	})
}

// Duration returns a Decoder for Go duration literals such as "1h30m".
func Duration() godeko.Decoder[time.Duration] {
	return godeko.DecoderFunc[time.Duration](func(value godeko.Value, name string, d *godeko.Diagnostics) (time.Duration, bool) {
		s, ok := godeko.String().Decode(value, name, d)
		if !ok {
			return 0, false
		}
		dur, err := time.ParseDuration(s)
		if err != nil {
			d.Push(godeko.NewParseError(fmt.Sprintf("invalid duration %q", s), value.Range()))
			return 0, false
		}
		return dur, true
	})
}
