// Package overs converts between cricket overs notation ("W.B", where B is
// balls bowled in the current over) and decimal overs.
package overs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BallsPerOver is the number of legal deliveries in one over.
const BallsPerOver = 6

// ErrMalformed is returned by Parse for values that are not "W" or "W.B".
var ErrMalformed = errors.New("malformed overs value")

// ToDecimal converts "W.B" notation to decimal overs. Each part is read as a
// leading integer; missing or non-numeric parts count as 0, so malformed input
// degrades to 0 rather than failing.
func ToDecimal(s string) float64 {
	whole, balls, _ := strings.Cut(s, ".")
	return float64(leadingInt(whole)) + float64(leadingInt(balls))/BallsPerOver
}

// Parse is the strict form of ToDecimal. The ball digit must be 0-5.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	whole, balls, hasBalls := strings.Cut(s, ".")

	if !allDigits(whole) {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	w, err := strconv.Atoi(whole)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if !hasBalls {
		return float64(w), nil
	}
	if len(balls) != 1 || balls[0] < '0' || balls[0] > '5' {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return float64(w) + float64(balls[0]-'0')/BallsPerOver, nil
}

// Notation converts decimal overs back to "W.B". Six rounded balls carry into
// the next over, so the ball digit is always 0-5.
func Notation(decimal float64) string {
	whole := math.Floor(decimal)
	balls := math.Round((decimal - whole) * BallsPerOver)
	if balls >= BallsPerOver {
		whole++
		balls = 0
	}
	return fmt.Sprintf("%d.%d", int64(whole), int64(balls))
}

// FromBalls converts a ball count to decimal overs.
func FromBalls(balls int) float64 {
	return float64(balls) / BallsPerOver
}

// Balls converts decimal overs to the nearest whole ball count.
func Balls(decimal float64) int {
	return int(math.Round(decimal * BallsPerOver))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Value is an overs figure held as decimal overs. In JSON it accepts either a
// number (taken as decimal overs unchanged) or a "W.B" string. It is written
// back in "W.B" notation when that parses to the same value, and as a number
// otherwise.
type Value float64

// Decimal returns the value as decimal overs.
func (v Value) Decimal() float64 { return float64(v) }

// String returns the value in "W.B" notation.
func (v Value) String() string { return Notation(float64(v)) }

func (v Value) MarshalJSON() ([]byte, error) {
	s := v.String()
	if d, err := Parse(s); err == nil && d == float64(v) {
		return json.Marshal(s)
	}
	return json.Marshal(float64(v))
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Value(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, data)
	}
	d, err := Parse(s)
	if err != nil {
		return err
	}
	*v = Value(d)
	return nil
}
