package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Post struct defines how a post is exchanged with the feed API
type Post struct {
	Id        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UserId    ID        `json:"userId"`
	Timestamp Timestamp `json:"timestamp"`
}

// Timestamp holds seconds since epoch, as a numeric string
type Timestamp string

// NewTimestamp formats t as seconds since epoch
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(strconv.FormatInt(t.Unix(), 10))
}

// UnmarshalJSON accepts the numeric string used by the API
// and plain JSON numbers
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var id ID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(id)

	return nil
}

// MarshalJSON always writes the timestamp as a string
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// Seconds returns the numeric value of the timestamp.
// Timestamps which are not numbers sort before every valid one.
func (t Timestamp) Seconds() float64 {
	seconds, err := strconv.ParseFloat(string(t), 64)
	if err != nil || math.IsNaN(seconds) {
		return math.Inf(-1)
	}

	return seconds
}

// Time converts the timestamp, the zero time is returned when invalid
func (t Timestamp) Time() time.Time {
	seconds := t.Seconds()
	if math.IsInf(seconds, -1) {
		return time.Time{}
	}

	return time.Unix(int64(seconds), 0)
}
