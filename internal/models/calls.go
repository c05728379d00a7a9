// Package models defines the core data structures shared across the
// application.
package models

import "time"

// TimestampLayout is the canonical timestamp format for cleaned exports.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp wraps time.Time with CSV marshalling in the canonical layout.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time value.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalCSV renders the timestamp for cleaned CSV exports. Zero values
// render empty.
func (t Timestamp) MarshalCSV() (string, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.Format(TimestampLayout), nil
}

// UnmarshalCSV parses a timestamp from a cleaned CSV export. Empty cells
// yield the zero value.
func (t *Timestamp) UnmarshalCSV(csv string) error {
	if csv == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(TimestampLayout, csv)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// CallLeg is one cleaned row of the raw call log: a single routing leg of a
// call. Several legs with the same call ID belong to one call.
type CallLeg struct {
	CallID         string
	StartTime      time.Time
	Direction      string
	Status         string
	RingingSec     int
	TalkingSec     int
	FromNumber     string
	ToNumber       string
	ActivityDetail string
	Classification LegClassification
}

// Call is the aggregated call-level record, one per call ID. The csv tags
// define the cleaned-export column layout.
type Call struct {
	CallID          string       `csv:"call_id"`
	CallStart       Timestamp    `csv:"call_start"`
	FromNumber      string       `csv:"from_number"`
	ToNumber        string       `csv:"to_number"`
	Directions      string       `csv:"directions"`
	Statuses        string       `csv:"statuses"`
	RingingTotalSec int          `csv:"ringing_total_sec"`
	TalkingTotalSec int          `csv:"talking_total_sec"`
	CustomerType    CustomerType `csv:"customer_type"`
	IsAnswered      bool         `csv:"is_answered"`
	IsAbandoned     bool         `csv:"is_abandoned"`
	Week            int          `csv:"week"`
	ActivityDetails string       `csv:"call_activity_details"`
}

// IsRetail reports whether the call resolved to a retail customer.
func (c Call) IsRetail() bool { return c.CustomerType == CustomerTypeRetail }

// IsTrade reports whether the call resolved to a trade customer.
func (c Call) IsTrade() bool { return c.CustomerType == CustomerTypeTrade }

// AbandonedCall is one cleaned abandoned-log record. Customer type is
// resolved after parsing by matching the caller id against known trade
// numbers.
type AbandonedCall struct {
	CallerID        string       `csv:"caller_id"`
	CallTime        Timestamp    `csv:"call_time"`
	CustomerType    CustomerType `csv:"customer_type"`
	Week            int          `csv:"week"`
	WaitingTime     string       `csv:"waiting_time"`
	AgentState      string       `csv:"agent_state"`
	PollingAttempts int          `csv:"polling_attempts"`
	Queue           string       `csv:"queue"`
}

// IsRetail reports whether the record resolved to a retail customer.
func (a AbandonedCall) IsRetail() bool { return a.CustomerType == CustomerTypeRetail }

// IsTrade reports whether the record resolved to a trade customer.
func (a AbandonedCall) IsTrade() bool { return a.CustomerType == CustomerTypeTrade }
