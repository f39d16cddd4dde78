package service

import "time"

// LogFilter narrows the flow audit log. Zero values match everything.
type LogFilter struct {
	From    time.Time // inclusive
	To      time.Time // inclusive
	Type    string    // one of the models.Event* types
	FlowID  string
	EntryID string
}
