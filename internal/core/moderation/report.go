// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package moderation lets members report photos and moderators work the report
queue.

# Lifecycle

	pending → resolved   (the photo is hidden)
	pending → dismissed  (the photo stays active)

A closed report never reopens. A member holds at most one pending report per
photo; once it is closed they may report the photo again.
*/
package moderation

import "time"

// # Status

// Status is where a report is in the queue.
type Status string

const (
	StatusPending   Status = "pending"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// Closes reports whether s is an outcome a moderator can pick.
func (s Status) Closes() bool {
	return s == StatusResolved || s == StatusDismissed
}

// # Entities

// MaxReasonLength bounds the free-text reason, in runes.
const MaxReasonLength = 500

// Report is one member's complaint about a photo.
type Report struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporter_id"`
	PhotoID    string     `json:"photo_id"`
	Reason     string     `json:"reason"`
	Status     Status     `json:"status"`
	ResolvedBy *string    `json:"resolved_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// FileReportInput is the body of a new report.
type FileReportInput struct {
	PhotoID string `json:"photo_id"`
	Reason  string `json:"reason"`
}

// ResolveInput is a moderator's decision on a report.
type ResolveInput struct {
	Outcome Status `json:"outcome"`
}
