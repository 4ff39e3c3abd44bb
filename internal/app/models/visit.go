package models

import "time"

type VisitStatus string

const (
	VisitScheduled  VisitStatus = "scheduled"
	VisitInProgress VisitStatus = "in_progress"
	VisitCompleted  VisitStatus = "completed"
	VisitCheckedOut VisitStatus = "checked_out"
)

type Visit struct {
	ID             string      `json:"id"`
	PatientID      string      `json:"patient_id"`
	PractitionerID string      `json:"practitioner_id"`
	Status         VisitStatus `json:"status"`
	ScheduledAt    time.Time   `json:"scheduled_at"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (v *Visit) IsCheckedOut() bool {
	return v.Status == VisitCheckedOut
}
