package models

import "time"

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusPending   ApplicationStatus = "pending"
	StatusRejected  ApplicationStatus = "rejected"
	StatusInterview ApplicationStatus = "interview"
)

// ApplicationNotification is built per apply request and handed to the
// notification sender. It is never stored.
type ApplicationNotification struct {
	JobTitle        string
	Company         string
	Location        string
	ApplicationDate time.Time
	Status          ApplicationStatus
}
