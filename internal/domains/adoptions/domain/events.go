package domain

import "time"

// Event is the base interface for adoption domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AdoptionApproved is raised after an approval commits. It carries what the
// documents invitation needs so delivery never reads the database again.
type AdoptionApproved struct {
	BaseEvent
	AdoptionID     int64
	PetID          int64
	ClientID       int64
	SolicitationID string
	Name           string
	Email          string
}

// EventName returns the event type identifier.
func (e AdoptionApproved) EventName() string {
	return "adoptions.adoption.approved"
}
