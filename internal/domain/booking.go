package domain

import "time"

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "Scheduled"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Booking is the aggregate for a confirmed meeting.
type Booking struct {
	ID          string
	ClientID    string
	SpocID      int
	SlotID      int
	MeetingType string
	Status      BookingStatus
	MeetingLink string
	CreatedAt   time.Time
}

// MeetingTypeDurations maps each meeting type to its fixed duration. The
// meeting type is chosen at confirmation time, independent of how the slot
// was advertised.
var MeetingTypeDurations = map[string]time.Duration{
	"Quick Intro Call":           30 * time.Minute,
	"Technical Demo":             60 * time.Minute,
	"Deep Dive + POC Discussion": 90 * time.Minute,
}

// IsValidMeetingType reports whether val is a known meeting type.
func IsValidMeetingType(val string) bool {
	_, ok := MeetingTypeDurations[val]
	return ok
}
