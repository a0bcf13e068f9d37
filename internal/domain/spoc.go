package domain

import "time"

// Spoc is a subject-matter expert who can be booked for a meeting.
type Spoc struct {
	ID             int
	Name           string
	Expertise      string
	Specialization string
	Email          string
	Phone          string
}

// Slot is a discrete bookable start time owned by a SPOC. Once fetched it is
// a point-in-time snapshot; it may already be taken by the time a booking is
// attempted.
type Slot struct {
	ID        int
	SpocID    int
	StartTime time.Time
	EndTime   time.Time
	IsBooked  bool
}

// SpocAvailability pairs a SPOC with its open slots in a window. An empty
// slot list is a valid, displayable result, not an error.
type SpocAvailability struct {
	Spoc  Spoc
	Slots []Slot
}
