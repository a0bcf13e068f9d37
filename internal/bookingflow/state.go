package bookingflow

import "github.com/spec-kit/spoc-booking/internal/domain"

// State enumerates workflow progress. Booked is terminal and reachable only
// through a successful confirmation.
type State string

const (
	StateForm       State = "FORM"
	StateReviewing  State = "REVIEWING"
	StateConfirming State = "CONFIRMING"
	StateBooked     State = "BOOKED"
)

// Session is the in-memory state tracking one client's progress through the
// booking workflow. Snapshots returned by the orchestrator are detached
// copies.
type Session struct {
	State        State
	Submission   *domain.ClientSubmission
	ClientID     string
	Spocs        []domain.SpocAvailability
	SelectedSpoc *domain.Spoc
	SelectedSlot *domain.Slot
	Result       *BookingResult
	LastErr      error
}

func newSession() Session {
	return Session{State: StateForm}
}

func (s Session) clone() Session {
	out := s
	if s.Submission != nil {
		sub := *s.Submission
		out.Submission = &sub
	}
	if s.Spocs != nil {
		out.Spocs = make([]domain.SpocAvailability, len(s.Spocs))
		for i, entry := range s.Spocs {
			copied := entry
			copied.Slots = append([]domain.Slot(nil), entry.Slots...)
			out.Spocs[i] = copied
		}
	}
	if s.SelectedSpoc != nil {
		spoc := *s.SelectedSpoc
		out.SelectedSpoc = &spoc
	}
	if s.SelectedSlot != nil {
		slot := *s.SelectedSlot
		out.SelectedSlot = &slot
	}
	if s.Result != nil {
		result := *s.Result
		out.Result = &result
	}
	return out
}
