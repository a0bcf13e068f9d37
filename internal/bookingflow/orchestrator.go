package bookingflow

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// Orchestrator drives one booking session from submission to confirmation.
// At most one operation may be in flight per session: a second call while
// another is pending is rejected with KindBusy rather than queued, so the
// no-concurrent-mutation invariant holds without relying on the caller.
type Orchestrator struct {
	mu      sync.Mutex
	busy    bool
	dir     Directory
	agg     *Aggregator
	logger  *zap.Logger
	session Session
}

// NewOrchestrator constructs an orchestrator over a remote directory.
func NewOrchestrator(dir Directory, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		dir:     dir,
		agg:     NewAggregator(dir, logger),
		logger:  logger,
		session: newSession(),
	}
}

// SubmitClient starts a fresh session from a submission: it creates the
// client record, aggregates matching SPOCs with their availability and
// moves the session to Reviewing. On any failure the session stays in Form
// with the error exposed; the submission may simply be retried. The
// submission is trusted to have passed boundary validation; a remote
// rejection is still surfaced safely.
func (o *Orchestrator) SubmitClient(ctx context.Context, sub domain.ClientSubmission) ([]domain.SpocAvailability, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.end()

	// Starting a new submission discards any prior progress.
	o.withSession(func(s *Session) {
		*s = newSession()
	})

	clientID, err := o.dir.CreateClient(ctx, sub)
	if err != nil {
		flowErr := asFlowError(err)
		o.logger.Warn("client creation failed", zap.Error(flowErr))
		o.withSession(func(s *Session) {
			s.LastErr = flowErr
		})
		return nil, flowErr
	}

	spocs, err := o.agg.Collect(ctx, sub.SolutionType)
	if err != nil {
		flowErr := asFlowError(err)
		o.logger.Warn("availability aggregation failed", zap.Error(flowErr))
		o.withSession(func(s *Session) {
			s.ClientID = clientID
			s.LastErr = flowErr
		})
		return nil, flowErr
	}

	submission := sub
	o.withSession(func(s *Session) {
		s.Submission = &submission
		s.ClientID = clientID
		s.Spocs = spocs
		s.State = StateReviewing
		s.LastErr = nil
	})
	return spocs, nil
}

// SelectSlot records the chosen SPOC/slot pair. It is advisory only: no
// remote reservation happens and the workflow state does not change. It is
// callable only while Reviewing; anywhere else it fails without touching
// the session.
func (o *Orchestrator) SelectSlot(spocID, slotID int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session.State != StateReviewing {
		return newFlowError(KindPrecondition, "no results to select from", nil)
	}
	for i := range o.session.Spocs {
		entry := &o.session.Spocs[i]
		if entry.Spoc.ID != spocID {
			continue
		}
		for _, slot := range entry.Slots {
			if slot.ID == slotID {
				spoc := entry.Spoc
				selected := slot
				o.session.SelectedSpoc = &spoc
				o.session.SelectedSlot = &selected
				o.session.LastErr = nil
				return nil
			}
		}
	}
	return newFlowError(KindPrecondition, "selected slot is not in the current results", nil)
}

// ConfirmBooking books the selected slot with the chosen meeting type. On
// success the session reaches Booked with the result stored. On failure the
// session returns to Reviewing with the selection preserved, so the user
// can pick another slot or retry.
func (o *Orchestrator) ConfirmBooking(ctx context.Context, meetingType string) (*BookingResult, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.end()

	var req BookingRequest
	var preconditionErr error
	o.withSession(func(s *Session) {
		if s.State != StateReviewing || s.SelectedSpoc == nil || s.SelectedSlot == nil {
			preconditionErr = newFlowError(KindPrecondition, "select a slot before confirming", nil)
			return
		}
		req = BookingRequest{
			ClientID:    s.ClientID,
			SpocID:      s.SelectedSpoc.ID,
			SlotID:      s.SelectedSlot.ID,
			MeetingType: meetingType,
		}
		s.State = StateConfirming
	})
	if preconditionErr != nil {
		return nil, preconditionErr
	}

	result, err := o.dir.CreateBooking(ctx, req)
	if err != nil {
		flowErr := asFlowError(err)
		o.logger.Warn("booking confirmation failed",
			zap.Int("spoc_id", req.SpocID),
			zap.Int("slot_id", req.SlotID),
			zap.Error(flowErr))
		o.withSession(func(s *Session) {
			s.State = StateReviewing
			s.LastErr = flowErr
		})
		return nil, flowErr
	}

	o.withSession(func(s *Session) {
		s.Result = result
		s.State = StateBooked
		s.LastErr = nil
	})
	return result, nil
}

// Reset clears the session back to an empty Form. It is idempotent.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.session = newSession()
}

// Snapshot returns a detached copy of the current session.
func (o *Orchestrator) Snapshot() Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.clone()
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return newFlowError(KindBusy, "another operation is in progress", nil)
	}
	o.busy = true
	return nil
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
}

func (o *Orchestrator) withSession(fn func(*Session)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(&o.session)
}
