package bookingflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

type fakeDirectory struct {
	mu sync.Mutex

	clientID        string
	createClientErr error
	clientCalls     int
	blockCreate     chan struct{}
	createEntered   chan struct{}

	spocs   []domain.Spoc
	listErr error

	slots           map[int][]domain.Slot
	availabilityErr map[int]error

	bookingResult *BookingResult
	bookingErr    error
	lastBooking   *BookingRequest
}

func (f *fakeDirectory) CreateClient(ctx context.Context, sub domain.ClientSubmission) (string, error) {
	f.mu.Lock()
	f.clientCalls++
	f.mu.Unlock()
	if f.createEntered != nil {
		close(f.createEntered)
		f.createEntered = nil
	}
	if f.blockCreate != nil {
		<-f.blockCreate
	}
	if f.createClientErr != nil {
		return "", f.createClientErr
	}
	return f.clientID, nil
}

func (f *fakeDirectory) ListSpocs(ctx context.Context, solutionType string) ([]domain.Spoc, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.spocs, nil
}

func (f *fakeDirectory) GetAvailability(ctx context.Context, spocID int, from, to time.Time) ([]domain.Slot, error) {
	if err := f.availabilityErr[spocID]; err != nil {
		return nil, err
	}
	return f.slots[spocID], nil
}

func (f *fakeDirectory) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	f.mu.Lock()
	captured := req
	f.lastBooking = &captured
	f.mu.Unlock()
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return f.bookingResult, nil
}

var acmeSubmission = domain.ClientSubmission{
	CompanyName:      "Acme",
	ContactEmail:     "a@b.com",
	SolutionType:     "Automation",
	BudgetRange:      "$50K - $250K",
	DecisionTimeline: "This Month",
}

func twoSpocDirectory() *fakeDirectory {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &fakeDirectory{
		clientID: "c1a2b3c4",
		spocs: []domain.Spoc{
			{ID: 1, Name: "Rajesh Sharma", Expertise: "Automation"},
			{ID: 2, Name: "Priya Desai", Expertise: "Automation"},
		},
		slots: map[int][]domain.Slot{
			1: {
				{ID: 11, SpocID: 1, StartTime: start, EndTime: start.Add(time.Hour)},
				{ID: 12, SpocID: 1, StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour)},
			},
		},
		availabilityErr: map[int]error{
			2: errors.New("availability backend down"),
		},
		bookingResult: &BookingResult{
			BookingID:   "bk123456",
			SpocName:    "Rajesh Sharma",
			StartTime:   start,
			MeetingLink: "https://meet.example.com/booking/bk123456",
		},
	}
}

func TestSubmitClientEntersReviewing(t *testing.T) {
	dir := twoSpocDirectory()
	o := NewOrchestrator(dir, zap.NewNop())

	spocs, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.NoError(t, err)

	session := o.Snapshot()
	assert.Equal(t, StateReviewing, session.State)
	assert.Equal(t, "c1a2b3c4", session.ClientID)
	assert.Equal(t, 1, dir.clientCalls)
	assert.NoError(t, session.LastErr)

	// SPOC2's availability failure degrades to an empty slot list.
	require.Len(t, spocs, 2)
	assert.Equal(t, 1, spocs[0].Spoc.ID)
	assert.Len(t, spocs[0].Slots, 2)
	assert.Equal(t, 2, spocs[1].Spoc.ID)
	assert.Empty(t, spocs[1].Slots)
}

func TestSubmitClientCreateFailureStaysInForm(t *testing.T) {
	dir := twoSpocDirectory()
	dir.createClientErr = newFlowError(KindValidationRejected, "invalid client submission", nil)
	o := NewOrchestrator(dir, zap.NewNop())

	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.Error(t, err)
	assert.Equal(t, KindValidationRejected, KindOf(err))

	session := o.Snapshot()
	assert.Equal(t, StateForm, session.State)
	assert.Empty(t, session.ClientID)
	assert.Error(t, session.LastErr)
}

func TestSubmitClientListFailureStaysInForm(t *testing.T) {
	dir := twoSpocDirectory()
	dir.listErr = newFlowError(KindDependencyUnavailable, "booking service is unreachable", nil)
	o := NewOrchestrator(dir, zap.NewNop())

	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.Error(t, err)
	assert.Equal(t, KindDependencyUnavailable, KindOf(err))
	assert.Equal(t, StateForm, o.Snapshot().State)
}

func TestSelectSlotBeforeSubmissionIsRejected(t *testing.T) {
	o := NewOrchestrator(twoSpocDirectory(), zap.NewNop())

	before := o.Snapshot()
	err := o.SelectSlot(1, 11)
	require.Error(t, err)
	assert.Equal(t, KindPrecondition, KindOf(err))

	after := o.Snapshot()
	assert.Equal(t, before.State, after.State)
	assert.Nil(t, after.SelectedSpoc)
	assert.Nil(t, after.SelectedSlot)
}

func TestSelectSlotUnknownSlotIsRejected(t *testing.T) {
	o := NewOrchestrator(twoSpocDirectory(), zap.NewNop())
	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.NoError(t, err)

	err = o.SelectSlot(1, 999)
	require.Error(t, err)
	assert.Equal(t, KindPrecondition, KindOf(err))
	assert.Nil(t, o.Snapshot().SelectedSlot)
}

func TestConfirmWithoutSelectionIsRejected(t *testing.T) {
	o := NewOrchestrator(twoSpocDirectory(), zap.NewNop())
	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.NoError(t, err)

	_, err = o.ConfirmBooking(context.Background(), "Technical Demo")
	require.Error(t, err)
	assert.Equal(t, KindPrecondition, KindOf(err))
	assert.Equal(t, StateReviewing, o.Snapshot().State)
}

func TestConfirmBookingSuccess(t *testing.T) {
	dir := twoSpocDirectory()
	o := NewOrchestrator(dir, zap.NewNop())

	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.NoError(t, err)
	require.NoError(t, o.SelectSlot(1, 11))

	result, err := o.ConfirmBooking(context.Background(), "Technical Demo")
	require.NoError(t, err)
	assert.Equal(t, "Rajesh Sharma", result.SpocName)

	session := o.Snapshot()
	assert.Equal(t, StateBooked, session.State)
	require.NotNil(t, session.Result)
	assert.Equal(t, "bk123456", session.Result.BookingID)

	// The booking request carries exactly the selected pair.
	require.NotNil(t, dir.lastBooking)
	assert.Equal(t, "c1a2b3c4", dir.lastBooking.ClientID)
	assert.Equal(t, 1, dir.lastBooking.SpocID)
	assert.Equal(t, 11, dir.lastBooking.SlotID)
	assert.Equal(t, "Technical Demo", dir.lastBooking.MeetingType)
}

func TestConfirmBookingConflictReturnsToReviewing(t *testing.T) {
	dir := twoSpocDirectory()
	dir.bookingErr = newFlowError(KindSlotConflict, "slot not available or does not exist", nil)
	o := NewOrchestrator(dir, zap.NewNop())

	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.NoError(t, err)
	require.NoError(t, o.SelectSlot(1, 11))

	_, err = o.ConfirmBooking(context.Background(), "Technical Demo")
	require.Error(t, err)
	assert.Equal(t, KindSlotConflict, KindOf(err))

	session := o.Snapshot()
	assert.Equal(t, StateReviewing, session.State)
	require.NotNil(t, session.SelectedSpoc)
	require.NotNil(t, session.SelectedSlot)
	assert.Equal(t, 1, session.SelectedSpoc.ID)
	assert.Equal(t, 11, session.SelectedSlot.ID)
	assert.Equal(t, KindSlotConflict, KindOf(session.LastErr))
}

func TestConfirmRetryAfterConflictSucceeds(t *testing.T) {
	dir := twoSpocDirectory()
	dir.bookingErr = newFlowError(KindSlotConflict, "slot not available or does not exist", nil)
	o := NewOrchestrator(dir, zap.NewNop())

	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.NoError(t, err)
	require.NoError(t, o.SelectSlot(1, 12))
	_, err = o.ConfirmBooking(context.Background(), "Quick Intro Call")
	require.Error(t, err)

	dir.bookingErr = nil
	result, err := o.ConfirmBooking(context.Background(), "Quick Intro Call")
	require.NoError(t, err)
	assert.Equal(t, "bk123456", result.BookingID)
	assert.Equal(t, StateBooked, o.Snapshot().State)
}

func TestResetIsIdempotent(t *testing.T) {
	o := NewOrchestrator(twoSpocDirectory(), zap.NewNop())
	_, err := o.SubmitClient(context.Background(), acmeSubmission)
	require.NoError(t, err)
	require.NoError(t, o.SelectSlot(1, 11))

	o.Reset()
	first := o.Snapshot()
	o.Reset()
	second := o.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, StateForm, second.State)
	assert.Empty(t, second.ClientID)
	assert.Nil(t, second.Submission)
	assert.Nil(t, second.Spocs)
	assert.Nil(t, second.SelectedSpoc)
	assert.Nil(t, second.SelectedSlot)
	assert.Nil(t, second.Result)
	assert.NoError(t, second.LastErr)
}

func TestOperationsAreSingleFlight(t *testing.T) {
	dir := twoSpocDirectory()
	dir.blockCreate = make(chan struct{})
	dir.createEntered = make(chan struct{})
	o := NewOrchestrator(dir, zap.NewNop())

	entered := dir.createEntered
	done := make(chan error, 1)
	go func() {
		_, err := o.SubmitClient(context.Background(), acmeSubmission)
		done <- err
	}()

	<-entered
	_, err := o.ConfirmBooking(context.Background(), "Technical Demo")
	require.Error(t, err)
	assert.Equal(t, KindBusy, KindOf(err))

	close(dir.blockCreate)
	require.NoError(t, <-done)
	assert.Equal(t, StateReviewing, o.Snapshot().State)
}
