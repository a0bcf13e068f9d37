package bookingflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/spoc-booking/internal/config"
	"github.com/spec-kit/spoc-booking/internal/domain"
)

func restDirectoryFor(t *testing.T, handler http.Handler) (*RestDirectory, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	dir := NewRestDirectory(config.RemoteConfig{BaseURL: server.URL, TimeoutSeconds: 5})
	return dir, server
}

func writeData(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func writeError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	}))
}

func TestCreateClientDecodesEnvelope(t *testing.T) {
	var gotBody map[string]any
	dir, _ := restDirectoryFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/clients", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeData(t, w, http.StatusCreated, map[string]any{
			"client_id":    "c1a2b3c4",
			"company_name": "Acme",
			"created_at":   time.Now().UTC(),
		})
	}))

	clientID, err := dir.CreateClient(context.Background(), domain.ClientSubmission{
		CompanyName:  "Acme",
		ContactEmail: "a@b.com",
		SolutionType: "Automation",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1a2b3c4", clientID)
	assert.Equal(t, "Acme", gotBody["company_name"])
	assert.Equal(t, "a@b.com", gotBody["contact_email"])
}

func TestListSpocsPassesSolutionTypeFilter(t *testing.T) {
	dir, _ := restDirectoryFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/spocs", r.URL.Path)
		assert.Equal(t, "Data Analytics", r.URL.Query().Get("solution_type"))
		writeData(t, w, http.StatusOK, []map[string]any{
			{"spoc_id": 3, "name": "Amit Patel", "expertise": "Data Analytics"},
		})
	}))

	spocs, err := dir.ListSpocs(context.Background(), "Data Analytics")
	require.NoError(t, err)
	require.Len(t, spocs, 1)
	assert.Equal(t, 3, spocs[0].ID)
	assert.Equal(t, "Amit Patel", spocs[0].Name)
}

func TestGetAvailabilitySendsWindowAndMapsSlots(t *testing.T) {
	from := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	to := from.Add(AvailabilityWindow)
	start := from.Add(25 * time.Hour)

	dir, _ := restDirectoryFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/spocs/2/availability", r.URL.Path)
		assert.Equal(t, from.Format(time.RFC3339), r.URL.Query().Get("start_date"))
		assert.Equal(t, to.Format(time.RFC3339), r.URL.Query().Get("end_date"))
		writeData(t, w, http.StatusOK, map[string]any{
			"spoc_id": 2,
			"name":    "Priya Desai",
			"available_slots": []map[string]any{
				{"slot_id": 21, "start_time": start, "end_time": start.Add(time.Hour)},
			},
		})
	}))

	slots, err := dir.GetAvailability(context.Background(), 2, from, to)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 21, slots[0].ID)
	assert.Equal(t, 2, slots[0].SpocID)
	assert.True(t, slots[0].StartTime.Equal(start))
}

func TestCreateBookingMapsConfirmation(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	dir, _ := restDirectoryFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bookings", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c1a2b3c4", body["client_id"])
		assert.Equal(t, float64(11), body["slot_id"])
		writeData(t, w, http.StatusCreated, map[string]any{
			"booking_id":   "bk123456",
			"message":      "Booking created successfully",
			"spoc_name":    "Rajesh Sharma",
			"meeting_link": "https://meet.example.com/booking/bk123456",
			"start_time":   start,
		})
	}))

	result, err := dir.CreateBooking(context.Background(), BookingRequest{
		ClientID:    "c1a2b3c4",
		SpocID:      1,
		SlotID:      11,
		MeetingType: "Technical Demo",
	})
	require.NoError(t, err)
	assert.Equal(t, "bk123456", result.BookingID)
	assert.Equal(t, "Rajesh Sharma", result.SpocName)
	assert.Equal(t, "https://meet.example.com/booking/bk123456", result.MeetingLink)
	assert.True(t, result.StartTime.Equal(start))
}

func TestStatusCodeClassification(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		message string
		kind    ErrorKind
	}{
		{"conflict", http.StatusConflict, "slot not available or does not exist", KindSlotConflict},
		{"bad request", http.StatusBadRequest, "invalid meeting type", KindValidationRejected},
		{"unprocessable", http.StatusUnprocessableEntity, "missing company name", KindValidationRejected},
		{"server error", http.StatusInternalServerError, "", KindDependencyUnavailable},
		{"bad gateway", http.StatusBadGateway, "", KindDependencyUnavailable},
		{"teapot", http.StatusTeapot, "", KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir, _ := restDirectoryFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(t, w, tc.status, string(tc.kind), tc.message)
			}))

			_, err := dir.CreateBooking(context.Background(), BookingRequest{ClientID: "x", SpocID: 1, SlotID: 1})
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))

			var flowErr *FlowError
			require.ErrorAs(t, err, &flowErr)
			if tc.message != "" {
				assert.Equal(t, tc.message, flowErr.Message)
			} else {
				assert.Equal(t, genericErrorMessage, flowErr.Message)
			}
		})
	}
}

func TestUnparsableErrorBodyFallsBackToGenericMessage(t *testing.T) {
	dir, _ := restDirectoryFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := dir.CreateBooking(context.Background(), BookingRequest{ClientID: "x", SpocID: 1, SlotID: 1})
	require.Error(t, err)
	assert.Equal(t, KindSlotConflict, KindOf(err))

	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, genericErrorMessage, flowErr.Message)
}

func TestUnreachableServerIsDependencyUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	dir := NewRestDirectory(config.RemoteConfig{BaseURL: server.URL, TimeoutSeconds: 1})

	_, err := dir.ListSpocs(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindDependencyUnavailable, KindOf(err))

	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "booking service is unreachable", flowErr.Message)
}
