package bookingflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/spoc-booking/internal/api/dto"
	"github.com/spec-kit/spoc-booking/internal/config"
	"github.com/spec-kit/spoc-booking/internal/domain"
)

// RestDirectory is the thin REST client implementing Directory against the
// booking service. It performs no retries; every retry is user-initiated.
type RestDirectory struct {
	baseURL    string
	httpClient *http.Client
}

// NewRestDirectory builds a client from config.
func NewRestDirectory(cfg config.RemoteConfig) *RestDirectory {
	return &RestDirectory{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// CreateClient implements Directory.
func (d *RestDirectory) CreateClient(ctx context.Context, sub domain.ClientSubmission) (string, error) {
	req := dto.CreateClientRequest{
		CompanyName:      sub.CompanyName,
		ContactName:      sub.ContactName,
		ContactEmail:     sub.ContactEmail,
		ContactPhone:     sub.ContactPhone,
		Industry:         sub.Industry,
		BudgetRange:      sub.BudgetRange,
		DecisionTimeline: sub.DecisionTimeline,
		SolutionType:     sub.SolutionType,
	}
	var resp dto.ClientResponse
	if err := d.doJSON(ctx, http.MethodPost, "/api/v1/clients", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.ClientID, nil
}

// ListSpocs implements Directory.
func (d *RestDirectory) ListSpocs(ctx context.Context, solutionType string) ([]domain.Spoc, error) {
	query := url.Values{}
	if solutionType != "" {
		query.Set("solution_type", solutionType)
	}
	var resp []dto.SpocResponse
	if err := d.doJSON(ctx, http.MethodGet, "/api/v1/spocs", query, nil, &resp); err != nil {
		return nil, err
	}
	spocs := make([]domain.Spoc, 0, len(resp))
	for _, item := range resp {
		spocs = append(spocs, domain.Spoc{
			ID:             item.SpocID,
			Name:           item.Name,
			Expertise:      item.Expertise,
			Specialization: item.Specialization,
			Email:          item.Email,
			Phone:          item.Phone,
		})
	}
	return spocs, nil
}

// GetAvailability implements Directory.
func (d *RestDirectory) GetAvailability(ctx context.Context, spocID int, from, to time.Time) ([]domain.Slot, error) {
	query := url.Values{}
	query.Set("start_date", from.Format(time.RFC3339))
	query.Set("end_date", to.Format(time.RFC3339))

	path := "/api/v1/spocs/" + strconv.Itoa(spocID) + "/availability"
	var resp dto.SpocAvailabilityResponse
	if err := d.doJSON(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	slots := make([]domain.Slot, 0, len(resp.AvailableSlots))
	for _, item := range resp.AvailableSlots {
		slots = append(slots, domain.Slot{
			ID:        item.SlotID,
			SpocID:    spocID,
			StartTime: item.StartTime,
			EndTime:   item.EndTime,
		})
	}
	return slots, nil
}

// CreateBooking implements Directory.
func (d *RestDirectory) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	payload := dto.CreateBookingRequest{
		ClientID:    req.ClientID,
		SpocID:      req.SpocID,
		SlotID:      req.SlotID,
		MeetingType: req.MeetingType,
	}
	var resp dto.BookingConfirmationResponse
	if err := d.doJSON(ctx, http.MethodPost, "/api/v1/bookings", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &BookingResult{
		BookingID:   resp.BookingID,
		SpocName:    resp.SpocName,
		StartTime:   resp.StartTime,
		MeetingLink: resp.MeetingLink,
	}, nil
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (d *RestDirectory) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return newFlowError(KindUnknown, genericErrorMessage, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	endpoint := d.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return newFlowError(KindUnknown, genericErrorMessage, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return newFlowError(KindDependencyUnavailable, "booking service is unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newFlowError(KindDependencyUnavailable, "booking service is unreachable", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return mapHTTPError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return newFlowError(KindUnknown, genericErrorMessage, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return newFlowError(KindUnknown, genericErrorMessage, err)
	}
	return nil
}

// mapHTTPError classifies a non-2xx response. A server-supplied detail
// message is preferred; the generic message is the fallback.
func mapHTTPError(status int, raw []byte) error {
	var envelope errorEnvelope
	message := genericErrorMessage
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}
	cause := fmt.Errorf("booking service returned status %d", status)

	switch {
	case status == http.StatusConflict:
		return newFlowError(KindSlotConflict, message, cause)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return newFlowError(KindValidationRejected, message, cause)
	case status >= http.StatusInternalServerError:
		return newFlowError(KindDependencyUnavailable, message, cause)
	default:
		return newFlowError(KindUnknown, message, cause)
	}
}
