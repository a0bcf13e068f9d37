package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/spoc-booking/internal/domain"
	"github.com/spec-kit/spoc-booking/internal/events"
	"github.com/spec-kit/spoc-booking/internal/repository"
	apperrors "github.com/spec-kit/spoc-booking/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ClientService owns client records and is the boundary validator for
// submissions; callers downstream trust that an accepted submission had all
// required fields.
type ClientService struct {
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
}

// ClientDependencies bundles dependencies for the client service.
type ClientDependencies struct {
	ClientRepo repository.ClientRepository
	Dispatcher events.Dispatcher
}

// NewClientService constructs the service.
func NewClientService(deps ClientDependencies) *ClientService {
	return &ClientService{
		clients:    deps.ClientRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateClient validates and stores a submission, returning the new record.
// Creation is not idempotent; a retried create after a timeout may produce a
// duplicate client.
func (s *ClientService) CreateClient(ctx context.Context, sub domain.ClientSubmission) (*domain.Client, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:               newShortID(),
		CompanyName:      strings.TrimSpace(sub.CompanyName),
		ContactName:      strings.TrimSpace(sub.ContactName),
		ContactEmail:     strings.TrimSpace(sub.ContactEmail),
		ContactPhone:     strings.TrimSpace(sub.ContactPhone),
		Industry:         strings.TrimSpace(sub.Industry),
		BudgetRange:      sub.BudgetRange,
		DecisionTimeline: sub.DecisionTimeline,
		SolutionType:     sub.SolutionType,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventClientCreated,
		Payload: events.ClientCreatedPayload{
			ClientID:     client.ID,
			CompanyName:  client.CompanyName,
			SolutionType: client.SolutionType,
		},
	})
	return client, nil
}

// GetClient fetches a client by id.
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": id})
		}
		return nil, err
	}
	return client, nil
}

// ListClients returns clients with pagination.
func (s *ClientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

func validateSubmission(sub domain.ClientSubmission) error {
	details := map[string]any{}
	if strings.TrimSpace(sub.CompanyName) == "" {
		details["company_name"] = "required"
	}
	email := strings.TrimSpace(sub.ContactEmail)
	if email == "" {
		details["contact_email"] = "required"
	} else if !emailPattern.MatchString(email) {
		details["contact_email"] = "invalid format"
	}
	if !domain.IsValidOption(domain.BudgetRanges, sub.BudgetRange) {
		details["budget_range"] = "must be one of the supported budget ranges"
	}
	if !domain.IsValidOption(domain.DecisionTimelines, sub.DecisionTimeline) {
		details["decision_timeline"] = "must be one of the supported timelines"
	}
	if !domain.IsValidOption(domain.SolutionTypes, sub.SolutionType) {
		details["solution_type"] = "must be one of the supported solution types"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid client submission", details)
	}
	return nil
}

func (s *ClientService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func newShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
