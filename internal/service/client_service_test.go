package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/spoc-booking/internal/domain"
	"github.com/spec-kit/spoc-booking/internal/events"
	"github.com/spec-kit/spoc-booking/internal/repository"
	apperrors "github.com/spec-kit/spoc-booking/pkg/util"
)

func newClientService(t *testing.T) (*ClientService, events.Dispatcher) {
	t.Helper()
	repos := repository.NewMemoryRepositories(time.Now())
	dispatcher := events.NewInMemoryDispatcher()
	return NewClientService(ClientDependencies{
		ClientRepo: repos.Clients,
		Dispatcher: dispatcher,
	}), dispatcher
}

func validSubmission() domain.ClientSubmission {
	return domain.ClientSubmission{
		CompanyName:      "Acme Corp",
		ContactName:      "Jordan Lee",
		ContactEmail:     "jordan@acme.com",
		ContactPhone:     "+1-555-0100",
		Industry:         "Manufacturing",
		BudgetRange:      "$250K - $1M",
		DecisionTimeline: "Next Week",
		SolutionType:     "Automation",
	}
}

func TestCreateClientAssignsShortID(t *testing.T) {
	svc, dispatcher := newClientService(t)

	var created []events.Event
	dispatcher.Subscribe(events.EventClientCreated, func(ctx context.Context, e events.Event) error {
		created = append(created, e)
		return nil
	})

	client, err := svc.CreateClient(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Len(t, client.ID, 8)
	assert.Equal(t, "Acme Corp", client.CompanyName)

	fetched, err := svc.GetClient(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, fetched.ID)
	assert.False(t, fetched.CreatedAt.IsZero())

	require.Len(t, created, 1)
	payload, ok := created[0].Payload.(events.ClientCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, client.ID, payload.ClientID)
}

func TestCreateClientTrimsWhitespace(t *testing.T) {
	svc, _ := newClientService(t)

	sub := validSubmission()
	sub.CompanyName = "  Acme Corp  "
	sub.ContactEmail = " jordan@acme.com "

	client, err := svc.CreateClient(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", client.CompanyName)
	assert.Equal(t, "jordan@acme.com", client.ContactEmail)
}

func TestCreateClientValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.ClientSubmission)
		field  string
	}{
		{"missing company", func(s *domain.ClientSubmission) { s.CompanyName = "  " }, "company_name"},
		{"missing email", func(s *domain.ClientSubmission) { s.ContactEmail = "" }, "contact_email"},
		{"malformed email", func(s *domain.ClientSubmission) { s.ContactEmail = "not-an-email" }, "contact_email"},
		{"email without domain", func(s *domain.ClientSubmission) { s.ContactEmail = "jordan@acme" }, "contact_email"},
		{"unknown budget", func(s *domain.ClientSubmission) { s.BudgetRange = "priceless" }, "budget_range"},
		{"unknown timeline", func(s *domain.ClientSubmission) { s.DecisionTimeline = "someday" }, "decision_timeline"},
		{"unknown solution", func(s *domain.ClientSubmission) { s.SolutionType = "Magic" }, "solution_type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newClientService(t)
			sub := validSubmission()
			tc.mutate(&sub)

			_, err := svc.CreateClient(context.Background(), sub)
			require.Error(t, err)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
			assert.Contains(t, domainErr.Details, tc.field)
		})
	}
}

func TestCreateClientOptionalFieldsMayBeEmpty(t *testing.T) {
	svc, _ := newClientService(t)

	sub := validSubmission()
	sub.ContactName = ""
	sub.ContactPhone = ""
	sub.Industry = ""

	_, err := svc.CreateClient(context.Background(), sub)
	require.NoError(t, err)
}

func TestGetClientUnknownIsNotFound(t *testing.T) {
	svc, _ := newClientService(t)

	_, err := svc.GetClient(context.Background(), "deadbeef")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListClientsPagination(t *testing.T) {
	svc, _ := newClientService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateClient(ctx, validSubmission())
		require.NoError(t, err)
	}

	page, err := svc.ListClients(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.ListClients(ctx, 10, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	empty, err := svc.ListClients(ctx, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
