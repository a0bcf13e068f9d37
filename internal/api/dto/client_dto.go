package dto

import (
	"time"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// CreateClientRequest is the client requirements submission payload.
type CreateClientRequest struct {
	CompanyName      string `json:"company_name"`
	ContactName      string `json:"contact_name"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
	Industry         string `json:"industry"`
	BudgetRange      string `json:"budget_range"`
	DecisionTimeline string `json:"decision_timeline"`
	SolutionType     string `json:"solution_type"`
}

// Submission converts the request into the domain submission.
func (r CreateClientRequest) Submission() domain.ClientSubmission {
	return domain.ClientSubmission{
		CompanyName:      r.CompanyName,
		ContactName:      r.ContactName,
		ContactEmail:     r.ContactEmail,
		ContactPhone:     r.ContactPhone,
		Industry:         r.Industry,
		BudgetRange:      r.BudgetRange,
		DecisionTimeline: r.DecisionTimeline,
		SolutionType:     r.SolutionType,
	}
}

// ClientResponse describes a stored client record.
type ClientResponse struct {
	ClientID     string    `json:"client_id"`
	CompanyName  string    `json:"company_name"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewClientResponse maps a domain client.
func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:     client.ID,
		CompanyName:  client.CompanyName,
		ContactName:  client.ContactName,
		ContactEmail: client.ContactEmail,
		CreatedAt:    client.CreatedAt,
	}
}
