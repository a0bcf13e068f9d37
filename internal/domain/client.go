package domain

import "time"

// ClientSubmission is the requirements form a prospective client fills in
// before SPOC matching starts.
type ClientSubmission struct {
	CompanyName      string
	ContactName      string
	ContactEmail     string
	ContactPhone     string
	Industry         string
	BudgetRange      string
	DecisionTimeline string
	SolutionType     string
}

// Client is a stored client record with its service-assigned identifier.
type Client struct {
	ID               string
	CompanyName      string
	ContactName      string
	ContactEmail     string
	ContactPhone     string
	Industry         string
	BudgetRange      string
	DecisionTimeline string
	SolutionType     string
	CreatedAt        time.Time
}

// SolutionTypes enumerates the areas a SPOC can be matched on.
var SolutionTypes = []string{
	"Cloud Infrastructure",
	"Security Solutions",
	"Data Analytics",
	"Automation",
	"Custom Solutions",
}

// BudgetRanges enumerates accepted budget brackets.
var BudgetRanges = []string{
	"Under $50K",
	"$50K - $250K",
	"$250K - $1M",
	"$1M+",
}

// DecisionTimelines enumerates accepted decision horizons.
var DecisionTimelines = []string{
	"This Week",
	"Next Week",
	"This Month",
	"Open Timeline",
}

// IsValidOption reports whether val is one of the enumerated options.
func IsValidOption(options []string, val string) bool {
	for _, opt := range options {
		if opt == val {
			return true
		}
	}
	return false
}
