package pipeline

import (
	"strings"

	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Lead is a prospect that has not bought yet
type Lead struct {
	shared.OwnedEntity
	Name            string
	Contact         string
	ServiceInterest string
	Source          string
	DateAdded       string
	Status          string
	NextAction      string
}

// LeadDetails carries the editable lead fields
type LeadDetails struct {
	Name            string
	Contact         string
	ServiceInterest string
	Source          string
	DateAdded       string
	Status          string
	NextAction      string
}

// NewLead creates a lead
func NewLead(userID string, d LeadDetails) (*Lead, error) {
	l := &Lead{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := l.Apply(d); err != nil {
		return nil, err
	}
	return l, nil
}

// Apply replaces the editable fields
func (l *Lead) Apply(d LeadDetails) error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	if err := optionalDay(d.DateAdded); err != nil {
		return err
	}
	l.Name = strings.TrimSpace(d.Name)
	l.Contact = d.Contact
	l.ServiceInterest = d.ServiceInterest
	l.Source = d.Source
	l.DateAdded = d.DateAdded
	l.Status = d.Status
	l.NextAction = d.NextAction
	l.Touch()
	return nil
}

// FollowUp is a reminder to contact someone again
type FollowUp struct {
	shared.OwnedEntity
	CustomerName string
	LastContact  string
	Reason       string
	FollowUpDate string
	Notes        string
}

// FollowUpDetails carries the editable follow-up fields
type FollowUpDetails struct {
	CustomerName string
	LastContact  string
	Reason       string
	FollowUpDate string
	Notes        string
}

// NewFollowUp creates a follow-up
func NewFollowUp(userID string, d FollowUpDetails) (*FollowUp, error) {
	f := &FollowUp{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := f.Apply(d); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply replaces the editable fields
func (f *FollowUp) Apply(d FollowUpDetails) error {
	if err := requireName(d.CustomerName); err != nil {
		return err
	}
	if err := optionalDay(d.LastContact); err != nil {
		return err
	}
	if err := optionalDay(d.FollowUpDate); err != nil {
		return err
	}
	f.CustomerName = strings.TrimSpace(d.CustomerName)
	f.LastContact = d.LastContact
	f.Reason = d.Reason
	f.FollowUpDate = d.FollowUpDate
	f.Notes = d.Notes
	f.Touch()
	return nil
}

// Customer is a person who has bought at least once. The counters are
// bookkeeping the user maintains; nothing recomputes them from job history.
type Customer struct {
	shared.OwnedEntity
	Name           string
	Contact        string
	FirstJobDate   string
	LastJobDate    string
	TotalJobs      int
	TotalRevenue   decimal.Decimal
	ReferralsGiven int
}

// NewCustomer creates a customer after their first job
func NewCustomer(userID, name, contact, firstJobDate string) (*Customer, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	if _, err := shared.ParseDay(firstJobDate); err != nil {
		return nil, err
	}
	return &Customer{
		OwnedEntity:  shared.NewOwnedEntity(userID),
		Name:         strings.TrimSpace(name),
		Contact:      contact,
		FirstJobDate: firstJobDate,
		LastJobDate:  firstJobDate,
		TotalJobs:    1,
		TotalRevenue: decimal.Zero,
	}, nil
}

// CustomerPatch holds optional edits; nil fields are left alone
type CustomerPatch struct {
	Name           *string
	Contact        *string
	LastJobDate    *string
	TotalJobs      *int
	TotalRevenue   *decimal.Decimal
	ReferralsGiven *int
}

// Apply applies a partial update including the manual counters
func (c *Customer) Apply(p CustomerPatch) error {
	if p.Name != nil {
		if err := requireName(*p.Name); err != nil {
			return err
		}
	}
	if p.LastJobDate != nil {
		if _, err := shared.ParseDay(*p.LastJobDate); err != nil {
			return err
		}
		if *p.LastJobDate < c.FirstJobDate {
			return shared.NewDomainError("INVALID_DATE", "Last job date cannot be before the first job date")
		}
	}
	if p.TotalJobs != nil && *p.TotalJobs < 0 {
		return shared.NewDomainError("INVALID_COUNTER", "Total jobs cannot be negative")
	}
	if p.ReferralsGiven != nil && *p.ReferralsGiven < 0 {
		return shared.NewDomainError("INVALID_COUNTER", "Referrals given cannot be negative")
	}
	if p.TotalRevenue != nil && p.TotalRevenue.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Total revenue cannot be negative")
	}
	if p.TotalRevenue != nil {
		if err := shared.ValidateMoney("Total revenue", *p.TotalRevenue); err != nil {
			return err
		}
	}

	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Contact != nil {
		c.Contact = *p.Contact
	}
	if p.LastJobDate != nil {
		c.LastJobDate = *p.LastJobDate
	}
	if p.TotalJobs != nil {
		c.TotalJobs = *p.TotalJobs
	}
	if p.TotalRevenue != nil {
		c.TotalRevenue = *p.TotalRevenue
	}
	if p.ReferralsGiven != nil {
		c.ReferralsGiven = *p.ReferralsGiven
	}
	c.Touch()
	return nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	return nil
}

func optionalDay(s string) error {
	if s == "" {
		return nil
	}
	_, err := shared.ParseDay(s)
	return err
}
