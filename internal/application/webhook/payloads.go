package webhook

import "encoding/json"

// envelope is the outer shape shared by identity and billing deliveries
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type clerkEmail struct {
	EmailAddress string `json:"email_address"`
}

type clerkUser struct {
	ID             string       `json:"id"`
	FirstName      *string      `json:"first_name"`
	LastName       *string      `json:"last_name"`
	EmailAddresses []clerkEmail `json:"email_addresses"`
}

func (u clerkUser) emails() []string {
	out := make([]string, 0, len(u.EmailAddresses))
	for _, e := range u.EmailAddresses {
		out = append(out, e.EmailAddress)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type clerkDeletedObject struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type clerkPlan struct {
	Name string `json:"name"`
}

type clerkSubscription struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Plan             clerkPlan `json:"plan"`
	CurrentPeriodEnd int64     `json:"current_period_end"`
}
