package account

import "github.com/opstracker/backend/internal/domain/business"

// DefaultBusinessName is the placeholder name of a freshly seeded profile
const DefaultBusinessName = "My New Business"

// GoalChecklist is the milestone list every new account starts with
var GoalChecklist = []string{
	"First customer acquired",
	"First $100 day",
	"10 total customers",
	"DBA registered",
	"Business bank account opened",
	"First $1,000 revenue",
	"First repeat customer",
	"LLC filed",
	"First $10K month",
	"Hired first person",
}

// ToolStack is the setup checklist every new account starts with
var ToolStack = []string{
	"Google Voice (business number)",
	"Business email",
	"Google Calendar (scheduling)",
	"Wave Accounting (invoicing)",
	"Payment methods (Venmo/CashApp/Zelle)",
	"Facebook Marketplace account",
	"Nextdoor account",
	"Canva account",
	"This workbook system",
}

// Seed is the starter data written together with a new user
type Seed struct {
	BusinessInfo *business.BusinessInfo
	Goals        []*business.Goal
	Tools        []*business.Tool
}

// NewSeed builds the starter data for a user
func NewSeed(u *User) *Seed {
	info := business.NewBusinessInfo(u.ExternalID, DefaultBusinessName)
	info.BusinessEmail = u.Email

	goals := make([]*business.Goal, 0, len(GoalChecklist))
	for _, g := range GoalChecklist {
		goals = append(goals, business.NewGoal(u.ExternalID, g))
	}

	tools := make([]*business.Tool, 0, len(ToolStack))
	for _, name := range ToolStack {
		tools = append(tools, business.NewTool(u.ExternalID, name))
	}

	return &Seed{BusinessInfo: info, Goals: goals, Tools: tools}
}
