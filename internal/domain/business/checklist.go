package business

import (
	"time"

	"github.com/opstracker/backend/internal/domain/shared"
)

// Goal is a milestone on the user's checklist
type Goal struct {
	shared.OwnedEntity
	Title      string
	IsAchieved bool
	AchievedAt *time.Time
}

// NewGoal creates an unachieved goal
func NewGoal(userID, title string) *Goal {
	return &Goal{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Title:       title,
	}
}

// SetAchieved stamps the achievement time, or clears it when unset
func (g *Goal) SetAchieved(achieved bool, now time.Time) {
	g.IsAchieved = achieved
	if achieved {
		g.AchievedAt = &now
	} else {
		g.AchievedAt = nil
	}
	g.Touch()
}

// Tool is an item on the user's setup checklist
type Tool struct {
	shared.OwnedEntity
	Name    string
	IsSetUp bool
}

// NewTool creates a tool that is not yet set up
func NewTool(userID, name string) *Tool {
	return &Tool{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Name:        name,
	}
}

// SetSetUp flips the setup flag
func (t *Tool) SetSetUp(setUp bool) {
	t.IsSetUp = setUp
	t.Touch()
}
