package business

import (
	"strings"

	"github.com/opstracker/backend/internal/domain/shared"
)

// BusinessInfo is the one-per-user business profile
type BusinessInfo struct {
	shared.OwnedEntity
	BusinessName        string
	DBARegistrationDate string
	ServicesOffered     string
	PricingStructure    string
	BusinessEmail       string
	BusinessPhone       string
	TargetCustomer      string
}

// NewBusinessInfo creates a profile with only a name set
func NewBusinessInfo(userID, name string) *BusinessInfo {
	return &BusinessInfo{
		OwnedEntity:  shared.NewOwnedEntity(userID),
		BusinessName: name,
	}
}

// Profile carries the editable profile fields
type Profile struct {
	BusinessName        string
	DBARegistrationDate string
	ServicesOffered     string
	PricingStructure    string
	BusinessEmail       string
	BusinessPhone       string
	TargetCustomer      string
}

// Apply replaces all profile fields
func (b *BusinessInfo) Apply(p Profile) error {
	if strings.TrimSpace(p.BusinessName) == "" {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}
	if p.DBARegistrationDate != "" {
		if _, err := shared.ParseDay(p.DBARegistrationDate); err != nil {
			return err
		}
	}
	b.BusinessName = strings.TrimSpace(p.BusinessName)
	b.DBARegistrationDate = p.DBARegistrationDate
	b.ServicesOffered = p.ServicesOffered
	b.PricingStructure = p.PricingStructure
	b.BusinessEmail = p.BusinessEmail
	b.BusinessPhone = p.BusinessPhone
	b.TargetCustomer = p.TargetCustomer
	b.Touch()
	return nil
}
