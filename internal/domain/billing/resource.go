package billing

// Resource is a table whose row count is limited on the free plan
type Resource string

const (
	ResourceFinancialEntries  Resource = "financial_entries"
	ResourceScripts           Resource = "scripts"
	ResourceObjectionHandlers Resource = "objection_handlers"
)

// AllResources lists every gated resource
func AllResources() []Resource {
	return []Resource{
		ResourceFinancialEntries,
		ResourceScripts,
		ResourceObjectionHandlers,
	}
}

// IsValid returns true for a known resource
func (r Resource) IsValid() bool {
	switch r {
	case ResourceFinancialEntries, ResourceScripts, ResourceObjectionHandlers:
		return true
	}
	return false
}

// DisplayName returns the plural noun used in limit messages
func (r Resource) DisplayName() string {
	switch r {
	case ResourceFinancialEntries:
		return "financial entries"
	case ResourceScripts:
		return "scripts"
	case ResourceObjectionHandlers:
		return "objection handlers"
	}
	return string(r)
}
