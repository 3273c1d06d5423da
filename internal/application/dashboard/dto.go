package dashboard

import (
	appbusiness "github.com/opstracker/backend/internal/application/business"
	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// WeeklyStats is the aggregate of a date range
type WeeklyStats struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
	TotalApproaches int             `json:"total_approaches"`
	TotalJobs       int             `json:"total_jobs"`
	ConversionRate  decimal.Decimal `json:"conversion_rate"`
}

// DashboardResponse is the dashboard payload
type DashboardResponse struct {
	Start       string                     `json:"start"`
	End         string                     `json:"end"`
	WeeklyStats WeeklyStats                `json:"weekly_stats"`
	Goals       []appbusiness.GoalResponse `json:"goals"`
}

// MonthBucketResponse is one point of the growth chart
type MonthBucketResponse struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// ToMonthBucketResponses converts growth buckets
func ToMonthBucketResponses(buckets []finance.MonthBucket) []MonthBucketResponse {
	out := make([]MonthBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, MonthBucketResponse{
			Month:    b.Key,
			Label:    b.Label,
			Revenue:  b.Revenue,
			Expenses: b.Expenses,
			Profit:   b.Profit,
		})
	}
	return out
}
