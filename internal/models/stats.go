package models

// DashboardStats aggregates portal-wide figures for the dashboard
type DashboardStats struct {
	TotalBudget       float64 `json:"total_budget"`
	TotalExpenditure  float64 `json:"total_expenditure"`
	BudgetUtilization float64 `json:"budget_utilization"` // percentage
	PendingApprovals  int     `json:"pending_approvals"`
	ActiveSchemes     int     `json:"active_schemes"`
	TotalMinistries   int     `json:"total_ministries"`
}

// BudgetUtilization is one row of the scheme-wise utilization report
type BudgetUtilization struct {
	SchemeName            string  `json:"scheme_name"`
	SchemeCode            string  `json:"scheme_code"`
	FinancialYear         string  `json:"financial_year"`
	Allocated             float64 `json:"allocated"`
	Spent                 float64 `json:"spent"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
}
