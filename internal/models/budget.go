package models

import "time"

// BudgetProposal is a funding request tied to a scheme and financial year,
// subject to the approval workflow
type BudgetProposal struct {
	ID             string           `json:"id"`
	ProposalNumber string           `json:"proposal_number"`
	FinancialYear  string           `json:"financial_year"` // "YYYY-YY", April-March
	SchemeID       string           `json:"scheme_id"`
	MinistryID     string           `json:"ministry_id"`
	DepartmentID   *string          `json:"department_id,omitempty"`
	ProposalType   ProposalType     `json:"proposal_type"`
	Status         ProposalStatus   `json:"status"`
	TotalAmount    float64          `json:"total_amount"`
	RevenueAmount  float64          `json:"revenue_amount"`
	CapitalAmount  float64          `json:"capital_amount"`
	Justification  string           `json:"justification,omitempty"`
	SubmittedAt    *time.Time       `json:"submitted_at,omitempty"`
	ApprovedAt     *time.Time       `json:"approved_at,omitempty"`
	ApprovedBy     *string          `json:"approved_by,omitempty"`
	CreatedBy      string           `json:"created_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	LineItems      []BudgetLineItem `json:"line_items,omitempty"`
}

// BudgetLineItem is one head-of-account line within a proposal
type BudgetLineItem struct {
	ID            string     `json:"id"`
	ProposalID    string     `json:"proposal_id"`
	HeadOfAccount string     `json:"head_of_account"`
	Description   string     `json:"description,omitempty"`
	Amount        float64    `json:"amount"`
	BudgetType    BudgetType `json:"budget_type"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BudgetAllocation is the sanctioned, quarter-split budget created once a
// proposal is approved
type BudgetAllocation struct {
	ID               string           `json:"id"`
	ProposalID       string           `json:"proposal_id"`
	SchemeID         string           `json:"scheme_id"`
	FinancialYear    string           `json:"financial_year"`
	SanctionedAmount float64          `json:"sanctioned_amount"`
	Q1Allocation     float64          `json:"q1_allocation"`
	Q2Allocation     float64          `json:"q2_allocation"`
	Q3Allocation     float64          `json:"q3_allocation"`
	Q4Allocation     float64          `json:"q4_allocation"`
	Status           AllocationStatus `json:"status"`
	SanctionedAt     time.Time        `json:"sanctioned_at"`
	SanctionedBy     string           `json:"sanctioned_by,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Expenditure is an actual spending transaction recorded against a scheme
// and, optionally, an allocation
type Expenditure struct {
	ID              string         `json:"id"`
	AllocationID    *string        `json:"allocation_id,omitempty"`
	SchemeID        string         `json:"scheme_id"`
	MinistryID      string         `json:"ministry_id"`
	DepartmentID    *string        `json:"department_id,omitempty"`
	FinancialYear   string         `json:"financial_year"`
	Month           int            `json:"month"`
	Amount          float64        `json:"amount"`
	ExpenditureType BudgetType     `json:"expenditure_type"`
	Status          ProposalStatus `json:"status"`
	Description     string         `json:"description,omitempty"`
	TransactionDate time.Time      `json:"transaction_date"`
	VoucherNumber   string         `json:"voucher_number,omitempty"`
	ApprovedBy      *string        `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	CreatedBy       string         `json:"created_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}
