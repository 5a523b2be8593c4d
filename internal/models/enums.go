package models

// EntityType identifies the kind of record an approval workflow gates
type EntityType string

const (
	EntityBudgetProposal EntityType = "Budget Proposal"
	EntityExpenditure    EntityType = "Expenditure"
	EntityReallocation   EntityType = "Reallocation"
	EntityScheme         EntityType = "Scheme"
)

var validEntityTypes = map[EntityType]bool{
	EntityBudgetProposal: true,
	EntityExpenditure:    true,
	EntityReallocation:   true,
	EntityScheme:         true,
}

// IsValid returns true if the entity type is part of the closed set
func (t EntityType) IsValid() bool {
	return validEntityTypes[t]
}

// String returns the string representation of the entity type
func (t EntityType) String() string {
	return string(t)
}

// ProposalStatus is the lifecycle status shared by proposals, expenditures
// and the workflows that gate them
type ProposalStatus string

const (
	StatusDraft             ProposalStatus = "Draft"
	StatusSubmitted         ProposalStatus = "Submitted"
	StatusUnderReview       ProposalStatus = "Under Review"
	StatusApproved          ProposalStatus = "Approved"
	StatusRejected          ProposalStatus = "Rejected"
	StatusRevisionRequested ProposalStatus = "Revision Requested"
)

var terminalStatuses = map[ProposalStatus]bool{
	StatusApproved: true,
	StatusRejected: true,
}

// IsTerminal returns true when no further workflow action is allowed
func (s ProposalStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// String returns the string representation of the status
func (s ProposalStatus) String() string {
	return string(s)
}

// StageStatus is the per-stage approval status
type StageStatus string

const (
	StagePending  StageStatus = "Pending"
	StageApproved StageStatus = "Approved"
	StageRejected StageStatus = "Rejected"
	// StageDelegated is reserved in the vocabulary; no operation produces it yet
	StageDelegated StageStatus = "Delegated"
)

// UserRole is the closed set of portal roles
type UserRole string

const (
	RoleFinanceMinistryAdmin  UserRole = "Finance Ministry Admin"
	RoleBudgetDivisionOfficer UserRole = "Budget Division Officer"
	RoleMinistrySecretary     UserRole = "Ministry Secretary"
	RoleDepartmentHead        UserRole = "Department Head"
	RoleSectionOfficer        UserRole = "Section Officer"
	RoleAuditor               UserRole = "Auditor"
)

var validRoles = map[UserRole]bool{
	RoleFinanceMinistryAdmin:  true,
	RoleBudgetDivisionOfficer: true,
	RoleMinistrySecretary:     true,
	RoleDepartmentHead:        true,
	RoleSectionOfficer:        true,
	RoleAuditor:               true,
}

// IsValid returns true if the role is part of the closed set
func (r UserRole) IsValid() bool {
	return validRoles[r]
}

// SchemeType classifies a government scheme
type SchemeType string

const (
	SchemeCentralSector      SchemeType = "Central Sector"
	SchemeCentrallySponsored SchemeType = "Centrally Sponsored"
	SchemeCore               SchemeType = "Core Scheme"
	SchemeSub                SchemeType = "Sub Scheme"
)

// ProposalType classifies a budget proposal
type ProposalType string

const (
	ProposalBudgetEstimate     ProposalType = "Budget Estimate"
	ProposalRevisedEstimate    ProposalType = "Revised Estimate"
	ProposalSupplementaryGrant ProposalType = "Supplementary Grant"
)

// BudgetType splits amounts into revenue and capital heads
type BudgetType string

const (
	BudgetRevenue BudgetType = "Revenue"
	BudgetCapital BudgetType = "Capital"
)

// AllocationStatus is the lifecycle status of a sanctioned allocation
type AllocationStatus string

const (
	AllocationActive    AllocationStatus = "Active"
	AllocationFrozen    AllocationStatus = "Frozen"
	AllocationExhausted AllocationStatus = "Exhausted"
)
