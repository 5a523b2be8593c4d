package workflow

import "github.com/govbudget/budget-portal/internal/models"

// StageTemplate is one entry of the fixed approval route for an entity type
type StageTemplate struct {
	StageNumber  int
	StageName    string
	ApproverRole models.UserRole
}

// StageTemplates returns the ordered approval route for an entity type.
// Stage numbers are contiguous starting at 1, exactly one role per stage.
// Entity types without a defined route yield an empty slice; no workflow
// can be created for them.
func StageTemplates(entityType models.EntityType) []StageTemplate {
	switch entityType {
	case models.EntityBudgetProposal:
		return []StageTemplate{
			{StageNumber: 1, StageName: "Department Review", ApproverRole: models.RoleDepartmentHead},
			{StageNumber: 2, StageName: "Ministry Review", ApproverRole: models.RoleMinistrySecretary},
			{StageNumber: 3, StageName: "Finance Ministry Approval", ApproverRole: models.RoleFinanceMinistryAdmin},
		}
	case models.EntityExpenditure:
		return []StageTemplate{
			{StageNumber: 1, StageName: "Department Approval", ApproverRole: models.RoleDepartmentHead},
			{StageNumber: 2, StageName: "Ministry Approval", ApproverRole: models.RoleMinistrySecretary},
		}
	default:
		return nil
	}
}
