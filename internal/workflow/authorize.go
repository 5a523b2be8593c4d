package workflow

import "github.com/govbudget/budget-portal/internal/models"

// CanApproveStage reports whether a profile may act on a stage gated by
// currentStageRole. The Finance Ministry Admin bypasses all checks; other
// roles must match the stage role exactly, and Department Head / Ministry
// Secretary are additionally scoped to their own department / ministry.
func CanApproveStage(profile *models.UserProfile, currentStageRole models.UserRole, ministryID, departmentID *string) bool {
	if profile == nil {
		return false
	}

	if profile.Role == models.RoleFinanceMinistryAdmin {
		return true
	}

	if profile.Role != currentStageRole {
		return false
	}

	switch currentStageRole {
	case models.RoleDepartmentHead:
		return equalIDs(profile.DepartmentID, departmentID)
	case models.RoleMinistrySecretary:
		return equalIDs(profile.MinistryID, ministryID)
	}

	return true
}

func equalIDs(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// HasRole reports whether the profile holds one of the given roles
func HasRole(profile *models.UserProfile, roles ...models.UserRole) bool {
	if profile == nil {
		return false
	}
	for _, r := range roles {
		if profile.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the profile is a Finance Ministry Admin
func IsAdmin(profile *models.UserProfile) bool {
	return HasRole(profile, models.RoleFinanceMinistryAdmin)
}

// CanManageMinistry reports whether the profile may modify a ministry
func CanManageMinistry(profile *models.UserProfile, ministryID string) bool {
	if IsAdmin(profile) {
		return true
	}
	return HasRole(profile, models.RoleMinistrySecretary) &&
		profile.MinistryID != nil && *profile.MinistryID == ministryID
}

// CanManageDepartment reports whether the profile may modify a department
func CanManageDepartment(profile *models.UserProfile, departmentID, ministryID string) bool {
	if IsAdmin(profile) {
		return true
	}
	if HasRole(profile, models.RoleMinistrySecretary) &&
		profile.MinistryID != nil && *profile.MinistryID == ministryID {
		return true
	}
	return HasRole(profile, models.RoleDepartmentHead) &&
		profile.DepartmentID != nil && *profile.DepartmentID == departmentID
}

// CanCreateBudgetProposal reports whether the profile may author proposals
func CanCreateBudgetProposal(profile *models.UserProfile) bool {
	return HasRole(profile,
		models.RoleFinanceMinistryAdmin,
		models.RoleMinistrySecretary,
		models.RoleDepartmentHead,
		models.RoleSectionOfficer,
	)
}

// CanRecordExpenditure reports whether the profile may record expenditures
func CanRecordExpenditure(profile *models.UserProfile) bool {
	return HasRole(profile,
		models.RoleFinanceMinistryAdmin,
		models.RoleDepartmentHead,
		models.RoleSectionOfficer,
	)
}

// CanViewAllData reports whether the profile sees data across all ministries
func CanViewAllData(profile *models.UserProfile) bool {
	return HasRole(profile,
		models.RoleFinanceMinistryAdmin,
		models.RoleBudgetDivisionOfficer,
		models.RoleAuditor,
	)
}

// CanEditProposal reports whether the profile may edit a budget proposal.
// Only drafts and revision-requested proposals are editable; within those,
// authors may edit their own, admins may edit any, and secretaries and
// department heads are scoped to their ministry / department.
func CanEditProposal(profile *models.UserProfile, proposal *models.BudgetProposal) bool {
	if profile == nil || proposal == nil {
		return false
	}

	editable := proposal.Status == models.StatusDraft ||
		proposal.Status == models.StatusRevisionRequested
	if !editable {
		return false
	}

	if proposal.CreatedBy == profile.ID {
		return true
	}
	if IsAdmin(profile) {
		return true
	}
	if HasRole(profile, models.RoleMinistrySecretary) &&
		profile.MinistryID != nil && *profile.MinistryID == proposal.MinistryID {
		return true
	}
	return HasRole(profile, models.RoleDepartmentHead) &&
		profile.DepartmentID != nil && proposal.DepartmentID != nil &&
		*profile.DepartmentID == *proposal.DepartmentID
}
