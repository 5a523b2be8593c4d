package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govbudget/budget-portal/internal/models"
)

func strPtr(s string) *string { return &s }

func profile(role models.UserRole, ministryID, departmentID *string) *models.UserProfile {
	return &models.UserProfile{
		ID:           "u1",
		Role:         role,
		MinistryID:   ministryID,
		DepartmentID: departmentID,
	}
}

func TestCanApproveStage(t *testing.T) {
	ministry := strPtr("min-1")
	otherMinistry := strPtr("min-2")
	department := strPtr("dept-1")
	otherDepartment := strPtr("dept-2")

	tests := []struct {
		name      string
		profile   *models.UserProfile
		stageRole models.UserRole
		ministry  *string
		dept      *string
		want      bool
	}{
		{
			name:      "admin bypasses role and scope",
			profile:   profile(models.RoleFinanceMinistryAdmin, nil, nil),
			stageRole: models.RoleDepartmentHead,
			ministry:  ministry,
			dept:      department,
			want:      true,
		},
		{
			name:      "role mismatch",
			profile:   profile(models.RoleDepartmentHead, ministry, department),
			stageRole: models.RoleMinistrySecretary,
			ministry:  ministry,
			dept:      department,
			want:      false,
		},
		{
			name:      "department head in own department",
			profile:   profile(models.RoleDepartmentHead, ministry, department),
			stageRole: models.RoleDepartmentHead,
			ministry:  ministry,
			dept:      department,
			want:      true,
		},
		{
			name:      "department head in another department",
			profile:   profile(models.RoleDepartmentHead, ministry, otherDepartment),
			stageRole: models.RoleDepartmentHead,
			ministry:  ministry,
			dept:      department,
			want:      false,
		},
		{
			name:      "ministry secretary in own ministry",
			profile:   profile(models.RoleMinistrySecretary, ministry, nil),
			stageRole: models.RoleMinistrySecretary,
			ministry:  ministry,
			dept:      department,
			want:      true,
		},
		{
			name:      "ministry secretary in another ministry",
			profile:   profile(models.RoleMinistrySecretary, otherMinistry, nil),
			stageRole: models.RoleMinistrySecretary,
			ministry:  ministry,
			dept:      department,
			want:      false,
		},
		{
			name:      "ministry secretary without assignment",
			profile:   profile(models.RoleMinistrySecretary, nil, nil),
			stageRole: models.RoleMinistrySecretary,
			ministry:  ministry,
			dept:      department,
			want:      false,
		},
		{
			name:      "entity without department skips department scoping",
			profile:   profile(models.RoleDepartmentHead, ministry, department),
			stageRole: models.RoleDepartmentHead,
			ministry:  ministry,
			dept:      nil,
			want:      true,
		},
		{
			name:      "nil profile",
			profile:   nil,
			stageRole: models.RoleDepartmentHead,
			ministry:  ministry,
			dept:      department,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanApproveStage(tt.profile, tt.stageRole, tt.ministry, tt.dept)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanEditProposal(t *testing.T) {
	ministry := strPtr("min-1")
	department := strPtr("dept-1")
	owner := profile(models.RoleDepartmentHead, ministry, department)
	owner.ID = "owner"

	proposal := &models.BudgetProposal{
		ID:           "BP-1",
		MinistryID:   *ministry,
		DepartmentID: department,
		CreatedBy:    "owner",
		Status:       models.StatusDraft,
	}

	t.Run("creator edits draft", func(t *testing.T) {
		assert.True(t, CanEditProposal(owner, proposal))
	})

	t.Run("creator edits revision requested", func(t *testing.T) {
		p := *proposal
		p.Status = models.StatusRevisionRequested
		assert.True(t, CanEditProposal(owner, &p))
	})

	t.Run("no edits once submitted", func(t *testing.T) {
		p := *proposal
		p.Status = models.StatusSubmitted
		assert.False(t, CanEditProposal(owner, &p))
	})

	t.Run("department head edits drafts of own department", func(t *testing.T) {
		other := profile(models.RoleDepartmentHead, ministry, department)
		other.ID = "someone-else"
		assert.True(t, CanEditProposal(other, proposal))
	})

	t.Run("department head from another department cannot edit", func(t *testing.T) {
		other := profile(models.RoleDepartmentHead, ministry, strPtr("dept-9"))
		other.ID = "someone-else"
		assert.False(t, CanEditProposal(other, proposal))
	})

	t.Run("admin edits any draft", func(t *testing.T) {
		admin := profile(models.RoleFinanceMinistryAdmin, nil, nil)
		assert.True(t, CanEditProposal(admin, proposal))
	})
}

func TestRolePredicates(t *testing.T) {
	admin := profile(models.RoleFinanceMinistryAdmin, nil, nil)
	secretary := profile(models.RoleMinistrySecretary, strPtr("min-1"), nil)
	auditor := profile(models.RoleAuditor, nil, nil)

	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(secretary))

	assert.True(t, CanManageMinistry(admin, "min-2"))
	assert.True(t, CanManageMinistry(secretary, "min-1"))
	assert.False(t, CanManageMinistry(secretary, "min-2"))

	assert.True(t, CanViewAllData(admin))
	assert.True(t, CanViewAllData(auditor))
	assert.False(t, CanViewAllData(secretary))
}
