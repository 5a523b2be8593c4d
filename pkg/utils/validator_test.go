package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFinancialYear(t *testing.T) {
	tests := []struct {
		fy      string
		wantErr bool
	}{
		{"2025-26", false},
		{"1999-00", false},
		{"2025-27", true},
		{"2025-2026", true},
		{"25-26", true},
		{"", true},
		{"2025/26", true},
	}

	for _, tt := range tests {
		t.Run(tt.fy, func(t *testing.T) {
			err := ValidateFinancialYear(tt.fy)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMonth(t *testing.T) {
	assert.NoError(t, ValidateMonth(1))
	assert.NoError(t, ValidateMonth(12))
	assert.Error(t, ValidateMonth(0))
	assert.Error(t, ValidateMonth(13))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(0.01))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-5))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("officer@finance.gov.in"))
	assert.Error(t, ValidateEmail("not-an-email"))
}
