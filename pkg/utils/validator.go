package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

var financialYearRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ValidateFinancialYear validates an Indian financial year string such as
// "2025-26": the second part must be the year after the first, modulo 100.
func ValidateFinancialYear(fy string) error {
	m := financialYearRegex.FindStringSubmatch(fy)
	if m == nil {
		return fmt.Errorf("financial year must be in YYYY-YY format: %s", fy)
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return fmt.Errorf("financial year end must follow start: %s", fy)
	}

	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateAmount validates a monetary amount
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %.2f", amount)
	}
	return nil
}

// ValidateMonth validates a calendar month number
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12: %d", month)
	}
	return nil
}

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
}
