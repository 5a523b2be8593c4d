package models

import "time"

// Ministry is a top-level organizational unit
type Ministry struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	MinisterName  string    `json:"minister_name,omitempty"`
	SecretaryName string    `json:"secretary_name,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Department belongs to exactly one ministry
type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	MinistryID  string    `json:"ministry_id"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Scheme is a government program that proposals and expenditures are booked against
type Scheme struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Code         string     `json:"code"`
	MinistryID   string     `json:"ministry_id"`
	DepartmentID *string    `json:"department_id,omitempty"`
	SchemeType   SchemeType `json:"scheme_type"`
	Description  string     `json:"description,omitempty"`
	Objectives   string     `json:"objectives,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedBy    string     `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
