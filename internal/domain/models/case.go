package models

import (
	"fmt"
	"time"
)

// Case is an incident/work-order record. Rows in StateDraft are never listed.
type Case struct {
	ID             int64
	Number         string
	TypeID         int64
	TypeName       string
	RegionID       int64
	RegionName     string
	Title          string
	Content        string
	Location       string
	State          string
	DisapproveInfo string
	Mobile         string
	Arranges       []Arrange
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Arrange is a work entry owned by exactly one Case.
type Arrange struct {
	ID          int64
	CaseID      int64
	Title       string
	Content     string
	ArrangeTime *time.Time
	CreatedAt   time.Time
}

// CaseType classifies a Case.
type CaseType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Region is a display lookup for where a Case happened.
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CaseNumber formats the human-readable number assigned on create.
func CaseNumber(createdAt time.Time, id int64) string {
	return fmt.Sprintf("%s%05d", createdAt.Format("20060102"), id)
}
