package domain

import (
	"fmt"
	"time"
)

// ProjectStatus is a closed enumeration mirroring Role/Status handling.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "ACTIVE"
	ProjectArchived ProjectStatus = "ARCHIVED"
)

// ParseProjectStatus validates a raw project status string.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case ProjectActive, ProjectArchived:
		return ProjectStatus(s), nil
	default:
		return "", fmt.Errorf("unknown project status %q", s)
	}
}

type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	Deleted     bool // soft delete; deleted projects are never listed
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
