package models

import "time"

// Grades lists the common kit grade labels offered by forms. Grade is free
// text on a Build; this list is never enforced.
var Grades = []string{
	"Entry Grade",
	"High Grade",
	"Real Grade",
	"Master Grade",
	"Perfect Grade",
	"SD",
}

// Build is one tracked kit and its progress through the stages.
type Build struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	KitName   string    `json:"kitName" gorm:"not null"`
	Grade     string    `json:"grade" gorm:"size:64"`
	Scale     string    `json:"scale" gorm:"size:32;not null"`
	Status    string    `json:"status" gorm:"size:32;index"`
	Started   *string   `json:"started" gorm:"size:32"`
	Target    *string   `json:"target" gorm:"size:32"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// Touched returns when the build was last modified, falling back to its
// creation time for records that never carried an update stamp.
func (b Build) Touched() time.Time {
	if b.UpdatedAt.IsZero() {
		return b.CreatedAt
	}
	return b.UpdatedAt
}
