package models

import "time"

// Department tags an event can apply to. "ALL" marks a faculty-wide event.
var DepartmentTags = []string{"CS", "SE", "IS", "ALL"}

// ValidDepartmentTag reports whether tag is one of the known department tags.
func ValidDepartmentTag(tag string) bool {
	for _, t := range DepartmentTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Event is a scheduled departmental activity, created and managed by admins.
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null"`
	EventTime   string    `json:"event_time,omitempty"` // "HH:MM", optional
	Location    string    `json:"location"`
	Departments []string  `json:"departments" gorm:"serializer:json"`

	RegistrationRequired bool   `json:"registration_required"`
	RegistrationLink     string `json:"registration_link,omitempty"`

	Color string `json:"color,omitempty"`
	Image string `json:"image,omitempty"`

	CreatedBy uint `json:"created_by" gorm:"not null"`
	Creator   User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
