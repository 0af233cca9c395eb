package models

import "time"

// User roles. STUDENT accounts must carry a department and a student ID;
// ADMIN accounts do not use either field.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// User represents a registered user
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"password,omitempty"` // bcrypt hash; stripped from every response
	Role       string    `json:"role" gorm:"type:varchar(16);default:'STUDENT';not null"`
	Department string    `json:"department,omitempty"`
	StudentID  *string   `json:"student_id,omitempty" gorm:"uniqueIndex"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PublicUser is the user projection safe to send over the wire.
type PublicUser struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	StudentID  string    `json:"student_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Public strips the password hash before transmission.
func (u *User) Public() PublicUser {
	p := PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
	if u.StudentID != nil {
		p.StudentID = *u.StudentID
	}
	return p
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
