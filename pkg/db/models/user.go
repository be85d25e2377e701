package models

import "time"

// User represents the canonical identity entity.
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"size:20;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"size:50;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password;not null" json:"-"`
	FirstName    *string    `gorm:"column:first_name;size:50" json:"firstName,omitempty"`
	LastName     *string    `gorm:"column:last_name;size:50" json:"lastName,omitempty"`
	Roles        []Role     `gorm:"many2many:user_roles;joinForeignKey:user_id;joinReferences:role_id" json:"roles,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// RoleNames flattens the loaded role associations for membership checks.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
