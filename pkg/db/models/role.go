package models

// Role is a flat authority grant. Names come from enums.RoleName; there is no
// hierarchy between them.
type Role struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:20;not null;uniqueIndex" json:"name"`
}
