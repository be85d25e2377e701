package models

// Team groups engineers under an optional managing user.
type Team struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	UserID    *int64     `gorm:"column:user_id" json:"userId,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Engineers []Engineer `gorm:"foreignKey:TeamID" json:"engineers,omitempty"`
}
