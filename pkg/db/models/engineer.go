package models

// Engineer is the support engineer cases are attributed to. FullName is the
// reconciliation key during spreadsheet imports and deliberately carries no
// unique constraint: concurrent imports of the same name can create duplicates.
type Engineer struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName    string  `gorm:"column:full_name;size:100;not null" json:"fullName"`
	PhoneNumber *string `gorm:"column:phone_number;size:20" json:"phoneNumber,omitempty"`
	Email       *string `gorm:"size:50" json:"email,omitempty"`
	Gender      *string `gorm:"size:10" json:"gender,omitempty"`
	Manager     string  `gorm:"size:100;not null" json:"manager"`
	TeamID      *int64  `gorm:"column:team_id" json:"teamId,omitempty"`
	Team        *Team   `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}
