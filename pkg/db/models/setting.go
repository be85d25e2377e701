package models

// Setting holds bonus calculation coefficients. A row without a user is a
// global setting; the first row wins when several exist.
type Setting struct {
	ID              int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey      string  `gorm:"column:setting_key;size:100;not null" json:"settingKey"`
	CaseCoefficient float64 `gorm:"column:case_coefficient;not null" json:"caseCoefficient"`
	ChatCoefficient float64 `gorm:"column:chat_coefficient;not null" json:"chatCoefficient"`
	UserID          *int64  `gorm:"column:user_id" json:"userId,omitempty"`
	User            *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
