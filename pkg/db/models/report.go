package models

// Report aggregates cases generated for a single engineer.
type Report struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Chat         *string `gorm:"size:100" json:"chat,omitempty"`
	Total        *int    `json:"total,omitempty"`
	EngineerName string  `gorm:"column:engineer_name;size:100" json:"engineerName"`
	Cases        []Case  `gorm:"foreignKey:ReportID" json:"cases,omitempty"`
}
