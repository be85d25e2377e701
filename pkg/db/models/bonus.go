package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bonus is a computed payout for an engineer over a period.
type Bonus struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CalculationDate time.Time       `gorm:"column:calculation_date;type:date;not null" json:"calculationDate"`
	StartPeriod     time.Time       `gorm:"column:start_period;type:date;not null" json:"startPeriod"`
	EndPeriod       time.Time       `gorm:"column:end_period;type:date;not null" json:"endPeriod"`
	EngineerID      int64           `gorm:"column:engineer_id;not null" json:"engineerId"`
	Engineer        *Engineer       `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
}
