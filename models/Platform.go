package models

import "github.com/shopspring/decimal"

type Platform struct {
	PlatformID   uint   `json:"platform_id" gorm:"column:platform_id;primaryKey;autoIncrement"`
	PlatformName string `json:"platform_name" gorm:"column:platform_name;type:varchar(100);not null;uniqueIndex"`

	// Foreign keys are declared on the parent side so they point from the
	// child column to this table.
	Transactions []Transaction `json:"-" gorm:"foreignKey:PlatformID;references:PlatformID"`
}

func (Platform) TableName() string { return "platforms" }

// PlatformTotals is one row of the per-platform transaction report.
type PlatformTotals struct {
	PlatformID        uint            `json:"platform_id" gorm:"column:platform_id"`
	PlatformName      string          `json:"platform_name" gorm:"column:platform_name"`
	TotalTransactions int64           `json:"total_transactions" gorm:"column:total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount" gorm:"column:total_amount"`
}
