package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	TransactionID   uint            `json:"transaction_id" gorm:"column:transaction_id;primaryKey;autoIncrement"`
	TransactionCode string          `json:"transaction_code" gorm:"column:transaction_code;type:varchar(50);not null;index"`
	PlatformID      uint            `json:"platform_id" gorm:"column:platform_id;not null;index"`
	InvoiceID       uint            `json:"invoice_id" gorm:"column:invoice_id;not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(15,2);not null"`
	TransactionDate time.Time       `json:"transaction_date" gorm:"column:transaction_date;type:datetime"`
	Status          string          `json:"status" gorm:"column:status;type:varchar(20);not null"`
}

func (Transaction) TableName() string { return "transactions" }
