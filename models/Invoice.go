package models

import (
	"github.com/shopspring/decimal"
)

type Invoice struct {
	InvoiceID     uint            `json:"invoice_id" gorm:"column:invoice_id;primaryKey;autoIncrement"`
	InvoiceNumber string          `json:"invoice_number" gorm:"column:invoice_number;type:varchar(50);not null;index"`
	ClientID      uint            `json:"client_id" gorm:"column:client_id;not null;index"`
	BillingPeriod string          `json:"billing_period" gorm:"column:billing_period;type:varchar(20)"`
	BilledAmount  decimal.Decimal `json:"billed_amount" gorm:"column:billed_amount;type:decimal(15,2);not null;default:0"`
	PaidAmount    decimal.Decimal `json:"paid_amount" gorm:"column:paid_amount;type:decimal(15,2);not null;default:0"`
	Status        string          `json:"status" gorm:"column:status;type:varchar(20);not null;default:'Pending';index"`

	Transactions []Transaction `json:"-" gorm:"foreignKey:InvoiceID;references:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoicePayload is the request body accepted by invoice create and update.
type InvoicePayload struct {
	InvoiceNumber string          `json:"invoice_number" validate:"required,max=50"`
	ClientID      uint            `json:"client_id" validate:"required"`
	BillingPeriod string          `json:"billing_period" validate:"max=20"`
	BilledAmount  decimal.Decimal `json:"billed_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        string          `json:"status" validate:"max=20"`
}

// InvoiceView is an invoice joined with its client's name and document.
// Client columns are nullable because the join is a LEFT JOIN.
type InvoiceView struct {
	InvoiceID      uint            `json:"invoice_id" gorm:"column:invoice_id"`
	InvoiceNumber  string          `json:"invoice_number" gorm:"column:invoice_number"`
	ClientID       uint            `json:"client_id" gorm:"column:client_id"`
	BillingPeriod  string          `json:"billing_period" gorm:"column:billing_period"`
	BilledAmount   decimal.Decimal `json:"billed_amount" gorm:"column:billed_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount" gorm:"column:paid_amount"`
	Status         string          `json:"status" gorm:"column:status"`
	FullName       *string         `json:"full_name" gorm:"column:full_name"`
	DocumentNumber *string         `json:"document_number" gorm:"column:document_number"`
}
