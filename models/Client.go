package models

import "github.com/shopspring/decimal"

type Client struct {
	ClientID       uint   `json:"client_id" gorm:"column:client_id;primaryKey;autoIncrement"`
	FullName       string `json:"full_name" gorm:"column:full_name;type:varchar(150);not null"`
	DocumentType   string `json:"document_type" gorm:"column:document_type;type:varchar(20)"`
	DocumentNumber string `json:"document_number" gorm:"column:document_number;type:varchar(50);not null;uniqueIndex"`
	Address        string `json:"address" gorm:"column:address;type:varchar(255)"`
	Phone          string `json:"phone" gorm:"column:phone;type:varchar(50)"`
	Email          string `json:"email" gorm:"column:email;type:varchar(150)"`

	Invoices []Invoice `json:"-" gorm:"foreignKey:ClientID;references:ClientID"`
}

func (Client) TableName() string { return "clients" }

// ClientTotalPaid is one row of the total-paid-per-client report.
type ClientTotalPaid struct {
	ClientID  uint            `json:"client_id" gorm:"column:client_id"`
	FullName  string          `json:"full_name" gorm:"column:full_name"`
	TotalPaid decimal.Decimal `json:"total_paid" gorm:"column:total_paid"`
}
