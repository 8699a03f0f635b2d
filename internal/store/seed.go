package store

import (
	"context"
	"time"

	"billing-admin/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed fills an empty database with a small demo data set. It does nothing
// when any invoice already exists; platforms and clients already present
// are reused.
func (s *Store) Seed(ctx context.Context) error {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		s.log.WithField("invoices", cnt).Info("seed skipped, data present")
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := []string{"Nequi", "Daviplata"}
		seedPlatforms := make([]models.Platform, len(names))
		for i, n := range names {
			seedPlatforms[i].PlatformName = n
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seedPlatforms).Error; err != nil {
			return err
		}
		// Conflicting rows come back without an id, so read them back.
		var platforms []models.Platform
		if err := tx.Where("platform_name IN ?", names).Order("platform_id").Find(&platforms).Error; err != nil {
			return err
		}

		seedClients := []models.Client{
			{FullName: "Ana Ruiz", DocumentType: "CC", DocumentNumber: "1001", Address: "Calle 10 # 5-20", Phone: "3001112233", Email: "ana.ruiz@example.com"},
			{FullName: "Carlos Peña", DocumentType: "NIT", DocumentNumber: "900123", Address: "Carrera 7 # 80-15", Phone: "3104445566", Email: "carlos@example.com"},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seedClients).Error; err != nil {
			return err
		}
		// A partial load may already hold these documents.
		var found []models.Client
		if err := tx.Where("document_number IN ?", []string{"1001", "900123"}).Find(&found).Error; err != nil {
			return err
		}
		clientIDs := make(map[string]uint, len(found))
		for _, c := range found {
			clientIDs[c.DocumentNumber] = c.ClientID
		}

		invoices := []models.Invoice{
			{InvoiceNumber: "FAC-0001", ClientID: clientIDs["1001"], BillingPeriod: "2024-06",
				BilledAmount: decimal.NewFromInt(150000), PaidAmount: decimal.NewFromInt(150000), Status: models.StatusCompleted},
			{InvoiceNumber: "FAC-0002", ClientID: clientIDs["1001"], BillingPeriod: "2024-07",
				BilledAmount: decimal.NewFromInt(150000), PaidAmount: decimal.NewFromInt(50000), Status: models.StatusPartial},
			{InvoiceNumber: "FAC-0003", ClientID: clientIDs["900123"], BillingPeriod: "2024-07",
				BilledAmount: decimal.NewFromInt(320000), Status: models.StatusPending},
		}
		if err := tx.Create(&invoices).Error; err != nil {
			return err
		}

		day := time.Date(2024, time.June, 5, 10, 30, 0, 0, time.UTC)
		txs := []models.Transaction{
			{TransactionCode: "TXN-0001", PlatformID: platforms[0].PlatformID, InvoiceID: invoices[0].InvoiceID,
				Amount: decimal.NewFromInt(150000), TransactionDate: day, Status: models.StatusCompleted},
			{TransactionCode: "TXN-0002", PlatformID: platforms[1].PlatformID, InvoiceID: invoices[1].InvoiceID,
				Amount: decimal.NewFromInt(50000), TransactionDate: day.AddDate(0, 1, 0), Status: models.StatusCompleted},
			{TransactionCode: "TXN-0003", PlatformID: platforms[1].PlatformID, InvoiceID: invoices[2].InvoiceID,
				Amount: decimal.NewFromInt(320000), TransactionDate: day.AddDate(0, 1, 2), Status: models.StatusFailed},
		}
		if err := tx.Create(&txs).Error; err != nil {
			return err
		}
		s.log.WithField("invoices", len(invoices)).Info("seeded demo data")
		return nil
	})
}
