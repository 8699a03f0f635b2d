package controllers

import (
	"net/http"

	"billing-admin/internal/config"
	"billing-admin/internal/reports"
	"billing-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type ReportsController struct {
	Store Store
	Log   logrus.FieldLogger
}

func (c ReportsController) fail(ctx *gin.Context, funcName string, err error, msg string) {
	config.LogError(c.Log, "controllers/reports", funcName, msg, nil, err)
	ctx.String(http.StatusInternalServerError, msg)
}

func wantsXLSX(ctx *gin.Context) bool {
	return ctx.Query("format") == "xlsx"
}

func (c ReportsController) sendWorkbook(ctx *gin.Context, funcName, filename string, f *excelize.File) {
	defer f.Close()
	ctx.Header("Content-Type", reports.ContentTypeXLSX)
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Status(http.StatusOK)
	if err := f.Write(ctx.Writer); err != nil {
		config.LogError(c.Log, "controllers/reports", funcName, "write workbook", filename, err)
	}
}

// ClientTotalPaid sums paid_amount per client, highest first. Clients
// without invoices report zero.
func (c ReportsController) ClientTotalPaid(ctx *gin.Context) {
	list := make([]models.ClientTotalPaid, 0)
	err := c.Store.Select(ctx.Request.Context(), &list, `
		SELECT c.client_id, c.full_name, COALESCE(SUM(i.paid_amount), 0) AS total_paid
		FROM clients c
		LEFT JOIN invoices i ON c.client_id = i.client_id
		GROUP BY c.client_id, c.full_name
		ORDER BY total_paid DESC`)
	if err != nil {
		c.fail(ctx, "ClientTotalPaid", err, "Error fetching totals")
		return
	}
	if !wantsXLSX(ctx) {
		ctx.JSON(http.StatusOK, list)
		return
	}
	f, err := reports.ClientTotalsWorkbook(list)
	if err != nil {
		c.fail(ctx, "ClientTotalPaid", err, "Error exporting totals")
		return
	}
	c.sendWorkbook(ctx, "ClientTotalPaid", "clients-total-paid.xlsx", f)
}

// PlatformTransactions counts and sums transactions per platform.
func (c ReportsController) PlatformTransactions(ctx *gin.Context) {
	list := make([]models.PlatformTotals, 0)
	err := c.Store.Select(ctx.Request.Context(), &list, `
		SELECT p.platform_id, p.platform_name,
		       COUNT(t.transaction_id) AS total_transactions,
		       COALESCE(SUM(t.amount), 0) AS total_amount
		FROM platforms p
		LEFT JOIN transactions t ON p.platform_id = t.platform_id
		GROUP BY p.platform_id, p.platform_name
		ORDER BY total_transactions DESC`)
	if err != nil {
		c.fail(ctx, "PlatformTransactions", err, "Error fetching transactions by platform")
		return
	}
	if !wantsXLSX(ctx) {
		ctx.JSON(http.StatusOK, list)
		return
	}
	f, err := reports.PlatformTotalsWorkbook(list)
	if err != nil {
		c.fail(ctx, "PlatformTransactions", err, "Error exporting transactions by platform")
		return
	}
	c.sendWorkbook(ctx, "PlatformTransactions", "platforms-transactions.xlsx", f)
}
