package controllers

import (
	"net/http"
	"strconv"

	"billing-admin/internal/config"
	"billing-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const invoiceSelect = `SELECT i.invoice_id, i.invoice_number, i.client_id, i.billing_period,
       i.billed_amount, i.paid_amount, i.status, c.full_name, c.document_number
FROM invoices i
LEFT JOIN clients c ON i.client_id = c.client_id`

var validate = validator.New()

type InvoiceController struct {
	Store Store
	Log   logrus.FieldLogger
}

func (c InvoiceController) fail(ctx *gin.Context, funcName string, data any, err error, msg string) {
	config.LogError(c.Log, "controllers/invoices", funcName, msg, data, err)
	ctx.String(http.StatusInternalServerError, msg)
}

// invoiceID parses the :id path parameter. It writes the 400 response
// itself and reports false when the id is unusable.
func invoiceID(ctx *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.String(http.StatusBadRequest, "Invalid invoice id")
		return 0, false
	}
	return id, true
}

// bindInvoice decodes and validates the request body. Decoder and
// validator detail goes to the log only.
func (c InvoiceController) bindInvoice(ctx *gin.Context, funcName string) (models.InvoicePayload, bool) {
	var p models.InvoicePayload
	err := ctx.ShouldBindJSON(&p)
	if err == nil {
		err = validate.Struct(p)
	}
	if err != nil {
		config.LogError(c.Log, "controllers/invoices", funcName, "Invalid invoice payload", nil, err)
		ctx.String(http.StatusBadRequest, "Invalid invoice payload")
		return p, false
	}
	if p.Status == "" {
		p.Status = models.StatusPending
	}
	return p, true
}

func (c InvoiceController) List(ctx *gin.Context) {
	list := make([]models.InvoiceView, 0)
	if err := c.Store.Select(ctx.Request.Context(), &list, invoiceSelect+` ORDER BY i.invoice_id DESC`); err != nil {
		c.fail(ctx, "List", nil, err, "Error fetching invoices")
		return
	}
	ctx.JSON(http.StatusOK, list)
}

func (c InvoiceController) GetByID(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	var list []models.InvoiceView
	if err := c.Store.Select(ctx.Request.Context(), &list, invoiceSelect+` WHERE i.invoice_id = ?`, id); err != nil {
		c.fail(ctx, "GetByID", id, err, "Error fetching invoice")
		return
	}
	if len(list) == 0 {
		ctx.String(http.StatusNotFound, "Invoice not found")
		return
	}
	ctx.JSON(http.StatusOK, list[0])
}

func (c InvoiceController) Create(ctx *gin.Context) {
	p, ok := c.bindInvoice(ctx, "Create")
	if !ok {
		return
	}
	res, err := c.Store.Exec(ctx.Request.Context(),
		`INSERT INTO invoices (invoice_number, client_id, billing_period, billed_amount, paid_amount, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.InvoiceNumber, p.ClientID, p.BillingPeriod, p.BilledAmount, p.PaidAmount, p.Status)
	if err != nil {
		c.fail(ctx, "Create", p, err, "Error creating invoice")
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"invoice_id": res.LastInsertID})
}

func (c InvoiceController) Update(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	p, ok := c.bindInvoice(ctx, "Update")
	if !ok {
		return
	}
	res, err := c.Store.Exec(ctx.Request.Context(),
		`UPDATE invoices
		 SET invoice_number = ?, client_id = ?, billing_period = ?, billed_amount = ?, paid_amount = ?, status = ?
		 WHERE invoice_id = ?`,
		p.InvoiceNumber, p.ClientID, p.BillingPeriod, p.BilledAmount, p.PaidAmount, p.Status, id)
	if err != nil {
		c.fail(ctx, "Update", p, err, "Error updating invoice")
		return
	}
	if res.RowsAffected == 0 {
		ctx.String(http.StatusNotFound, "Invoice not found")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Invoice updated"})
}

func (c InvoiceController) Delete(ctx *gin.Context) {
	id, ok := invoiceID(ctx)
	if !ok {
		return
	}
	res, err := c.Store.Exec(ctx.Request.Context(), `DELETE FROM invoices WHERE invoice_id = ?`, id)
	if err != nil {
		c.fail(ctx, "Delete", id, err, "Error deleting invoice")
		return
	}
	if res.RowsAffected == 0 {
		ctx.String(http.StatusNotFound, "Invoice not found")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

// Pending lists invoices still awaiting payment, fully or partially.
func (c InvoiceController) Pending(ctx *gin.Context) {
	list := make([]models.InvoiceView, 0)
	err := c.Store.Select(ctx.Request.Context(), &list,
		invoiceSelect+` WHERE i.status IN (?, ?) ORDER BY i.invoice_id DESC`,
		models.StatusPending, models.StatusPartial)
	if err != nil {
		c.fail(ctx, "Pending", nil, err, "Error fetching pending invoices")
		return
	}
	ctx.JSON(http.StatusOK, list)
}
