package v1

import (
	"net/http"

	"github.com/facturo/facturo/internal/api/dto"
	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/facturo/facturo/internal/logger"
	"github.com/facturo/facturo/internal/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice validates the submitted form and creates a draft invoice
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request payload").Mark(ierr.ErrValidation))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoice returns a single invoice by id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// ListInvoices returns all invoices in insertion order
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// UpdateInvoice applies an edited form to an existing invoice
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request payload").Mark(ierr.ErrValidation))
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Errorw("failed to update invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice removes an invoice
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendInvoice stamps an invoice as sent
func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	resp, err := h.invoiceService.SendInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Errorw("failed to send invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateInvoiceStatus applies a caller-driven status transition
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request payload").Mark(ierr.ErrValidation))
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DownloadInvoice acknowledges a download request
func (h *InvoiceHandler) DownloadInvoice(c *gin.Context) {
	resp, err := h.invoiceService.DownloadInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
