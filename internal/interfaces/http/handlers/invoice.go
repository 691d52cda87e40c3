// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
	config       *config.Config
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(db *gorm.DB, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: order.NewService(db, cfg, cart.NewService(db, cfg)),
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// loadOwnedOrder fetches the order and enforces owner-or-admin access
func (h *InvoiceHandler) loadOwnedOrder(c *gin.Context) (*order.Order, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return nil, false
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return nil, false
	}

	o, err := h.orderService.GetOrder(uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return nil, false
	}

	if o.UserID != userID && !middleware.IsAdminFromContext(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return nil, false
	}

	return o, true
}

// GenerateInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	o, ok := h.loadOwnedOrder(c)
	if !ok {
		return
	}

	if !o.IsPaid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invoice is only available for paid orders",
		})
		return
	}

	pdfBuffer, err := h.pdfService.GenerateInvoice(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", o.OrderNumber))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}

// GetInvoiceData handles GET /orders/:id/invoice/data for frontend preview
func (h *InvoiceHandler) GetInvoiceData(c *gin.Context) {
	o, ok := h.loadOwnedOrder(c)
	if !ok {
		return
	}

	invoiceData := gin.H{
		"invoice_number": fmt.Sprintf("INV-%s", o.OrderNumber),
		"invoice_date":   time.Now().Format("January 2, 2006"),
		"due_date":       time.Now().AddDate(0, 0, 30).Format("January 2, 2006"),
		"order":          o,
		"company": gin.H{
			"name":    h.config.Company.Name,
			"address": h.config.Company.Address,
			"phone":   h.config.Company.Phone,
			"email":   h.config.Company.Email,
			"website": h.config.Company.Website,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice data retrieved successfully",
		"data":    invoiceData,
	})
}
