package handlers

import (
	"net/http"

	"facestudio/middleware"
	"facestudio/models"
	"facestudio/services/inquiry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InquiryHandler serves the public contact and gift voucher forms and their admin listings.
type InquiryHandler struct {
	Service inquiry.InquiryService
}

func NewInquiryHandler(svc inquiry.InquiryService) *InquiryHandler {
	return &InquiryHandler{Service: svc}
}

func (h *InquiryHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	sub, err := h.Service.SubmitContact(c.Request.Context(), req)
	if err != nil {
		respondError(c, "SubmitContact", err)
		return
	}
	getLogger(c).Info("Contact form received", zap.Int64("contact_id", sub.ID))
	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "message": "Thank you, we will get back to you soon."})
}

func (h *InquiryHandler) OrderVoucher(c *gin.Context) {
	var req models.GiftVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	v, err := h.Service.OrderVoucher(c.Request.Context(), middleware.Language(c), req)
	if err != nil {
		respondError(c, "OrderVoucher", err)
		return
	}
	getLogger(c).Info("Gift voucher ordered", zap.Int64("voucher_id", v.ID), zap.Bool("sent", v.IsSent))
	c.JSON(http.StatusCreated, v)
}

// Admin.

func (h *InquiryHandler) ListContacts(c *gin.Context) {
	list, err := h.Service.ListContacts(c.Request.Context(), c.Query("unread") == "true")
	if err != nil {
		respondError(c, "ListContacts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": nonNil(list)})
}

func (h *InquiryHandler) MarkContactRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.MarkContactRead(c.Request.Context(), id); err != nil {
		respondError(c, "MarkContactRead", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InquiryHandler) ListVouchers(c *gin.Context) {
	list, err := h.Service.ListVouchers(c.Request.Context())
	if err != nil {
		respondError(c, "ListVouchers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": nonNil(list)})
}

func (h *InquiryHandler) ListEmails(c *gin.Context) {
	list, err := h.Service.ListEmails(c.Request.Context())
	if err != nil {
		respondError(c, "ListEmails", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emails": nonNil(list)})
}
