package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventpay/internal/api/apierror"
	"eventpay/internal/domain/registrations"
	"eventpay/internal/payments"
)

type Handler struct {
	checkout    *payments.CheckoutService
	fulfillment *payments.FulfillmentService
}

func NewHandler(checkout *payments.CheckoutService, fulfillment *payments.FulfillmentService) *Handler {
	return &Handler{checkout: checkout, fulfillment: fulfillment}
}

type answerInput struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

type createSessionInput struct {
	FormID  string        `json:"form_id" binding:"required"`
	Answers []answerInput `json:"answers" binding:"required"`
}

// CreateSession handles POST /checkout/create.
func (h *Handler) CreateSession(c *gin.Context) {
	var body createSessionInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid form_id/answers"})
		return
	}

	formID, err := uuid.Parse(body.FormID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form_id"})
		return
	}

	answers := make(registrations.Answers, 0, len(body.Answers))
	for _, a := range body.Answers {
		answers = append(answers, registrations.Answer{Key: a.Key, Value: a.Value})
	}

	url, err := h.checkout.CreateSession(c.Request.Context(), formID, answers)
	if err != nil {
		apierror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

type verifyInput struct {
	SessionID string `json:"session_id" binding:"required"`
}

// VerifyPayment handles POST /payment/verify, the synchronous
// fulfillment path the client calls after the checkout redirect.
// Refreshing the return page re-invokes this; fulfillment collapses
// the duplicates.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var body verifyInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id"})
		return
	}

	reg, err := h.fulfillment.FulfillSession(c.Request.Context(), body.SessionID)
	if err != nil {
		apierror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registration_id": reg.ID,
		"status":          reg.Status,
		"payment_status":  reg.PaymentStatus,
	})
}
