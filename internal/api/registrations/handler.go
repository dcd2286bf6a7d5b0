package registrations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventpay/internal/api/apierror"
	"eventpay/internal/api/authctx"
	domain "eventpay/internal/domain/registrations"
	"eventpay/internal/payments"
)

type Handler struct {
	approval *payments.ApprovalService
	store    payments.Store
}

func NewHandler(approval *payments.ApprovalService, store payments.Store) *Handler {
	return &Handler{approval: approval, store: store}
}

type submitInput struct {
	Answers []struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value"`
	} `json:"answers" binding:"required"`
	PaymentProofURL *string `json:"payment_proof_url"`
}

// Submit handles POST /forms/:id/registrations: the immediate-creation
// path for free and manual-pay forms. Processor-backed forms are
// rejected here and must go through /checkout/create.
func (h *Handler) Submit(c *gin.Context) {
	formID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form id"})
		return
	}

	var body submitInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid answers"})
		return
	}

	answers := make(domain.Answers, 0, len(body.Answers))
	for _, a := range body.Answers {
		answers = append(answers, domain.Answer{Key: a.Key, Value: a.Value})
	}

	reg, err := h.approval.Submit(c.Request.Context(), formID, answers, body.PaymentProofURL)
	if err != nil {
		apierror.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, reg)
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /registrations/:id/status. Approving a
// manual-pay registration creates its ledger entry; approving it again
// is a no-op by design.
func (h *Handler) UpdateStatus(c *gin.Context) {
	regID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration id"})
		return
	}

	var body statusInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing status"})
		return
	}

	if !h.authorize(c, regID) {
		return
	}

	var reg *domain.Registration
	switch body.Status {
	case domain.StatusApproved:
		reg, err = h.approval.Approve(c.Request.Context(), regID)
	case domain.StatusRejected:
		reg, err = h.approval.Reject(c.Request.Context(), regID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return
	}
	if err != nil {
		apierror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, reg)
}

// authorize checks the caller owns the form behind the registration,
// or is an admin.
func (h *Handler) authorize(c *gin.Context, regID uuid.UUID) bool {
	if authctx.IsAdmin(c) {
		return true
	}

	mentorID, ok := authctx.MentorID(c)
	if !ok {
		return false
	}

	reg, err := h.store.RegistrationByID(c.Request.Context(), regID)
	if err != nil {
		apierror.Write(c, err)
		return false
	}
	form, err := h.store.FormByID(c.Request.Context(), reg.FormID)
	if err != nil {
		apierror.Write(c, err)
		return false
	}
	if form.MentorID != mentorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return false
	}
	return true
}
