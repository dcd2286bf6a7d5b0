package connect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventpay/internal/api/apierror"
	"eventpay/internal/api/authctx"
	"eventpay/internal/payments"
)

type Handler struct {
	connect *payments.ConnectService
	appURL  string
}

func NewHandler(connect *payments.ConnectService, appURL string) *Handler {
	return &Handler{connect: connect, appURL: appURL}
}

// StartOnboarding handles POST /connect/onboarding: provisions the
// connected account if needed and returns a fresh onboarding URL.
// Calling it again is safe; the existing account is reused.
func (h *Handler) StartOnboarding(c *gin.Context) {
	mentorID, ok := authctx.MentorID(c)
	if !ok {
		return
	}

	if _, err := h.connect.CreateAccount(c.Request.Context(), mentorID); err != nil {
		apierror.Write(c, err)
		return
	}

	url, err := h.connect.OnboardingLink(c.Request.Context(), mentorID,
		h.appURL+"/connect/refresh", h.appURL+"/connect/return")
	if err != nil {
		apierror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Status handles GET /connect/status: polls the processor and returns
// the authoritative readiness flags.
func (h *Handler) Status(c *gin.Context) {
	mentorID, ok := authctx.MentorID(c)
	if !ok {
		return
	}

	status, err := h.connect.SyncStatus(c.Request.Context(), mentorID)
	if err != nil {
		apierror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_id":          status.AccountID,
		"details_submitted":   status.DetailsSubmitted,
		"charges_enabled":     status.ChargesEnabled,
		"onboarding_complete": status.Ready(),
	})
}
