package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventpay/internal/payments"
)

// Write maps a payments error kind to an HTTP response. Unclassified
// errors become opaque 500s so internals never leak to participants.
func Write(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	switch payments.KindOf(err) {
	case payments.KindNotPayable:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "not_payable"})
	case payments.KindMentorNotReady:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "mentor_not_ready"})
	case payments.KindNotProvisioned:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "not_provisioned"})
	case payments.KindPaymentNotConfirmed:
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error(), "kind": "payment_not_confirmed"})
	case payments.KindMalformedSession:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "malformed_session"})
	case payments.KindInvalidTransition:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "invalid_transition"})
	case payments.KindUpstream:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "kind": "upstream"})
	case payments.KindSignatureInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "signature_invalid"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
