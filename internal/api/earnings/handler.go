package earnings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventpay/internal/api/apierror"
	"eventpay/internal/api/authctx"
	"eventpay/internal/payments"
)

type Handler struct {
	earnings *payments.EarningsService
}

func NewHandler(earnings *payments.EarningsService) *Handler {
	return &Handler{earnings: earnings}
}

// Totals handles GET /earnings.
func (h *Handler) Totals(c *gin.Context) {
	mentorID, ok := authctx.MentorID(c)
	if !ok {
		return
	}

	totals, err := h.earnings.Totals(c.Request.Context(), mentorID)
	if err != nil {
		apierror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}
