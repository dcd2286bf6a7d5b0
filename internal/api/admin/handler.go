package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventpay/internal/api/apierror"
	"eventpay/internal/payments"
)

// Handler exposes the reconciliation view: manual ledger entries stay
// pending until an admin settles the owed commission out of band, and
// this listing is where that happens.
type Handler struct {
	store payments.Store
}

func NewHandler(store payments.Store) *Handler {
	return &Handler{store: store}
}

// ListLedger handles GET /admin/ledger with optional ?status= and
// ?method= filters.
func (h *Handler) ListLedger(c *gin.Context) {
	entries, err := h.store.LedgerEntries(c.Request.Context(), c.Query("status"), c.Query("method"))
	if err != nil {
		apierror.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
