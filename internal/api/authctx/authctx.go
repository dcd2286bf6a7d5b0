package authctx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MentorID reads the authenticated mentor id the JWT middleware stored
// on the context, writing a 401 itself when it is absent or mangled.
func MentorID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("mentor_id")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mentor not identified"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mentor not identified"})
		return uuid.Nil, false
	}
	return id, true
}

// IsAdmin reports whether the token carried the admin role.
func IsAdmin(c *gin.Context) bool {
	return c.GetString("role") == "admin"
}
