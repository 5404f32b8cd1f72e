package emailControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/email"
)

// POST /api/admin/email/test sends the test template to the given address.
func SendTestEmail(mailer email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			To string `json:"to" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := mailer.Send(input.To, "Test email", email.TestBody()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Test email sent"})
	}
}
