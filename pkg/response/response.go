package response

import (
	"log"
	"net/http"

	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Error renders the standardized error shape {"message": ...} with the
// status code mapped from the error.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"message": "Server error"})
		return
	}

	c.JSON(code, gin.H{"message": err.Error()})
}

// ValidationErrors renders field-validation failures as {"errors": [...]}.
func ValidationErrors(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": messages})
}
