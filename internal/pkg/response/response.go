package response

import "github.com/gin-gonic/gin"

// Success writes the JSON success envelope used by the management API.
// Extra fields (e.g. the created user) are merged into the envelope.
func Success(c *gin.Context, statusCode int, message string, extra gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}
