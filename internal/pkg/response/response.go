package response

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope: {"success": true, "data": ...}
// or {"success": false, "error": {"code", "message", "details?"}}. Clients
// branch on the machine-readable code, message is for humans.

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails carries per-field context, e.g. validation violations keyed
// by field name.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
