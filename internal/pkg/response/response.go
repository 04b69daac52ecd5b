package response

import "github.com/gin-gonic/gin"

// Envelope is the wire shape of every API reply: data on success, a coded
// error otherwise. Codes are stable identifiers clients switch on (e.g.
// ROOM_CONFLICT, COUPON_INVALID); messages are for humans.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data,omitempty"`
	Error   *Detail `json:"error,omitempty"`
}

type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error:   &Detail{Code: code, Message: message},
	})
}

// ErrorWithDetails carries structured context alongside the message, such as
// available versus requested seats on a capacity conflict.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error:   &Detail{Code: code, Message: message, Details: details},
	})
}
