package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Msg       string            `json:"msg"`
	Code      ErrCode           `json:"code"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// Message is the acknowledgement body used by mutations that return no entity.
type Message struct {
	Msg string `json:"msg"`
}

// Success sends data as the JSON body, unwrapped.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Ack sends a {msg} acknowledgement.
func Ack(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, Message{Msg: msg})
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, buildError(c, code, nil))
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, buildError(c, code, fields))
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, buildError(c, code, nil))
}

func buildError(c *gin.Context, code ErrCode, fields map[string]string) ErrorBody {
	return ErrorBody{
		Msg:       GetMessage(code),
		Code:      code,
		Fields:    fields,
		RequestID: RequestID(c),
	}
}
