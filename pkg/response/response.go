// Package response 统一的 HTTP 响应格式
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"namogange/pkg/logger"
)

// 响应状态
const (
	Success = "success"
	Error   = "error"
)

/*
标准响应结构

	{
	    "status": "success",
	    "data": {},     // 成功时返回的数据
	    "error": "",    // 错误详情
	    "message": "",  // 展示给用户的提示
	}
*/
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ------------------ 成功响应 ------------------

// Data 响应 200 和数据
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: Success,
		Data:   data,
	})
}

// Created 响应 201
func Created(c *gin.Context, data interface{}, msg ...string) {
	c.JSON(http.StatusCreated, Response{
		Status:  Success,
		Data:    data,
		Message: getMsg("Created successfully", msg...),
	})
}

// Accepted 响应 202，请求已入队
func Accepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, Response{
		Status: Success,
		Data:   data,
	})
}

// ------------------ 错误响应 ------------------

// Abort400 响应 400
func Abort400(c *gin.Context, msg ...string) {
	abort(c, http.StatusBadRequest, getMsg("Invalid request parameters", msg...))
}

// Abort404 响应 404
func Abort404(c *gin.Context, msg ...string) {
	abort(c, http.StatusNotFound, getMsg("Resource not found", msg...))
}

// Abort409 响应 409，与已有数据冲突
func Abort409(c *gin.Context, msg ...string) {
	abort(c, http.StatusConflict, getMsg("Resource conflict", msg...))
}

// Abort429 响应 429
func Abort429(c *gin.Context, msg ...string) {
	abort(c, http.StatusTooManyRequests, getMsg("Too many requests, please try again later", msg...))
}

// Abort500 响应 500
func Abort500(c *gin.Context, msg ...string) {
	abort(c, http.StatusInternalServerError, getMsg("Internal server error", msg...))
}

// Abort503 响应 503
func Abort503(c *gin.Context, data interface{}, msg ...string) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, Response{
		Status:  Error,
		Data:    data,
		Message: getMsg("Service unavailable", msg...),
	})
}

// BadRequest 响应 400，附带错误详情
func BadRequest(c *gin.Context, err error, msg ...string) {
	logger.LogIf(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Status:  Error,
		Message: getMsg("Malformed request body", msg...),
		Error:   err.Error(),
	})
}

// ServerError 响应 500，错误只写日志不返回给客户端
func ServerError(c *gin.Context, err error, msg ...string) {
	logger.LogIf(err)
	abort(c, http.StatusInternalServerError, getMsg("Internal server error", msg...))
}

// ValidationError 响应 422。message 为第一条校验失败信息，data 为全部字段错误
func ValidationError(c *gin.Context, message string, errors map[string][]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Response{
		Status:  Error,
		Message: message,
		Data:    errors,
	})
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Status:  Error,
		Message: message,
	})
}

func getMsg(defaultMsg string, msg ...string) string {
	if len(msg) > 0 && msg[0] != "" {
		return msg[0]
	}
	return defaultMsg
}
