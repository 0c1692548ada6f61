/*
 * @Description: 统一的API返回结构与错误码映射
 * @Author: 安知鱼
 * @Date: 2025-05-12 10:22:03
 * @LastEditTime: 2025-08-09 21:15:37
 * @LastEditors: 安知鱼
 */
package response

import (
	"errors"
	"net/http"

	"github.com/anzhiyu-c/soloblog/pkg/constant"

	"github.com/gin-gonic/gin"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data"`
	Path    string            `json:"path,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// SuccessWithStatus 成功响应，但允许自定义 HTTP 状态码。
// 这对于返回 201 Created 等状态非常有用。
func SuccessWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Path:    c.Request.URL.Path,
	})
}

// FailWithValidation 失败响应，附带每个字段的校验错误信息
func FailWithValidation(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: message,
		Path:    c.Request.URL.Path,
		Fields:  fields,
	})
}

// FailWithError 将业务层的标准错误映射为对应的 HTTP 状态码。
// 未识别的错误一律按 500 处理，不向客户端泄露内部细节。
func FailWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, constant.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, constant.ErrConflict):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, constant.ErrBadRequest),
		errors.Is(err, constant.ErrInvalidFile),
		errors.Is(err, constant.ErrUnsupportedOperation):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, constant.ErrUnauthorized), errors.Is(err, constant.ErrInvalidToken):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, constant.ErrForbidden):
		Fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, constant.ErrTimeout):
		Fail(c, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, constant.ErrStorage):
		Fail(c, http.StatusBadGateway, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, constant.ErrInternalServer.Error())
	}
}
