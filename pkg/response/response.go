package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 标准响应结构
// 字段顺序：code -> msg -> data
type Response struct {
	Code int         `json:"code"` // 业务状态码，0 表示成功
	Msg  string      `json:"msg"`  // 响应消息（中文）
	Data interface{} `json:"data"` // 响应数据
}

// 业务错误码
const (
	CodeSuccess = 0 // 操作成功

	// 参数错误 10xxx
	CodeInvalidRequest = 10001 // 请求参数无效
	CodeInvalidFormat  = 10002 // 参数格式错误
	CodeMissingParam   = 10003 // 必填参数缺失
	CodeValidation     = 10004 // 字段校验失败

	// 状态流转错误 30xxx
	CodeInvalidTransition = 30001 // 当前状态不允许该操作
	CodeInvalidView       = 30002 // 当前页面不允许该操作

	// 资源不存在 40xxx
	CodeResourceNotFound = 40001 // 资源不存在
	CodeKindNotFound     = 40002 // 资源类别不存在
	CodeRouteNotFound    = 40003 // 页面不存在
	CodeScreenNotFound   = 40004 // 页面会话已过期

	// 冲突错误 50xxx
	CodeVersionConflict = 50001 // 资源已被修改
	CodeResourceExists  = 50002 // 资源 ID 已存在

	// 服务器错误 90xxx
	CodeServerError = 90001 // 服务器内部错误
	CodeUnavailable = 90002 // 服务暂时不可用
)

// 错误码对应的消息
var codeMessages = map[int]string{
	CodeSuccess:           "操作成功",
	CodeInvalidRequest:    "请求参数无效",
	CodeInvalidFormat:     "参数格式错误",
	CodeMissingParam:      "必填参数缺失",
	CodeValidation:        "字段校验失败",
	CodeInvalidTransition: "当前状态不允许该操作",
	CodeInvalidView:       "当前页面不允许该操作",
	CodeResourceNotFound:  "资源不存在",
	CodeKindNotFound:      "资源类别不存在",
	CodeRouteNotFound:     "页面不存在",
	CodeScreenNotFound:    "页面会话不存在或已过期",
	CodeVersionConflict:   "资源已被其他人修改，请刷新后重试",
	CodeResourceExists:    "资源 ID 已存在",
	CodeServerError:       "服务器内部错误，请稍后重试",
	CodeUnavailable:       "服务暂时不可用",
}

// Message 错误码对应的默认消息
func Message(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return "未知错误"
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeSuccess,
		Msg:  codeMessages[CodeSuccess],
		Data: data,
	})
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeSuccess,
		Msg:  msg,
		Data: data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int) {
	c.JSON(HTTPStatus(code), Response{
		Code: code,
		Msg:  Message(code),
		Data: nil,
	})
}

// ErrorWithMsg 错误响应（自定义消息）
func ErrorWithMsg(c *gin.Context, code int, msg string) {
	c.JSON(HTTPStatus(code), Response{
		Code: code,
		Msg:  msg,
		Data: nil,
	})
}

// HTTPStatus 业务错误码转 HTTP 状态码
func HTTPStatus(code int) int {
	switch {
	case code == CodeSuccess:
		return http.StatusOK
	case code >= 10000 && code < 20000:
		return http.StatusBadRequest
	case code >= 30000 && code < 40000:
		return http.StatusBadRequest
	case code >= 40000 && code < 50000:
		return http.StatusNotFound
	case code >= 50000 && code < 60000:
		return http.StatusConflict
	case code == CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
