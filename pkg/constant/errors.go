/*
 * @Description: 定义业务层的标准错误，由 Handler 统一转换为 HTTP 状态码
 * @Author: 安知鱼
 * @Date: 2025-05-12 10:18:44
 * @LastEditTime: 2025-08-02 16:40:21
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

var (
	// ErrNotFound 表示资源未找到（文章/分类/标签/图片），可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrConflict 表示资源冲突（标题重复、唯一名称并发创建撞车），可以由 Handler 转换为 409
	ErrConflict = errors.New("资源冲突")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrUnauthorized 表示未授权，可以由 Handler 转换为 401
	ErrUnauthorized = errors.New("未经授权的访问")

	// ErrForbidden 表示无权访问，可以由 Handler 转换为 403
	ErrForbidden = errors.New("操作禁止")

	// ErrInvalidToken 表示无效的令牌，可以由 Handler 转换为 401
	ErrInvalidToken = errors.New("无效令牌")

	// ErrInvalidFile 表示上传的文件为空或类型不合法，可以由 Handler 转换为 400
	ErrInvalidFile = errors.New("无效的文件")

	// ErrStorage 表示存储后端上传/删除/签名失败，可以由 Handler 转换为 502
	ErrStorage = errors.New("存储后端操作失败")

	// ErrUnsupportedOperation 表示当前存储后端不支持该能力，可以由 Handler 转换为 400
	ErrUnsupportedOperation = errors.New("当前存储后端不支持此操作")

	// ErrTimeout 表示存储后端操作超时，与 ErrStorage 区分开，调用方可以安全重试上传
	ErrTimeout = errors.New("存储后端操作超时")

	// ErrInternalServer 表示服务器内部错误，可以由 Handler 转换为 500
	ErrInternalServer = errors.New("内部服务器错误")
)
