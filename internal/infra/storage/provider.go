/*
 * @Description: 定义了所有存储驱动需要遵守的接口和公共结构
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2025-08-23 16:40:12
 * @LastEditors: 安知鱼
 */
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// PresignedUploadResult 封装了客户端直传所需的预签名信息
type PresignedUploadResult struct {
	UploadURL          string    `json:"uploadUrl"`          // 预签名上传URL
	Key                string    `json:"key"`                // 上传完成后用于登记的对象键
	ExpirationDateTime time.Time `json:"expirationDateTime"` // URL过期时间
	ContentType        string    `json:"contentType"`        // 期望的 Content-Type，客户端上传时必须使用此值
}

// Provider 定义了所有存储提供者必须实现的接口。
// 不支持的操作返回 constant.ErrUnsupportedOperation；
// 超出策略超时的调用返回 constant.ErrTimeout。
type Provider interface {
	// Upload 将文件流上传到存储后端的 kind 对应目录，
	// 对象键由服务端生成，空文件返回 constant.ErrInvalidFile。
	Upload(ctx context.Context, file io.Reader, originalName, contentType string, kind model.ImageKind) (*model.UploadResult, error)

	// CreatePresignedUploadURL 为客户端直传创建一个预签名的上传URL。
	CreatePresignedUploadURL(ctx context.Context, originalName string, kind model.ImageKind) (*PresignedUploadResult, error)

	// GetDownloadURL 为存储中的文件生成一个限时的下载链接。
	GetDownloadURL(ctx context.Context, key string, expiresIn int64) (string, error)

	// GetPublicURL 返回文件的公开访问地址，不涉及网络调用。
	GetPublicURL(key string) string

	// Delete 删除一个物理文件。providerFileID 是后端自己的文件标识，
	// 没有的后端忽略该参数。
	Delete(ctx context.Context, key, providerFileID string) error

	// Exists 检查对象键是否存在物理文件。
	Exists(ctx context.Context, key string) (bool, error)

	// CreateUploadAuth 生成 CDN 直传授权签名三元组。
	// expireHint 是客户端期望的过期时间（Unix 秒），0 表示使用默认值。
	CreateUploadAuth(expireHint int64) (*model.UploadAuth, error)
}

// buildObjectKey 为上传生成全局唯一的对象键：用途目录 + UUID + 原始扩展名。
// 原始文件名只贡献扩展名，避免路径注入和重名覆盖。
func buildObjectKey(originalName string, kind model.ImageKind) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return kind.Folder() + "/" + uuid.NewString() + ext
}
