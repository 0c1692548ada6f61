/*
 * @Description: 图片元数据的领域模型与存储相关的值对象
 * @Author: 安知鱼
 * @Date: 2025-05-16 14:08:29
 * @LastEditTime: 2025-08-23 10:19:50
 * @LastEditors: 安知鱼
 */
package model

import "time"

// ImageKind 区分图片用途，决定存储后端上的目录。
type ImageKind string

const (
	ImageKindCover   ImageKind = "cover"
	ImageKindContent ImageKind = "content"
)

// Folder 返回该用途对应的存储目录。
func (k ImageKind) Folder() string {
	if k == ImageKindCover {
		return "cover_images"
	}
	return "post_images"
}

// Valid 报告 kind 是否为已知取值。
func (k ImageKind) Valid() bool {
	return k == ImageKindCover || k == ImageKindContent
}

// Image 是图片元数据的核心领域模型。
// 一张图片最多归属一篇文章；未关联的图片也是合法的，可按 key 查询。
type Image struct {
	ID           string
	Key          string
	ProviderFile string
	OriginalName string
	ContentType  string
	Size         int64
	URL          string
	UploadedAt   time.Time
	PostID       string
}

// CreateImageParams 是仓储层落库图片元数据的参数集合。
type CreateImageParams struct {
	Key          string
	ProviderFile string
	OriginalName string
	ContentType  string
	Size         int64
	URL          string
	PostDBID     *uint
}

// ImageResponse 定义了图片的标准 API 响应结构
type ImageResponse struct {
	ID           string    `json:"id"`
	Key          string    `json:"key"`
	OriginalName string    `json:"originalName"`
	URL          string    `json:"url"`
	UploadedAt   time.Time `json:"uploadedAt"`
	PostID       string    `json:"postId,omitempty"`
}

// UploadResult 封装了存储后端上传成功后的文件信息。
type UploadResult struct {
	Key          string
	ProviderFile string
	URL          string
}

// UploadAuth 是 CDN 直传授权的签名三元组，格式与线上客户端约定一致，
// 不允许改动字段含义或签名算法。
type UploadAuth struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// StoragePolicy 描述当前启用的存储后端及其凭证，由配置装配，启动时注入。
type StoragePolicy struct {
	Type       string
	Bucket     string
	Server     string
	AccessKey  string
	SecretKey  string
	PublicURL  string
	PrivateKey string
	// URLEndpoint 是 ImageKit 的访问端点，如 https://ik.imagekit.io/yourid
	URLEndpoint string
	// Timeout 是单次存储后端调用的超时时间
	Timeout time.Duration
}

// 存储后端类型
const (
	StorageTypeS3       = "s3"
	StorageTypeImageKit = "imagekit"
)
