/*
 * @Description: 图片的业务逻辑（上传落库、直传授权、归属关联、清理）
 * @Author: 安知鱼
 * @Date: 2025-05-19 16:48:02
 * @LastEditTime: 2025-08-25 10:20:44
 * @LastEditors: 安知鱼
 */
package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/anzhiyu-c/soloblog/internal/infra/storage"
	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/domain/repository"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
)

// Service 封装了图片的业务逻辑：物理文件进出存储后端，元数据落库。
type Service struct {
	imageRepo repository.ImageRepository
	provider  storage.Provider
}

// NewService 是 Image Service 的构造函数。
func NewService(imageRepo repository.ImageRepository, provider storage.Provider) *Service {
	return &Service{
		imageRepo: imageRepo,
		provider:  provider,
	}
}

// Upload 上传图片并登记元数据。空文件直接拒绝，不产生任何持久化痕迹。
func (s *Service) Upload(ctx context.Context, file io.Reader, originalName, contentType string, kind model.ImageKind) (*model.ImageResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("未知的图片用途 '%s': %w", kind, constant.ErrBadRequest)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("读取上传内容失败: %w", err)
	}
	if len(content) == 0 {
		return nil, constant.ErrInvalidFile
	}

	result, err := s.provider.Upload(ctx, bytes.NewReader(content), originalName, contentType, kind)
	if err != nil {
		return nil, err
	}

	img, err := s.imageRepo.Create(ctx, &model.CreateImageParams{
		Key:          result.Key,
		ProviderFile: result.ProviderFile,
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         int64(len(content)),
		URL:          result.URL,
	})
	if err != nil {
		// 落库失败时回收已上传的物理文件，避免孤儿对象
		if delErr := s.provider.Delete(ctx, result.Key, result.ProviderFile); delErr != nil {
			log.Printf("[图片服务] 回收上传文件失败: key=%s, err=%v", result.Key, delErr)
		}
		return nil, err
	}
	return toAPIResponse(img), nil
}

// CreatePresignedUploadURL 为客户端直传生成预签名URL，S3 后端专用。
func (s *Service) CreatePresignedUploadURL(ctx context.Context, originalName string, kind model.ImageKind) (*storage.PresignedUploadResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("未知的图片用途 '%s': %w", kind, constant.ErrBadRequest)
	}
	return s.provider.CreatePresignedUploadURL(ctx, originalName, kind)
}

// CreateUploadAuth 生成 CDN 直传授权签名三元组，ImageKit 后端专用。
func (s *Service) CreateUploadAuth(expireHint int64) (*model.UploadAuth, error) {
	return s.provider.CreateUploadAuth(expireHint)
}

// Get 按公共 ID 返回图片元数据。
func (s *Service) Get(ctx context.Context, publicID string) (*model.ImageResponse, error) {
	img, err := s.imageRepo.FindByID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return toAPIResponse(img), nil
}

// GetByKey 按存储对象 key 返回图片元数据。
func (s *Service) GetByKey(ctx context.Context, key string) (*model.ImageResponse, error) {
	img, err := s.imageRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return toAPIResponse(img), nil
}

// List 返回全部图片元数据，供管理后台使用。
func (s *Service) List(ctx context.Context) ([]*model.ImageResponse, error) {
	images, err := s.imageRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.ImageResponse, len(images))
	for i, img := range images {
		responses[i] = toAPIResponse(img)
	}
	return responses, nil
}

// GetDownloadURL 为图片生成限时下载链接。
// 元数据还在但物理文件已丢失时返回未找到，不签发必然失效的链接。
func (s *Service) GetDownloadURL(ctx context.Context, publicID string, expiresIn int64) (string, error) {
	img, err := s.imageRepo.FindByID(ctx, publicID)
	if err != nil {
		return "", err
	}

	exists, err := s.provider.Exists(ctx, img.Key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("图片 '%s' 的物理文件不存在: %w", img.Key, constant.ErrNotFound)
	}

	return s.provider.GetDownloadURL(ctx, img.Key, expiresIn)
}

// Delete 先删物理文件再删元数据行。物理删除失败时保留元数据，
// 留给清理任务或人工重试，不造成"行没了文件还在"的孤儿。
func (s *Service) Delete(ctx context.Context, publicID string) error {
	img, err := s.imageRepo.FindByID(ctx, publicID)
	if err != nil {
		return err
	}
	if err := s.provider.Delete(ctx, img.Key, img.ProviderFile); err != nil {
		return err
	}
	return s.imageRepo.Delete(ctx, publicID)
}

// LinkToPost 把一张图片归属到指定文章。
func (s *Service) LinkToPost(ctx context.Context, imagePublicID, postPublicID string) (*model.ImageResponse, error) {
	postDBID, err := idgen.DecodeTypedID(postPublicID, idgen.EntityTypePost)
	if err != nil {
		return nil, constant.ErrNotFound
	}
	img, err := s.imageRepo.LinkToPost(ctx, imagePublicID, postDBID)
	if err != nil {
		return nil, err
	}
	return toAPIResponse(img), nil
}

// CleanupUnlinked 清理在 cutoff 之前上传且至今未关联文章的图片，
// 返回成功清掉的数量，供定时任务调用。
func (s *Service) CleanupUnlinked(ctx context.Context, cutoff time.Time) (int, error) {
	images, err := s.imageRepo.ListUnlinkedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cleaned := 0
	for _, img := range images {
		if err := s.provider.Delete(ctx, img.Key, img.ProviderFile); err != nil {
			log.Printf("[图片服务] 清理物理文件失败: key=%s, err=%v", img.Key, err)
			continue
		}
		if err := s.imageRepo.Delete(ctx, img.ID); err != nil {
			log.Printf("[图片服务] 清理元数据失败: id=%s, err=%v", img.ID, err)
			continue
		}
		cleaned++
	}
	return cleaned, nil
}

func toAPIResponse(img *model.Image) *model.ImageResponse {
	if img == nil {
		return nil
	}
	return &model.ImageResponse{
		ID:           img.ID,
		Key:          img.Key,
		OriginalName: img.OriginalName,
		URL:          img.URL,
		UploadedAt:   img.UploadedAt,
		PostID:       img.PostID,
	}
}
