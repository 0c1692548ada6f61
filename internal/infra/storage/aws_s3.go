/*
 * @Description: AWS S3存储提供者实现（使用aws-sdk-go-v2）
 * @Author: 安知鱼
 * @Date: 2025-05-17 19:22:08
 * @LastEditTime: 2025-08-23 17:05:41
 * @LastEditors: 安知鱼
 */
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

// AWSS3Provider 实现了 Provider 接口，用于处理与AWS S3的所有交互。
type AWSS3Provider struct {
	policy *model.StoragePolicy
	client *s3.Client
}

// NewAWSS3Provider 是 AWSS3Provider 的构造函数，客户端在启动时构建一次。
func NewAWSS3Provider(ctx context.Context, policy *model.StoragePolicy) (Provider, error) {
	if policy.Bucket == "" {
		return nil, fmt.Errorf("AWS S3策略缺少存储桶名称")
	}
	if policy.AccessKey == "" {
		return nil, fmt.Errorf("AWS S3策略缺少AccessKey")
	}
	if policy.SecretKey == "" {
		return nil, fmt.Errorf("AWS S3策略缺少SecretKey")
	}

	// 从Server字段获取区域和endpoint
	// Server格式可能是: "us-west-2" 或 "https://s3.us-west-2.amazonaws.com" 或自定义endpoint
	region := "us-east-1"
	var customEndpoint *string

	if policy.Server != "" {
		if strings.HasPrefix(policy.Server, "http") {
			parsedURL, err := url.Parse(policy.Server)
			if err == nil {
				customEndpoint = &policy.Server
				if strings.Contains(parsedURL.Host, "amazonaws.com") {
					parts := strings.Split(parsedURL.Host, ".")
					if len(parts) >= 4 && strings.HasPrefix(parts[1], "s3") {
						region = parts[2] // s3.us-west-2.amazonaws.com
					}
				}
			}
		} else {
			// 假设是区域名称
			region = policy.Server
		}
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			policy.AccessKey,
			policy.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建AWS S3配置失败: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if customEndpoint != nil {
			o.BaseEndpoint = aws.String(*customEndpoint)
			o.UsePathStyle = true // 对于自定义endpoint通常需要path-style
		}
	})

	log.Printf("[AWS S3] 成功创建客户端 - 区域: %s", region)
	return &AWSS3Provider{policy: policy, client: client}, nil
}

// withTimeout 给存储调用套上策略超时。
func (p *AWSS3Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := p.policy.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// translateStorageErr 把超时翻译为领域错误，其余包装为存储错误。
func translateStorageErr(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s超时: %w", op, constant.ErrTimeout)
	}
	return fmt.Errorf("%s失败: %w", op, constant.ErrStorage)
}

func (p *AWSS3Provider) Upload(ctx context.Context, file io.Reader, originalName, contentType string, kind model.ImageKind) (*model.UploadResult, error) {
	fileContent, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("读取文件内容失败: %w", err)
	}
	if len(fileContent) == 0 {
		return nil, constant.ErrInvalidFile
	}

	objectKey := buildObjectKey(originalName, kind)

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(originalName))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.policy.Bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(fileContent),
		ContentLength: aws.Int64(int64(len(fileContent))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		log.Printf("[AWS S3] 上传失败: %v", err)
		return nil, translateStorageErr(err, "上传文件到AWS S3")
	}

	return &model.UploadResult{
		Key: objectKey,
		URL: p.GetPublicURL(objectKey),
	}, nil
}

// CreatePresignedUploadURL 为客户端直传创建一个预签名的上传URL
// 客户端可以使用此URL直接PUT文件到AWS S3，无需经过服务器中转
func (p *AWSS3Provider) CreatePresignedUploadURL(ctx context.Context, originalName string, kind model.ImageKind) (*PresignedUploadResult, error) {
	objectKey := buildObjectKey(originalName, kind)

	expireTime := time.Hour
	expirationDateTime := time.Now().Add(expireTime)

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	presignClient := s3.NewPresignClient(p.client)
	presignResult, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.policy.Bucket),
		Key:    aws.String(objectKey),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expireTime
	})
	if err != nil {
		log.Printf("[AWS S3] 生成预签名上传URL失败: %v", err)
		return nil, translateStorageErr(err, "生成AWS S3预签名上传URL")
	}

	return &PresignedUploadResult{
		UploadURL:          presignResult.URL,
		Key:                objectKey,
		ExpirationDateTime: expirationDateTime,
		ContentType:        "", // AWS S3不需要指定Content-Type
	}, nil
}

func (p *AWSS3Provider) GetDownloadURL(ctx context.Context, key string, expiresIn int64) (string, error) {
	expires := time.Duration(expiresIn) * time.Second
	if expires <= 0 {
		expires = time.Hour
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	presignClient := s3.NewPresignClient(p.client)
	presignResult, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.policy.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", translateStorageErr(err, "生成AWS S3预签名URL")
	}
	return presignResult.URL, nil
}

// GetPublicURL 构建公开访问URL：优先使用配置的公开域名（如 CDN），
// 否则按 Server 字段拼出标准 S3 地址。
func (p *AWSS3Provider) GetPublicURL(key string) string {
	if p.policy.PublicURL != "" {
		base := strings.TrimSuffix(p.policy.PublicURL, "/")
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			base = "https://" + base
		}
		return fmt.Sprintf("%s/%s", base, key)
	}

	if p.policy.Server != "" && strings.HasPrefix(p.policy.Server, "http") {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(p.policy.Server, "/"), p.policy.Bucket, key)
	}

	region := p.policy.Server
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", region, p.policy.Bucket, key)
}

func (p *AWSS3Provider) Delete(ctx context.Context, key, _ string) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.policy.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[AWS S3] 删除失败: key=%s, err=%v", key, err)
		return translateStorageErr(err, "删除AWS S3文件")
	}
	return nil
}

func (p *AWSS3Provider) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.policy.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return false, nil
		}
		return false, translateStorageErr(err, "检查AWS S3文件是否存在")
	}
	return true, nil
}

// CreateUploadAuth S3 走预签名直传，不支持签名三元组授权。
func (p *AWSS3Provider) CreateUploadAuth(_ int64) (*model.UploadAuth, error) {
	return nil, constant.ErrUnsupportedOperation
}
