/*
 * @Description: ImageKit CDN存储提供者实现（REST API + HMAC 直传授权）
 * @Author: 安知鱼
 * @Date: 2025-05-17 20:40:55
 * @LastEditTime: 2025-08-24 10:18:09
 * @LastEditors: 安知鱼
 */
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

const (
	imagekitUploadEndpoint = "https://upload.imagekit.io/api/v1/files/upload"
	imagekitFilesEndpoint  = "https://api.imagekit.io/v1/files"

	// defaultAuthTTL 是直传授权的默认有效期（秒）
	defaultAuthTTL = 1800
	// maxAuthTTL 是直传授权允许的最长有效期（秒），超过则压到 3599
	maxAuthTTL = 3600
	// 超过十位数的 expire 按毫秒时间戳处理
	millisThreshold = 9_999_999_999
)

// ImageKitProvider 实现了 Provider 接口，通过 ImageKit REST API 托管图片。
type ImageKitProvider struct {
	policy     *model.StoragePolicy
	httpClient *http.Client
}

// NewImageKitProvider 是 ImageKitProvider 的构造函数。
func NewImageKitProvider(policy *model.StoragePolicy) (Provider, error) {
	if policy.PrivateKey == "" {
		return nil, fmt.Errorf("ImageKit策略缺少PrivateKey")
	}
	if policy.URLEndpoint == "" {
		return nil, fmt.Errorf("ImageKit策略缺少URLEndpoint")
	}

	timeout := policy.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ImageKitProvider{
		policy:     policy,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// imagekitUploadResponse 是 ImageKit 上传接口的响应体（只取用到的字段）。
type imagekitUploadResponse struct {
	FileID   string `json:"fileId"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	FilePath string `json:"filePath"`
}

func (p *ImageKitProvider) Upload(ctx context.Context, file io.Reader, originalName, contentType string, kind model.ImageKind) (*model.UploadResult, error) {
	fileContent, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("读取文件内容失败: %w", err)
	}
	if len(fileContent) == 0 {
		return nil, constant.ErrInvalidFile
	}

	objectKey := buildObjectKey(originalName, kind)

	form := url.Values{}
	form.Set("file", base64.StdEncoding.EncodeToString(fileContent))
	form.Set("fileName", path.Base(objectKey))
	form.Set("folder", "/"+kind.Folder())
	form.Set("useUniqueFileName", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, imagekitUploadEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("构建ImageKit上传请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.policy.PrivateKey, "")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return nil, fmt.Errorf("上传文件到ImageKit超时: %w", constant.ErrTimeout)
		}
		return nil, fmt.Errorf("上传文件到ImageKit失败: %w", constant.ErrStorage)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[ImageKit] 上传失败: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("ImageKit上传返回状态码 %d: %w", resp.StatusCode, constant.ErrStorage)
	}

	var uploadResp imagekitUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return nil, fmt.Errorf("解析ImageKit上传响应失败: %w", constant.ErrStorage)
	}

	result := &model.UploadResult{
		Key:          objectKey,
		ProviderFile: uploadResp.FileID,
		URL:          uploadResp.URL,
	}
	if result.URL == "" {
		result.URL = p.GetPublicURL(objectKey)
	}
	return result, nil
}

// CreatePresignedUploadURL ImageKit 直传走签名三元组授权，不支持预签名URL。
func (p *ImageKitProvider) CreatePresignedUploadURL(_ context.Context, _ string, _ model.ImageKind) (*PresignedUploadResult, error) {
	return nil, constant.ErrUnsupportedOperation
}

// GetDownloadURL ImageKit 资源默认公开，直接返回访问端点下的地址。
func (p *ImageKitProvider) GetDownloadURL(_ context.Context, key string, _ int64) (string, error) {
	return p.GetPublicURL(key), nil
}

func (p *ImageKitProvider) GetPublicURL(key string) string {
	return strings.TrimSuffix(p.policy.URLEndpoint, "/") + "/" + key
}

// Delete 删除需要上传时记录的 fileId，没有 fileId 的记录无法远端删除。
func (p *ImageKitProvider) Delete(ctx context.Context, key, providerFileID string) error {
	if providerFileID == "" {
		return fmt.Errorf("删除ImageKit文件 '%s' 缺少fileId: %w", key, constant.ErrStorage)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, imagekitFilesEndpoint+"/"+providerFileID, nil)
	if err != nil {
		return fmt.Errorf("构建ImageKit删除请求失败: %w", err)
	}
	req.SetBasicAuth(p.policy.PrivateKey, "")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return fmt.Errorf("删除ImageKit文件超时: %w", constant.ErrTimeout)
		}
		return fmt.Errorf("删除ImageKit文件失败: %w", constant.ErrStorage)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// 远端已经没有这个文件，按删除成功处理
		return nil
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ImageKit删除返回状态码 %d: %w", resp.StatusCode, constant.ErrStorage)
	}
	return nil
}

func (p *ImageKitProvider) Exists(ctx context.Context, key string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.GetPublicURL(key), nil)
	if err != nil {
		return false, fmt.Errorf("构建ImageKit探测请求失败: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return false, fmt.Errorf("检查ImageKit文件超时: %w", constant.ErrTimeout)
		}
		return false, fmt.Errorf("检查ImageKit文件失败: %w", constant.ErrStorage)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

// CreateUploadAuth 生成与线上客户端约定的直传授权三元组。
// 签名算法固定为 HMAC-SHA1(privateKey, token+expire) 的十六进制小写，
// expire 的归一化规则同样是线上契约的一部分，不允许改动。
func (p *ImageKitProvider) CreateUploadAuth(expireHint int64) (*model.UploadAuth, error) {
	token := uuid.NewString()
	expire := normalizeAuthExpire(expireHint, time.Now())

	return &model.UploadAuth{
		Token:     token,
		Expire:    expire,
		Signature: signUploadAuth(token, expire, p.policy.PrivateKey),
	}, nil
}

// normalizeAuthExpire 把客户端给的过期时间提示归一化为合法的 Unix 秒：
//   - 0 或负数用默认有效期；
//   - 超过十位数的值按毫秒时间戳折算成秒；
//   - 不大于当前时间的值当作时长，叠加到当前时间上；
//   - 最终值最多允许一小时，超出压到 3599 秒后。
func normalizeAuthExpire(hint int64, now time.Time) int64 {
	nowUnix := now.Unix()

	expire := hint
	if expire <= 0 {
		expire = nowUnix + defaultAuthTTL
	} else {
		if expire > millisThreshold {
			expire = expire / 1000
		}
		if expire <= nowUnix {
			expire = nowUnix + expire
		}
	}

	if expire > nowUnix+maxAuthTTL {
		expire = nowUnix + maxAuthTTL - 1
	}
	return expire
}

func signUploadAuth(token string, expire int64, privateKey string) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// isClientTimeout 识别 http.Client 自身超时产生的错误。
func isClientTimeout(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue) && ue.Timeout()
}
