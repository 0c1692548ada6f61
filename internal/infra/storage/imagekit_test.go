package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
)

func TestSignUploadAuth(t *testing.T) {
	// 黄金值：与线上客户端约定的签名算法，改了算法这两条一定红
	tests := []struct {
		name       string
		token      string
		expire     int64
		privateKey string
		want       string
	}{
		{
			name:       "简单组合",
			token:      "abc",
			expire:     1000,
			privateKey: "secret",
			want:       "9573cb3eb82d1536c4916a6ee7129cf5ecf77195",
		},
		{
			name:       "固定token与时间戳",
			token:      "fixed-token",
			expire:     1700000000,
			privateKey: "test-private-key",
			want:       "700d6a7b48d16ffd6faf45a64189a3633e62965d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := signUploadAuth(tt.token, tt.expire, tt.privateKey); got != tt.want {
				t.Errorf("signUploadAuth() = %s, 期望 %s", got, tt.want)
			}
		})
	}
}

func TestNormalizeAuthExpire(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name string
		hint int64
		want int64
	}{
		{"零值用默认有效期", 0, 1700001800},
		{"负值用默认有效期", -5, 1700001800},
		{"毫秒时间戳折算成秒", 1700000500000, 1700000500},
		{"过去的时间戳当作时长叠加后压顶", 1600000000, 1700003599},
		{"小的时长叠加到当前时间", 600, 1700000600},
		{"超过一小时压到3599秒后", 1700007200, 1700003599},
		{"恰好一小时不压顶", 1700003600, 1700003600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeAuthExpire(tt.hint, now); got != tt.want {
				t.Errorf("normalizeAuthExpire(%d) = %d, 期望 %d", tt.hint, got, tt.want)
			}
		})
	}
}

func TestCreateUploadAuth(t *testing.T) {
	provider, err := NewImageKitProvider(&model.StoragePolicy{
		PrivateKey:  "test-private-key",
		URLEndpoint: "https://ik.imagekit.io/demo",
	})
	if err != nil {
		t.Fatalf("创建Provider失败: %v", err)
	}

	authProvider := provider.(*ImageKitProvider)
	auth, err := authProvider.CreateUploadAuth(0)
	if err != nil {
		t.Fatalf("CreateUploadAuth失败: %v", err)
	}

	if _, err := uuid.Parse(auth.Token); err != nil {
		t.Errorf("token 不是合法的 UUID: %q", auth.Token)
	}

	now := time.Now().Unix()
	if auth.Expire <= now || auth.Expire > now+3600 {
		t.Errorf("expire 超出合法窗口: %d (now=%d)", auth.Expire, now)
	}

	if want := signUploadAuth(auth.Token, auth.Expire, "test-private-key"); auth.Signature != want {
		t.Errorf("签名与算法不一致: got %s, want %s", auth.Signature, want)
	}
}

func TestCreateUploadAuthSignatureChangesWithExpire(t *testing.T) {
	s1 := signUploadAuth("same-token", 1700000000, "k")
	s2 := signUploadAuth("same-token", 1700000001, "k")
	if s1 == s2 {
		t.Error("不同 expire 产生了相同签名")
	}
}

func TestBuildObjectKey(t *testing.T) {
	key := buildObjectKey("Photo.JPG", model.ImageKindCover)
	if got := key[:len("cover_images/")]; got != "cover_images/" {
		t.Errorf("封面图应落在 cover_images/ 下: %q", key)
	}
	if key[len(key)-4:] != ".jpg" {
		t.Errorf("扩展名应保留并转小写: %q", key)
	}

	if k2 := buildObjectKey("Photo.JPG", model.ImageKindCover); k2 == key {
		t.Error("两次生成的对象键不应相同")
	}

	content := buildObjectKey("diagram.png", model.ImageKindContent)
	if got := content[:len("post_images/")]; got != "post_images/" {
		t.Errorf("内容图应落在 post_images/ 下: %q", content)
	}
}
