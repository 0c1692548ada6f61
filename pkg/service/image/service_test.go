package image

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/anzhiyu-c/soloblog/internal/infra/storage"
	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
)

func TestMain(m *testing.M) {
	if err := idgen.InitSqidsEncoder(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// --- 测试替身 ---

type fakeProvider struct {
	uploadCnt  int
	deleteCnt  int
	deletedKey string
	deleteErr  error
}

func (f *fakeProvider) Upload(_ context.Context, file io.Reader, originalName, _ string, kind model.ImageKind) (*model.UploadResult, error) {
	f.uploadCnt++
	key := kind.Folder() + "/fake-" + originalName
	return &model.UploadResult{
		Key:          key,
		ProviderFile: "file-id-1",
		URL:          "https://cdn.example.com/" + key,
	}, nil
}

func (f *fakeProvider) CreatePresignedUploadURL(_ context.Context, originalName string, kind model.ImageKind) (*storage.PresignedUploadResult, error) {
	return &storage.PresignedUploadResult{
		UploadURL:          "https://s3.example.com/presigned",
		Key:                kind.Folder() + "/fake-" + originalName,
		ExpirationDateTime: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeProvider) GetDownloadURL(_ context.Context, key string, _ int64) (string, error) {
	return "https://cdn.example.com/" + key + "?signed", nil
}

func (f *fakeProvider) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (f *fakeProvider) Delete(_ context.Context, key, _ string) error {
	f.deleteCnt++
	f.deletedKey = key
	return f.deleteErr
}

func (f *fakeProvider) Exists(context.Context, string) (bool, error) { return true, nil }

func (f *fakeProvider) CreateUploadAuth(int64) (*model.UploadAuth, error) {
	return &model.UploadAuth{Token: "t", Expire: 1, Signature: "s"}, nil
}

type fakeImageRepo struct {
	images    map[string]*model.Image
	nextID    uint
	createErr error
	deleteCnt int
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: map[string]*model.Image{}, nextID: 1}
}

func (f *fakeImageRepo) Create(_ context.Context, params *model.CreateImageParams) (*model.Image, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	publicID, _ := idgen.GeneratePublicID(f.nextID, idgen.EntityTypeImage)
	f.nextID++
	img := &model.Image{
		ID:           publicID,
		Key:          params.Key,
		ProviderFile: params.ProviderFile,
		OriginalName: params.OriginalName,
		ContentType:  params.ContentType,
		Size:         params.Size,
		URL:          params.URL,
		UploadedAt:   time.Now(),
	}
	f.images[publicID] = img
	return img, nil
}

func (f *fakeImageRepo) FindByID(_ context.Context, publicID string) (*model.Image, error) {
	if img, ok := f.images[publicID]; ok {
		return img, nil
	}
	return nil, constant.ErrNotFound
}

func (f *fakeImageRepo) FindByKey(_ context.Context, key string) (*model.Image, error) {
	for _, img := range f.images {
		if img.Key == key {
			return img, nil
		}
	}
	return nil, constant.ErrNotFound
}

func (f *fakeImageRepo) List(_ context.Context) ([]*model.Image, error) {
	out := make([]*model.Image, 0, len(f.images))
	for _, img := range f.images {
		out = append(out, img)
	}
	return out, nil
}

func (f *fakeImageRepo) ListByPost(context.Context, uint) ([]*model.Image, error) { return nil, nil }

func (f *fakeImageRepo) Delete(_ context.Context, publicID string) error {
	if _, ok := f.images[publicID]; !ok {
		return constant.ErrNotFound
	}
	f.deleteCnt++
	delete(f.images, publicID)
	return nil
}

func (f *fakeImageRepo) LinkToPost(_ context.Context, imagePublicID string, postDBID uint) (*model.Image, error) {
	img, ok := f.images[imagePublicID]
	if !ok {
		return nil, constant.ErrNotFound
	}
	postPublicID, _ := idgen.GeneratePublicID(postDBID, idgen.EntityTypePost)
	img.PostID = postPublicID
	return img, nil
}

func (f *fakeImageRepo) ListUnlinkedBefore(_ context.Context, cutoff time.Time) ([]*model.Image, error) {
	var out []*model.Image
	for _, img := range f.images {
		if img.PostID == "" && img.UploadedAt.Before(cutoff) {
			out = append(out, img)
		}
	}
	return out, nil
}

// --- 测试 ---

func TestUploadEmptyFileRejected(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeImageRepo()
	svc := NewService(repo, provider)

	_, err := svc.Upload(context.Background(), strings.NewReader(""), "empty.png", "image/png", model.ImageKindCover)
	if !errors.Is(err, constant.ErrInvalidFile) {
		t.Fatalf("空文件期望 ErrInvalidFile, 得到 %v", err)
	}
	if provider.uploadCnt != 0 {
		t.Error("空文件不应触发存储上传")
	}
	if len(repo.images) != 0 {
		t.Error("空文件不应留下元数据")
	}
}

func TestUploadPersistsMetadata(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeImageRepo()
	svc := NewService(repo, provider)

	resp, err := svc.Upload(context.Background(), strings.NewReader("png-bytes"), "photo.png", "image/png", model.ImageKindContent)
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if resp.Key != "post_images/fake-photo.png" {
		t.Errorf("key = %q", resp.Key)
	}
	if resp.URL == "" {
		t.Error("URL 不应为空")
	}
	if len(repo.images) != 1 {
		t.Errorf("元数据行数 = %d, 期望 1", len(repo.images))
	}
}

func TestUploadRollsBackOnRepoFailure(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeImageRepo()
	repo.createErr = errors.New("db down")
	svc := NewService(repo, provider)

	_, err := svc.Upload(context.Background(), strings.NewReader("bytes"), "photo.png", "image/png", model.ImageKindCover)
	if err == nil {
		t.Fatal("落库失败应报错")
	}
	if provider.deleteCnt != 1 {
		t.Error("落库失败后应回收已上传的物理文件")
	}
}

func TestUploadUnknownKind(t *testing.T) {
	svc := NewService(newFakeImageRepo(), &fakeProvider{})
	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "a.png", "image/png", model.ImageKind("avatar"))
	if !errors.Is(err, constant.ErrBadRequest) {
		t.Errorf("未知用途期望 ErrBadRequest, 得到 %v", err)
	}
}

func TestDeleteKeepsRowWhenStorageFails(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeImageRepo()
	svc := NewService(repo, provider)

	resp, _ := svc.Upload(context.Background(), strings.NewReader("bytes"), "keep.png", "image/png", model.ImageKindCover)

	provider.deleteErr = errors.New("storage down")
	if err := svc.Delete(context.Background(), resp.ID); err == nil {
		t.Fatal("物理删除失败应报错")
	}
	if len(repo.images) != 1 {
		t.Error("物理删除失败时应保留元数据行")
	}

	provider.deleteErr = nil
	if err := svc.Delete(context.Background(), resp.ID); err != nil {
		t.Fatalf("重试删除失败: %v", err)
	}
	if len(repo.images) != 0 {
		t.Error("删除成功后元数据行应消失")
	}
}

func TestLinkToPost(t *testing.T) {
	repo := newFakeImageRepo()
	svc := NewService(repo, &fakeProvider{})

	uploaded, _ := svc.Upload(context.Background(), strings.NewReader("bytes"), "linked.png", "image/png", model.ImageKindContent)
	postPublicID, _ := idgen.GeneratePublicID(7, idgen.EntityTypePost)

	linked, err := svc.LinkToPost(context.Background(), uploaded.ID, postPublicID)
	if err != nil {
		t.Fatalf("关联失败: %v", err)
	}
	if linked.PostID != postPublicID {
		t.Errorf("PostID = %q, 期望 %q", linked.PostID, postPublicID)
	}
}

func TestCleanupUnlinked(t *testing.T) {
	provider := &fakeProvider{}
	repo := newFakeImageRepo()
	svc := NewService(repo, provider)

	old, _ := svc.Upload(context.Background(), strings.NewReader("bytes"), "old.png", "image/png", model.ImageKindContent)
	svc.Upload(context.Background(), strings.NewReader("bytes"), "linked.png", "image/png", model.ImageKindContent)

	// 把第一张图的上传时间拨回 8 天前，第二张关联到文章
	repo.images[old.ID].UploadedAt = time.Now().Add(-8 * 24 * time.Hour)
	for id := range repo.images {
		if id != old.ID {
			postID, _ := idgen.GeneratePublicID(1, idgen.EntityTypePost)
			repo.images[id].PostID = postID
			repo.images[id].UploadedAt = time.Now().Add(-8 * 24 * time.Hour)
		}
	}

	cleaned, err := svc.CleanupUnlinked(context.Background(), time.Now().Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("清理失败: %v", err)
	}
	if cleaned != 1 {
		t.Errorf("清理数量 = %d, 期望 1", cleaned)
	}
	if _, ok := repo.images[old.ID]; ok {
		t.Error("过期未关联的图片应被清掉")
	}
	if len(repo.images) != 1 {
		t.Error("已关联的图片不应被清理")
	}
}
