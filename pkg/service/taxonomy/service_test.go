package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

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

type fakeCategoryRepo struct {
	byName     map[string]*model.Category
	nextID     uint
	createErr  error
	createCnt  int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byName: map[string]*model.Category{}, nextID: 1}
}

func (f *fakeCategoryRepo) Create(_ context.Context, name, slug, description string) (*model.Category, error) {
	f.createCnt++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[name]; ok {
		return nil, constant.ErrConflict
	}
	publicID, _ := idgen.GeneratePublicID(f.nextID, idgen.EntityTypeCategory)
	f.nextID++
	cat := &model.Category{ID: publicID, Name: name, Slug: slug, Description: description}
	f.byName[name] = cat
	return cat, nil
}

func (f *fakeCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	if cat, ok := f.byName[name]; ok {
		return cat, nil
	}
	return nil, constant.ErrNotFound
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, cat := range f.byName {
		if cat.Slug == slug {
			return cat, nil
		}
	}
	return nil, constant.ErrNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*model.Category, error) {
	out := make([]*model.Category, 0, len(f.byName))
	for _, cat := range f.byName {
		out = append(out, cat)
	}
	return out, nil
}

type fakeTagRepo struct {
	byName map[string]*model.Tag
	nextID uint
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{byName: map[string]*model.Tag{}, nextID: 1}
}

func (f *fakeTagRepo) Create(_ context.Context, name, slug string) (*model.Tag, error) {
	if _, ok := f.byName[name]; ok {
		return nil, constant.ErrConflict
	}
	publicID, _ := idgen.GeneratePublicID(f.nextID, idgen.EntityTypeTag)
	f.nextID++
	tag := &model.Tag{ID: publicID, Name: name, Slug: slug}
	f.byName[name] = tag
	return tag, nil
}

func (f *fakeTagRepo) FindByName(_ context.Context, name string) (*model.Tag, error) {
	if tag, ok := f.byName[name]; ok {
		return tag, nil
	}
	return nil, constant.ErrNotFound
}

func (f *fakeTagRepo) FindBySlug(_ context.Context, slug string) (*model.Tag, error) {
	for _, tag := range f.byName {
		if tag.Slug == slug {
			return tag, nil
		}
	}
	return nil, constant.ErrNotFound
}

func (f *fakeTagRepo) List(_ context.Context) ([]*model.Tag, error) {
	out := make([]*model.Tag, 0, len(f.byName))
	for _, tag := range f.byName {
		out = append(out, tag)
	}
	return out, nil
}

func (f *fakeTagRepo) ListPostIDs(_ context.Context, tagPublicID string) ([]string, error) {
	for _, tag := range f.byName {
		if tag.ID == tagPublicID {
			return nil, nil
		}
	}
	return nil, constant.ErrNotFound
}

type attachCall struct {
	postID  string
	tagDBID uint
}

type fakePostRepoForTaxonomy struct {
	attaches []attachCall
	detaches []attachCall
	counts   map[uint]int
}

func (f *fakePostRepoForTaxonomy) Create(context.Context, *model.SavePostParams) (*model.Post, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePostRepoForTaxonomy) Update(context.Context, string, *model.UpdatePostColumns) (*model.Post, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePostRepoForTaxonomy) Delete(context.Context, string) error {
	return errors.New("not implemented")
}
func (f *fakePostRepoForTaxonomy) FindByID(context.Context, string) (*model.Post, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePostRepoForTaxonomy) FindBySlug(context.Context, string) (*model.Post, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePostRepoForTaxonomy) ExistsByTitle(context.Context, string) (bool, error) {
	return false, nil
}
func (f *fakePostRepoForTaxonomy) List(context.Context, *model.ListPostsOptions) ([]*model.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePostRepoForTaxonomy) AttachTag(_ context.Context, postPublicID string, tagDBID uint) error {
	f.attaches = append(f.attaches, attachCall{postPublicID, tagDBID})
	return nil
}

func (f *fakePostRepoForTaxonomy) DetachTag(_ context.Context, postPublicID string, tagDBID uint) error {
	f.detaches = append(f.detaches, attachCall{postPublicID, tagDBID})
	return nil
}

func (f *fakePostRepoForTaxonomy) CountPublishedByCategory(_ context.Context, id uint) (int, error) {
	return f.counts[id], nil
}

func (f *fakePostRepoForTaxonomy) CountPublishedByTag(_ context.Context, id uint) (int, error) {
	return f.counts[id], nil
}

// --- 测试 ---

func TestResolveCategoryFindOrCreate(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	svc := NewService(catRepo, newFakeTagRepo(), &fakePostRepoForTaxonomy{})

	id1, err := svc.ResolveCategory(context.Background(), "Tech & Programming")
	if err != nil {
		t.Fatalf("首次解析失败: %v", err)
	}
	if id1 == nil {
		t.Fatal("首次解析应返回数据库 ID")
	}
	if got := catRepo.byName["Tech & Programming"].Slug; got != "tech-programming" {
		t.Errorf("分类 slug = %q, 期望 tech-programming", got)
	}

	id2, err := svc.ResolveCategory(context.Background(), "Tech & Programming")
	if err != nil {
		t.Fatalf("二次解析失败: %v", err)
	}
	if *id1 != *id2 {
		t.Errorf("同名分类两次解析得到不同 ID: %d vs %d", *id1, *id2)
	}
	if catRepo.createCnt != 1 {
		t.Errorf("Create 调用次数 = %d, 期望 1", catRepo.createCnt)
	}
}

func TestResolveCategoryBlankName(t *testing.T) {
	svc := NewService(newFakeCategoryRepo(), newFakeTagRepo(), &fakePostRepoForTaxonomy{})
	id, err := svc.ResolveCategory(context.Background(), "   ")
	if err != nil {
		t.Fatalf("空白名称不应报错: %v", err)
	}
	if id != nil {
		t.Error("空白名称应解析为 nil")
	}
}

func TestResolveCategoryConcurrentConflictSurfaces(t *testing.T) {
	// 查找时还不存在，创建时已被并发写入方抢先：冲突必须原样上抛
	catRepo := newFakeCategoryRepo()
	catRepo.createErr = fmt.Errorf("分类已存在: %w", constant.ErrConflict)
	svc := NewService(catRepo, newFakeTagRepo(), &fakePostRepoForTaxonomy{})

	_, err := svc.ResolveCategory(context.Background(), "Racing")
	if !errors.Is(err, constant.ErrConflict) {
		t.Errorf("期望 ErrConflict, 得到 %v", err)
	}
}

func TestResolveTagsTrimDedupeSkipEmpty(t *testing.T) {
	tagRepo := newFakeTagRepo()
	svc := NewService(newFakeCategoryRepo(), tagRepo, &fakePostRepoForTaxonomy{})

	ids, err := svc.ResolveTags(context.Background(), []string{" go ", "go", "", "  ", "web"})
	if err != nil {
		t.Fatalf("解析标签失败: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("期望 2 个标签, 得到 %d", len(ids))
	}
	if len(tagRepo.byName) != 2 {
		t.Errorf("标签表里有 %d 条, 期望 2", len(tagRepo.byName))
	}
	if _, ok := tagRepo.byName["go"]; !ok {
		t.Error("首尾空白应被去掉后存储")
	}
}

func TestAddRemoveTagSymmetry(t *testing.T) {
	tagRepo := newFakeTagRepo()
	postRepo := &fakePostRepoForTaxonomy{}
	svc := NewService(newFakeCategoryRepo(), tagRepo, postRepo)

	tag, _ := tagRepo.Create(context.Background(), "go", "go")

	if err := svc.AddTagToPost(context.Background(), "postid", tag.ID); err != nil {
		t.Fatalf("添加标签失败: %v", err)
	}
	if err := svc.RemoveTagFromPost(context.Background(), "postid", tag.ID); err != nil {
		t.Fatalf("移除标签失败: %v", err)
	}

	if len(postRepo.attaches) != 1 || len(postRepo.detaches) != 1 {
		t.Fatalf("attach/detach 次数不对: %d/%d", len(postRepo.attaches), len(postRepo.detaches))
	}
	if postRepo.attaches[0] != postRepo.detaches[0] {
		t.Error("添加与移除应作用在同一对文章/标签上")
	}
}

func TestAddTagToPostUnknownTag(t *testing.T) {
	svc := NewService(newFakeCategoryRepo(), newFakeTagRepo(), &fakePostRepoForTaxonomy{})
	unknownID, _ := idgen.GeneratePublicID(999, idgen.EntityTypeTag)
	if err := svc.AddTagToPost(context.Background(), "postid", unknownID); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("未知标签应返回 ErrNotFound, 得到 %v", err)
	}
}

func TestListTagsWithCounts(t *testing.T) {
	tagRepo := newFakeTagRepo()
	postRepo := &fakePostRepoForTaxonomy{counts: map[uint]int{1: 3}}
	svc := NewService(newFakeCategoryRepo(), tagRepo, postRepo)

	tagRepo.Create(context.Background(), "go", "go")

	tags, err := svc.ListTags(context.Background())
	if err != nil {
		t.Fatalf("列出标签失败: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("期望 1 个标签, 得到 %d", len(tags))
	}
	if tags[0].PostCount != 3 {
		t.Errorf("PostCount = %d, 期望 3", tags[0].PostCount)
	}
}
