package post

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/anzhiyu-c/soloblog/pkg/constant"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
	"github.com/anzhiyu-c/soloblog/pkg/service/taxonomy"
)

func TestMain(m *testing.M) {
	if err := idgen.InitSqidsEncoder(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// --- 测试替身 ---

type fakeCatRepo struct {
	byName map[string]*model.Category
	byDBID map[uint]*model.Category
	nextID uint
}

func newFakeCatRepo() *fakeCatRepo {
	return &fakeCatRepo{byName: map[string]*model.Category{}, byDBID: map[uint]*model.Category{}, nextID: 1}
}

func (f *fakeCatRepo) Create(_ context.Context, name, slug, description string) (*model.Category, error) {
	publicID, _ := idgen.GeneratePublicID(f.nextID, idgen.EntityTypeCategory)
	cat := &model.Category{ID: publicID, Name: name, Slug: slug, Description: description}
	f.byName[name] = cat
	f.byDBID[f.nextID] = cat
	f.nextID++
	return cat, nil
}

func (f *fakeCatRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	if cat, ok := f.byName[name]; ok {
		return cat, nil
	}
	return nil, constant.ErrNotFound
}

func (f *fakeCatRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	return nil, constant.ErrNotFound
}

func (f *fakeCatRepo) List(_ context.Context) ([]*model.Category, error) { return nil, nil }

type fakeTagRepoForPost struct {
	byName map[string]*model.Tag
	byDBID map[uint]*model.Tag
	nextID uint
}

func newFakeTagRepoForPost() *fakeTagRepoForPost {
	return &fakeTagRepoForPost{byName: map[string]*model.Tag{}, byDBID: map[uint]*model.Tag{}, nextID: 1}
}

func (f *fakeTagRepoForPost) Create(_ context.Context, name, slug string) (*model.Tag, error) {
	publicID, _ := idgen.GeneratePublicID(f.nextID, idgen.EntityTypeTag)
	tag := &model.Tag{ID: publicID, Name: name, Slug: slug}
	f.byName[name] = tag
	f.byDBID[f.nextID] = tag
	f.nextID++
	return tag, nil
}

func (f *fakeTagRepoForPost) FindByName(_ context.Context, name string) (*model.Tag, error) {
	if tag, ok := f.byName[name]; ok {
		return tag, nil
	}
	return nil, constant.ErrNotFound
}

func (f *fakeTagRepoForPost) FindBySlug(_ context.Context, slug string) (*model.Tag, error) {
	return nil, constant.ErrNotFound
}

func (f *fakeTagRepoForPost) List(_ context.Context) ([]*model.Tag, error) { return nil, nil }

func (f *fakeTagRepoForPost) ListPostIDs(_ context.Context, tagPublicID string) ([]string, error) {
	return nil, nil
}

type fakePostRepo struct {
	posts     map[string]*model.Post
	nextID    uint
	updateCnt int
	lastOpts  *model.ListPostsOptions
	cats      *fakeCatRepo
	tags      *fakeTagRepoForPost
}

func newFakePostRepo(cats *fakeCatRepo, tags *fakeTagRepoForPost) *fakePostRepo {
	return &fakePostRepo{posts: map[string]*model.Post{}, nextID: 1, cats: cats, tags: tags}
}

func (f *fakePostRepo) Create(_ context.Context, params *model.SavePostParams) (*model.Post, error) {
	publicID, _ := idgen.GeneratePublicID(f.nextID, idgen.EntityTypePost)
	f.nextID++
	now := time.Now()
	p := &model.Post{
		ID:            publicID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Title:         params.Title,
		Content:       params.Content,
		Excerpt:       params.Excerpt,
		Author:        params.Author,
		Slug:          params.Slug,
		CoverImageURL: params.CoverImageURL,
		ReadTime:      params.ReadTime,
		Published:     params.Published,
		Archived:      params.Archived,
	}
	if params.CategoryDBID != nil {
		p.Category = f.cats.byDBID[*params.CategoryDBID]
	}
	for _, id := range params.TagDBIDs {
		p.Tags = append(p.Tags, f.tags.byDBID[id])
	}
	f.posts[publicID] = p
	return p, nil
}

func (f *fakePostRepo) Update(_ context.Context, publicID string, cols *model.UpdatePostColumns) (*model.Post, error) {
	p, ok := f.posts[publicID]
	if !ok {
		return nil, constant.ErrNotFound
	}
	f.updateCnt++
	if cols.Title != nil {
		p.Title = *cols.Title
	}
	if cols.Content != nil {
		p.Content = *cols.Content
	}
	if cols.Excerpt != nil {
		p.Excerpt = *cols.Excerpt
	}
	if cols.Author != nil {
		p.Author = *cols.Author
	}
	if cols.Slug != nil {
		p.Slug = *cols.Slug
	}
	if cols.CoverImageURL != nil {
		p.CoverImageURL = *cols.CoverImageURL
	}
	if cols.ReadTime != nil {
		p.ReadTime = *cols.ReadTime
	}
	if cols.Published != nil {
		p.Published = *cols.Published
	}
	if cols.Archived != nil {
		p.Archived = *cols.Archived
	}
	if cols.SetCategory {
		p.Category = nil
		if cols.CategoryDBID != nil {
			p.Category = f.cats.byDBID[*cols.CategoryDBID]
		}
	}
	if cols.SetTags {
		p.Tags = nil
		for _, id := range cols.TagDBIDs {
			p.Tags = append(p.Tags, f.tags.byDBID[id])
		}
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

func (f *fakePostRepo) Delete(_ context.Context, publicID string) error {
	if _, ok := f.posts[publicID]; !ok {
		return constant.ErrNotFound
	}
	delete(f.posts, publicID)
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, publicID string) (*model.Post, error) {
	if p, ok := f.posts[publicID]; ok {
		return p, nil
	}
	return nil, constant.ErrNotFound
}

func (f *fakePostRepo) FindBySlug(_ context.Context, slug string) (*model.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, constant.ErrNotFound
}

func (f *fakePostRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	for _, p := range f.posts {
		if p.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) List(_ context.Context, opts *model.ListPostsOptions) ([]*model.Post, int64, error) {
	f.lastOpts = opts
	return nil, 0, nil
}

func (f *fakePostRepo) AttachTag(context.Context, string, uint) error { return nil }
func (f *fakePostRepo) DetachTag(context.Context, string, uint) error { return nil }
func (f *fakePostRepo) CountPublishedByCategory(context.Context, uint) (int, error) {
	return 0, nil
}
func (f *fakePostRepo) CountPublishedByTag(context.Context, uint) (int, error) { return 0, nil }

type fakeImageRepoForPost struct{}

func (fakeImageRepoForPost) Create(context.Context, *model.CreateImageParams) (*model.Image, error) {
	return nil, errors.New("not implemented")
}
func (fakeImageRepoForPost) FindByID(context.Context, string) (*model.Image, error) {
	return nil, constant.ErrNotFound
}
func (fakeImageRepoForPost) FindByKey(context.Context, string) (*model.Image, error) {
	return nil, constant.ErrNotFound
}
func (fakeImageRepoForPost) List(context.Context) ([]*model.Image, error) { return nil, nil }
func (fakeImageRepoForPost) ListByPost(context.Context, uint) ([]*model.Image, error) {
	return nil, nil
}
func (fakeImageRepoForPost) Delete(context.Context, string) error { return nil }
func (fakeImageRepoForPost) LinkToPost(context.Context, string, uint) (*model.Image, error) {
	return nil, errors.New("not implemented")
}
func (fakeImageRepoForPost) ListUnlinkedBefore(context.Context, time.Time) ([]*model.Image, error) {
	return nil, nil
}

func newTestService() (*Service, *fakePostRepo) {
	cats := newFakeCatRepo()
	tags := newFakeTagRepoForPost()
	postRepo := newFakePostRepo(cats, tags)
	taxonomySvc := taxonomy.NewService(cats, tags, postRepo)
	return NewService(postRepo, fakeImageRepoForPost{}, taxonomySvc), postRepo
}

// --- 测试 ---

var postSlugPattern = regexp.MustCompile(`^hello-world-\d+$`)

func TestCreateDerivesFields(t *testing.T) {
	svc, _ := newTestService()

	content := "<p>" + strings.Repeat("word ", 250) + "</p>"
	catName := "Tech"
	tags := []string{"go", "web"}
	resp, err := svc.Create(context.Background(), &model.CreatePostRequest{
		Title:        "Hello World",
		Content:      content,
		CategoryName: &catName,
		Tags:         &tags,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	if resp.ReadTime != 2 {
		t.Errorf("readTime = %d, 期望 2 (250词)", resp.ReadTime)
	}
	if !postSlugPattern.MatchString(resp.Slug) {
		t.Errorf("slug = %q, 期望 hello-world-<数字>", resp.Slug)
	}
	if !strings.HasSuffix(resp.Excerpt, "...") {
		t.Errorf("摘要缺少省略号: %q", resp.Excerpt)
	}
	if utf8.RuneCountInString(resp.Excerpt) > 203 {
		t.Errorf("摘要超长: %d", utf8.RuneCountInString(resp.Excerpt))
	}
	if resp.Published {
		t.Error("默认不应发布")
	}
	if resp.Category == nil || resp.Category.Name != "Tech" {
		t.Error("分类未解析")
	}
	if len(resp.Tags) != 2 {
		t.Errorf("标签数 = %d, 期望 2", len(resp.Tags))
	}
}

func TestCreateDuplicateTitle(t *testing.T) {
	svc, _ := newTestService()

	req := &model.CreatePostRequest{Title: "Same Title", Content: "body"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	_, err := svc.Create(context.Background(), &model.CreatePostRequest{Title: "Same Title", Content: "other"})
	if !errors.Is(err, constant.ErrConflict) {
		t.Errorf("重复标题期望 ErrConflict, 得到 %v", err)
	}
}

func TestCreateKeepsExplicitExcerpt(t *testing.T) {
	svc, _ := newTestService()

	excerpt := "手写的摘要"
	resp, err := svc.Create(context.Background(), &model.CreatePostRequest{
		Title:   "Custom Excerpt",
		Content: strings.Repeat("word ", 300),
		Excerpt: &excerpt,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if resp.Excerpt != excerpt {
		t.Errorf("摘要被覆盖: %q", resp.Excerpt)
	}
}

func TestUpdateContentRederivesExcerptAndReadTime(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &model.CreatePostRequest{
		Title:   "Evolving Post",
		Content: "short body",
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	newContent := strings.Repeat("fresh ", 450)
	updated, err := svc.Update(context.Background(), created.ID, &model.UpdatePostRequest{
		Content: &newContent,
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	if updated.ReadTime != 3 {
		t.Errorf("readTime = %d, 期望 3 (450词)", updated.ReadTime)
	}
	if !strings.HasPrefix(updated.Excerpt, "fresh") {
		t.Errorf("摘要未随正文重新派生: %q", updated.Excerpt)
	}
	if updated.Title != "Evolving Post" {
		t.Error("未更新的字段不应变动")
	}
}

func TestUpdateContentWithExplicitExcerpt(t *testing.T) {
	svc, _ := newTestService()

	created, _ := svc.Create(context.Background(), &model.CreatePostRequest{
		Title:   "Pinned Excerpt",
		Content: "original",
	})

	newContent := strings.Repeat("changed ", 100)
	pinned := "固定摘要"
	updated, err := svc.Update(context.Background(), created.ID, &model.UpdatePostRequest{
		Content: &newContent,
		Excerpt: &pinned,
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Excerpt != pinned {
		t.Errorf("显式摘要被覆盖: %q", updated.Excerpt)
	}
}

func TestUpdateDuplicateTitle(t *testing.T) {
	svc, _ := newTestService()

	svc.Create(context.Background(), &model.CreatePostRequest{Title: "First", Content: "a"})
	second, _ := svc.Create(context.Background(), &model.CreatePostRequest{Title: "Second", Content: "b"})

	dup := "First"
	_, err := svc.Update(context.Background(), second.ID, &model.UpdatePostRequest{Title: &dup})
	if !errors.Is(err, constant.ErrConflict) {
		t.Errorf("重复标题期望 ErrConflict, 得到 %v", err)
	}
}

func TestUpdateClearCategory(t *testing.T) {
	svc, _ := newTestService()

	catName := "Tech"
	created, _ := svc.Create(context.Background(), &model.CreatePostRequest{
		Title:        "Categorized",
		Content:      "a",
		CategoryName: &catName,
	})
	if created.Category == nil {
		t.Fatal("创建时分类未生效")
	}

	empty := ""
	updated, err := svc.Update(context.Background(), created.ID, &model.UpdatePostRequest{CategoryName: &empty})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Category != nil {
		t.Error("空分类名应清空分类")
	}
}

func TestPublishIdempotentButAlwaysPersists(t *testing.T) {
	svc, repo := newTestService()

	created, _ := svc.Create(context.Background(), &model.CreatePostRequest{Title: "To Publish", Content: "a"})

	first, err := svc.Publish(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("首次发布失败: %v", err)
	}
	if !first.Published {
		t.Error("发布后 published 应为 true")
	}

	second, err := svc.Publish(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("重复发布失败: %v", err)
	}
	if !second.Published {
		t.Error("重复发布后 published 仍应为 true")
	}
	if repo.updateCnt != 2 {
		t.Errorf("两次发布应落库两次, 实际 %d", repo.updateCnt)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	created, _ := svc.Create(context.Background(), &model.CreatePostRequest{Title: "To Archive", Content: "a"})

	archived, err := svc.Archive(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("归档失败: %v", err)
	}
	if !archived.Archived {
		t.Error("归档后 archived 应为 true")
	}

	restored, err := svc.Unarchive(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("取消归档失败: %v", err)
	}
	if restored.Archived {
		t.Error("取消归档后 archived 应为 false")
	}
}

func TestGetPublishedBySlugHidesDraft(t *testing.T) {
	svc, _ := newTestService()

	created, _ := svc.Create(context.Background(), &model.CreatePostRequest{Title: "Hidden Draft", Content: "a"})

	if _, err := svc.GetPublishedBySlug(context.Background(), created.Slug); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("草稿对外应表现为未找到, 得到 %v", err)
	}

	svc.Publish(context.Background(), created.ID)
	if _, err := svc.GetPublishedBySlug(context.Background(), created.Slug); err != nil {
		t.Errorf("发布后应能按 slug 访问: %v", err)
	}
}

func TestListPageSizeCapped(t *testing.T) {
	svc, repo := newTestService()

	if _, err := svc.ListPublished(context.Background(), 1, 500, "", ""); err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if repo.lastOpts.PageSize != 50 {
		t.Errorf("单页条数 = %d, 期望被压到 50", repo.lastOpts.PageSize)
	}
	if !repo.lastOpts.PublishedOnly {
		t.Error("公开列表应只含已发布文章")
	}
}

func TestRecentlyUpdatedCapped(t *testing.T) {
	svc, repo := newTestService()

	if _, err := svc.RecentlyUpdated(context.Background(), 100); err != nil {
		t.Fatalf("最近更新列表失败: %v", err)
	}
	if repo.lastOpts.PageSize != 20 {
		t.Errorf("条数 = %d, 期望被压到 20", repo.lastOpts.PageSize)
	}
	if !repo.lastOpts.SortByUpdated {
		t.Error("应按更新时间排序")
	}
	if !repo.lastOpts.PublishedOnly {
		t.Error("应只含已发布文章")
	}
}

func TestDeleteThenGetNotFound(t *testing.T) {
	svc, _ := newTestService()

	created, _ := svc.Create(context.Background(), &model.CreatePostRequest{Title: "Doomed", Content: "a"})
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("删除后期望 ErrNotFound, 得到 %v", err)
	}
}
