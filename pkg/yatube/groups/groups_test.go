package groups

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	renderer, err := render.New(nil)
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	r.HTMLRender = renderer
	NewHandler(db).RegisterRoutes(r.Group(""))
	return r
}

func TestGroupPosts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	user := models.User{Username: "auth", PasswordHash: "x"}
	db.Create(&user)
	group := models.Group{Title: "Test group", Slug: "test-slug"}
	db.Create(&group)
	other := models.Group{Title: "Other", Slug: "other"}
	db.Create(&other)
	for i := 0; i < 12; i++ {
		db.Create(&models.Post{AuthorID: user.ID, Text: "in group", GroupID: &group.ID})
	}
	db.Create(&models.Post{AuthorID: user.ID, Text: "elsewhere", GroupID: &other.ID})
	db.Create(&models.Post{AuthorID: user.ID, Text: "no group"})

	req, _ := http.NewRequest("GET", "/group/test-slug/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `content="posts/group_list.html"`) {
		t.Error("Expected posts/group_list.html")
	}
	if n := strings.Count(body, "data-post-id="); n != 10 {
		t.Errorf("Expected 10 posts on the first page, got %d", n)
	}
	if strings.Contains(body, "elsewhere") || strings.Contains(body, "no group") {
		t.Error("Posts of other groups must not be listed")
	}

	req, _ = http.NewRequest("GET", "/group/test-slug/?page=2", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if n := strings.Count(resp.Body.String(), "data-post-id="); n != 2 {
		t.Errorf("Expected 2 posts on the second page, got %d", n)
	}
}

func TestGroupPostsUnknownSlug(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	req, _ := http.NewRequest("GET", "/group/nope/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `content="core/404.html"`) {
		t.Error("Expected core/404.html")
	}
}

func TestServiceCreate(t *testing.T) {
	svc := NewService(setupTestDB(t))

	group, err := svc.Create("Cats", "cats", "All about cats")
	require.NoError(t, err)
	assert.NotZero(t, group.ID)

	_, err = svc.Create("Cats again", "cats", "")
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = svc.Create("Bad", "not a slug", "")
	assert.ErrorIs(t, err, ErrInvalidSlug)

	_, err = svc.Create("  ", "empty-title", "")
	assert.ErrorIs(t, err, ErrTitleMissing)
}

func TestServiceListAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	cats, err := svc.Create("Cats", "cats", "")
	require.NoError(t, err)
	_, err = svc.Create("Animals", "animals", "")
	require.NoError(t, err)

	user := models.User{Username: "auth", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	post := models.Post{AuthorID: user.ID, Text: "meow", GroupID: &cats.ID}
	require.NoError(t, db.Create(&post).Error)

	stats, err := svc.List()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Animals", stats[0].Title)
	assert.Equal(t, int64(1), stats[1].PostCount)

	require.NoError(t, svc.Delete("cats"))
	assert.ErrorIs(t, svc.Delete("cats"), ErrNotFound)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.GroupID)
}
