package models

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	// every pooled connection to :memory: would get its own empty database
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) User {
	user := User{Username: username, PasswordHash: "hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	tables := []string{"users", "groups", "posts", "comments", "follows"}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestStringRepresentations(t *testing.T) {
	group := Group{Title: "Test group"}
	if group.String() != "Test group" {
		t.Errorf("Expected group title, got %q", group.String())
	}

	post := Post{Text: "Тестовый пост длиннее пятнадцати символов"}
	if post.String() != "Тестовый пост д" {
		t.Errorf("Expected first 15 runes, got %q", post.String())
	}

	comment := Comment{Text: "short"}
	if comment.String() != "short" {
		t.Errorf("Expected full short text, got %q", comment.String())
	}
}

func TestUsernameUniqueness(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "auth")

	duplicate := User{Username: "auth", PasswordHash: "another"}
	if err := db.Create(&duplicate).Error; err == nil {
		t.Error("Expected error when creating user with duplicate username")
	}
}

func TestGroupSlugUniqueness(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&Group{Title: "One", Slug: "test-slug"})
	if err := db.Create(&Group{Title: "Two", Slug: "test-slug"}).Error; err == nil {
		t.Error("Expected error when creating group with duplicate slug")
	}
}

func TestValidSlug(t *testing.T) {
	cases := map[string]bool{
		"test-slug":  true,
		"under_ok":   true,
		"":           false,
		"with space": false,
		"slash/no":   false,
	}
	for slug, want := range cases {
		if got := ValidSlug(slug); got != want {
			t.Errorf("ValidSlug(%q) = %v, want %v", slug, got, want)
		}
	}
}

func TestFollowPairUniqueness(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author")
	follower := createTestUser(t, db, "follower")

	if err := db.Create(&Follow{AuthorID: author.ID, UserID: follower.ID}).Error; err != nil {
		t.Fatalf("Failed to create follow: %v", err)
	}
	if err := db.Create(&Follow{AuthorID: author.ID, UserID: follower.ID}).Error; err == nil {
		t.Error("Expected error when creating duplicate follow")
	}

	following, err := IsFollowing(db, follower.ID, author.ID)
	if err != nil || !following {
		t.Errorf("Expected follower to follow author, got %v (%v)", following, err)
	}
	following, _ = IsFollowing(db, author.ID, follower.ID)
	if following {
		t.Error("Follow must be directed")
	}
}

func TestNewestOrdering(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "auth")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		db.Create(&Post{AuthorID: user.ID, Text: "post", PubDate: base.Add(time.Duration(i) * time.Hour)})
	}

	var posts []Post
	if err := db.Scopes(Newest).Find(&posts).Error; err != nil {
		t.Fatalf("Failed to list posts: %v", err)
	}
	for i := 1; i < len(posts); i++ {
		if !posts[i-1].PubDate.After(posts[i].PubDate) {
			t.Fatalf("Expected strictly descending pub_date, got %v before %v", posts[i-1].PubDate, posts[i].PubDate)
		}
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "auth")
	post := Post{AuthorID: user.ID, Text: "post", Image: "posts/a.jpg"}
	db.Create(&post)
	other := Post{AuthorID: user.ID, Text: "other"}
	db.Create(&other)
	db.Create(&Comment{PostID: post.ID, AuthorID: user.ID, Text: "c1"})
	db.Create(&Comment{PostID: post.ID, AuthorID: user.ID, Text: "c2"})
	db.Create(&Comment{PostID: other.ID, AuthorID: user.ID, Text: "kept"})

	image, err := DeletePost(db, post.ID)
	if err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if image != "posts/a.jpg" {
		t.Errorf("Expected image path to be returned, got %q", image)
	}

	var count int64
	db.Model(&Comment{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 remaining comment, got %d", count)
	}
	db.Model(&Post{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 remaining post, got %d", count)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	db := setupTestDB(t)
	if _, err := DeletePost(db, 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteGroupNullsPosts(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "auth")
	group := Group{Title: "Group", Slug: "group"}
	db.Create(&group)
	post := Post{AuthorID: user.ID, Text: "post", GroupID: &group.ID}
	db.Create(&post)

	if err := DeleteGroup(db, group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	var loaded Post
	if err := db.First(&loaded, post.ID).Error; err != nil {
		t.Fatalf("Post must survive group deletion: %v", err)
	}
	if loaded.GroupID != nil {
		t.Errorf("Expected group to be NULL, got %d", *loaded.GroupID)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")

	post := Post{AuthorID: author.ID, Text: "post", Image: "posts/x.png"}
	db.Create(&post)
	readerPost := Post{AuthorID: reader.ID, Text: "reader post"}
	db.Create(&readerPost)
	db.Create(&Comment{PostID: post.ID, AuthorID: reader.ID, Text: "on author's post"})
	db.Create(&Comment{PostID: readerPost.ID, AuthorID: author.ID, Text: "by author"})
	db.Create(&Comment{PostID: readerPost.ID, AuthorID: reader.ID, Text: "kept"})
	db.Create(&Follow{AuthorID: author.ID, UserID: reader.ID})
	db.Create(&Follow{AuthorID: reader.ID, UserID: author.ID})

	images, err := DeleteUser(db, author.ID)
	if err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if len(images) != 1 || images[0] != "posts/x.png" {
		t.Errorf("Expected [posts/x.png], got %v", images)
	}

	var count int64
	db.Model(&Post{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 remaining post, got %d", count)
	}
	db.Model(&Comment{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 remaining comment, got %d", count)
	}
	db.Model(&Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no follows, got %d", count)
	}
}

func TestCountPostsByAuthor(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "auth")
	other := createTestUser(t, db, "other")
	for i := 0; i < 3; i++ {
		db.Create(&Post{AuthorID: user.ID, Text: "mine"})
	}
	db.Create(&Post{AuthorID: other.ID, Text: "theirs"})

	count, err := CountPostsByAuthor(db, user.ID)
	if err != nil {
		t.Fatalf("CountPostsByAuthor failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 posts, got %d", count)
	}
}
