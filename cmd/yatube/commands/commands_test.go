package commands

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/media"
	"github.com/yatube/yatube/pkg/yatube/models"
)

func testPNG(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	return buf.Bytes()
}

func TestDeleteUserRemovesImages(t *testing.T) {
	db, _ := setupTestDB(t)
	root := t.TempDir()
	mediaService := media.NewService(media.NewDiskStorage(root), "/media/")

	leo, err := auth.CreateUser(db, "leo", "", "password123")
	require.NoError(t, err)
	sam, err := auth.CreateUser(db, "sam", "", "password123")
	require.NoError(t, err)

	imagePath, err := mediaService.SaveImage(bytes.NewReader(testPNG(t)))
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Post{AuthorID: leo.ID, Text: "with image", Image: imagePath}).Error)
	require.NoError(t, db.Create(&models.Post{AuthorID: sam.ID, Text: "kept"}).Error)
	require.NoError(t, db.Create(&models.Follow{AuthorID: leo.ID, UserID: sam.ID}).Error)

	removed, err := deleteUser(db, mediaService, "leo")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, filepath.Join(root, imagePath))
	assert.NoFileExists(t, filepath.Join(root, media.ThumbPath(imagePath)))

	var users, posts, follows int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Follow{}).Count(&follows)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), posts)
	assert.Equal(t, int64(0), follows)

	_, err = deleteUser(db, mediaService, "leo")
	assert.EqualError(t, err, "user not found")
}

func TestRebuildThumbs(t *testing.T) {
	db, _ := setupTestDB(t)
	root := t.TempDir()
	storage := media.NewDiskStorage(root)
	mediaService := media.NewService(storage, "/media/")
	leo, err := auth.CreateUser(db, "leo", "", "password123")
	require.NoError(t, err)

	// an original without a thumbnail, as after copying media by hand
	_, err = storage.Save("posts/copied.png", bytes.NewReader(testPNG(t)), "image/png")
	require.NoError(t, err)
	db.Create(&models.Post{AuthorID: leo.ID, Text: "copied", Image: "posts/copied.png"})
	db.Create(&models.Post{AuthorID: leo.ID, Text: "lost", Image: "posts/lost.png"})
	db.Create(&models.Post{AuthorID: leo.ID, Text: "no image"})

	done, failed, err := rebuildThumbs(db, mediaService)
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, failed)
	assert.FileExists(t, filepath.Join(root, media.ThumbPath("posts/copied.png")))
}

func TestCommandErrorsAreReturnedOnce(t *testing.T) {
	_, dsn := setupTestDB(t)
	assert.True(t, rootCmd.SilenceErrors, "cobra must not print errors, Execute does")

	rootCmd.SetArgs([]string{"group", "delete", "missing", "--db", dsn})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		dbDSN = ""
	})
	err := rootCmd.Execute()
	assert.EqualError(t, err, "cannot delete group missing: group not found")
}
