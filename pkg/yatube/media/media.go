// Package media stores post images and serves them back.
package media

import (
	"bytes"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yatube/yatube/pkg/yatube/config"
)

const postsDir = "posts"

// Service stores post images on a Storage backend and builds their public URLs
type Service struct {
	storage Storage
	baseURL string
}

func NewService(storage Storage, baseURL string) *Service {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Service{storage: storage, baseURL: baseURL}
}

// FromConfig picks the storage backend configured for the server
func FromConfig(cfg config.Config) (*Service, error) {
	switch cfg.MediaBackend {
	case config.MediaS3:
		storage, err := NewS3Storage(S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		return NewService(storage, cfg.MediaURL), nil
	case config.MediaDisk, "":
		return NewService(NewDiskStorage(cfg.MediaRoot), cfg.MediaURL), nil
	}
	return nil, errors.New("unknown media backend: " + cfg.MediaBackend)
}

// ThumbPath is where the thumbnail of an image is kept
func ThumbPath(imagePath string) string {
	dir, file := path.Split(imagePath)
	return dir + "thumbs/" + strings.TrimSuffix(file, path.Ext(file)) + ".jpg"
}

// URL is the public address of a stored file
func (s *Service) URL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return s.baseURL + filePath
}

// ThumbURL is the public address of the thumbnail of a stored image
func (s *Service) ThumbURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return s.URL(ThumbPath(imagePath))
}

// SaveImage validates and stores an image under a fresh name, along with its thumbnail.
// The returned path is what gets written to Post.Image.
func (s *Service) SaveImage(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	mimeType, ext, err := checkData(data)
	if err != nil {
		return "", err
	}
	var thumb bytes.Buffer
	if _, err := CreateThumb(ThumbSize, bytes.NewReader(data), &thumb); err != nil {
		return "", ErrNotImage
	}

	imagePath := postsDir + "/" + uuid.NewString() + ext
	if _, err := s.storage.Save(imagePath, bytes.NewReader(data), mimeType); err != nil {
		return "", err
	}
	if _, err := s.storage.Save(ThumbPath(imagePath), &thumb, "image/jpeg"); err != nil {
		s.Delete(imagePath)
		return "", err
	}
	return imagePath, nil
}

// SaveUpload stores a multipart upload, see SaveImage
func (s *Service) SaveUpload(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return s.SaveImage(file)
}

// RegenerateThumb rebuilds the thumbnail of a stored image from the original
func (s *Service) RegenerateThumb(imagePath string) error {
	var original bytes.Buffer
	if _, err := s.storage.Load(imagePath, &original); err != nil {
		return err
	}
	var thumb bytes.Buffer
	if _, err := CreateThumb(ThumbSize, &original, &thumb); err != nil {
		return err
	}
	_, err := s.storage.Save(ThumbPath(imagePath), &thumb, "image/jpeg")
	return err
}

// Delete removes an image and its thumbnail. Missing files are not an error.
func (s *Service) Delete(imagePath string) {
	if imagePath == "" {
		return
	}
	for _, p := range []string{imagePath, ThumbPath(imagePath)} {
		if err := s.storage.Delete(p); err != nil && !errors.Is(err, ErrNotFound) {
			log.Printf("Cannot delete media %s: %v", p, err)
		}
	}
}

// Serve handles GET /media/*path
func (s *Service) Serve(c *gin.Context) {
	filePath := strings.TrimPrefix(c.Param("path"), "/")
	if filePath == "" || strings.Contains(filePath, "..") {
		c.Status(http.StatusNotFound)
		return
	}
	s.storage.Serve(filePath, c.Request, c.Writer)
}
