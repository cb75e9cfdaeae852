package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
)

// ThumbSize is the longest side of generated thumbnails
const ThumbSize = 960

// MaxPixels limits width*height of accepted images, decoding allocates up to 8 bytes per pixel
const MaxPixels = 50_000_000

var (
	ErrNotImage      = errors.New("upload a valid image: the file is either not an image or a corrupted image")
	ErrImageTooLarge = errors.New("the image is too large, at most 50 megapixels are allowed")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Detect sniffs the content type of the data and returns it with the file extension to store it under
func Detect(data []byte) (mimeType, ext string, err error) {
	mtype := mimetype.Detect(data)
	for allowed, extension := range allowedTypes {
		if mtype.Is(allowed) {
			return allowed, extension, nil
		}
	}
	return mtype.String(), "", ErrNotImage
}

// Check reads the whole reader and verifies it holds a decodable image of an allowed type
func Check(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	_, _, err = checkData(data)
	return err
}

// checkData only reads the image header, so oversized images are refused before any pixel is decoded
func checkData(data []byte) (mimeType, ext string, err error) {
	if mimeType, ext, err = Detect(data); err != nil {
		return
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", ErrNotImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", "", ErrNotImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", "", ErrImageTooLarge
	}
	return mimeType, ext, nil
}

// CreateThumb writes a JPEG no larger than size x size
func CreateThumb(size uint, reader io.Reader, writer io.Writer) (int64, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	thumb := resize.Thumbnail(size, size, img, resize.Lanczos3)
	if err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 90}); err != nil {
		return 0, err
	}
	return io.Copy(writer, &buf)
}
