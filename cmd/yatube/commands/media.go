package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yatube/yatube/cmd/yatube/output"
	"github.com/yatube/yatube/pkg/yatube/media"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Maintain uploaded images",
}

var mediaThumbsCmd = &cobra.Command{
	Use:   "thumbs",
	Short: "Rebuild thumbnails of all post images",
	Long: `Rebuild the thumbnail of every post image from the stored original,
e.g. after copying media to another backend.

Examples:
  yatube media thumbs
  MEDIA_BACKEND=s3 S3_BUCKET=yatube yatube media thumbs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		mediaService, err := media.FromConfig(cfg)
		if err != nil {
			return err
		}
		done, failed, err := rebuildThumbs(db, mediaService)
		if err != nil {
			return err
		}
		output.Success("Rebuilt %d thumbnails", done)
		if failed > 0 {
			return fmt.Errorf("%d thumbnails could not be rebuilt", failed)
		}
		return nil
	},
}

func init() {
	mediaCmd.AddCommand(mediaThumbsCmd)
	rootCmd.AddCommand(mediaCmd)
}

// rebuildThumbs keeps going past broken images and reports how many failed
func rebuildThumbs(db *gorm.DB, mediaService *media.Service) (done, failed int, err error) {
	var images []string
	err = db.Model(&models.Post{}).Where("image <> ?", "").Order("id").Pluck("image", &images).Error
	if err != nil {
		return 0, 0, err
	}
	for _, image := range images {
		err := mediaService.RegenerateThumb(image)
		switch {
		case errors.Is(err, media.ErrNotFound):
			output.Warning("%s: original is missing", image)
			failed++
		case err != nil:
			output.Warning("%s: %v", image, err)
			failed++
		default:
			done++
		}
	}
	return done, failed, nil
}
