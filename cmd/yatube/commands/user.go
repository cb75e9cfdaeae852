package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yatube/yatube/cmd/yatube/output"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/media"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

var errUserNotFound = errors.New("user not found")

var (
	userPassword string
	userEmail    string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long: `Manage users.

Subcommands:
  create  - Create a user
  delete  - Delete a user with their posts, comments, follows and images`,
}

var userCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create a user",
	Long: `Create a user that can log in right away.

Examples:
  yatube user create leo --password s3cretpass --email leo@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(loadConfig(cmd))
		if err != nil {
			return err
		}
		user, err := auth.CreateUser(db, args[0], userEmail, userPassword)
		if err != nil {
			return fmt.Errorf("cannot create user: %w", err)
		}
		output.Success("Created user %s (ID: %d)", user.Username, user.ID)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete USERNAME",
	Short: "Delete a user",
	Long: `Delete a user together with their posts and the comments on them,
their own comments, follows in both directions and uploaded images.

Examples:
  yatube user delete leo`,
	Args: cobra.ExactArgs(1),
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
		images, err := deleteUser(db, mediaService, args[0])
		if err != nil {
			return fmt.Errorf("cannot delete user %s: %w", args[0], err)
		}
		output.Success("Deleted user %s", args[0])
		if images > 0 {
			output.Info("Removed %d images", images)
		}
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Password, at least 8 characters")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

// deleteUser removes the user's rows first, then the images they referenced
func deleteUser(db *gorm.DB, mediaService *media.Service, username string) (int, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if database.IsNotFound(err) {
		return 0, errUserNotFound
	} else if err != nil {
		return 0, err
	}
	images, err := models.DeleteUser(db, user.ID)
	if err != nil {
		return 0, err
	}
	for _, image := range images {
		mediaService.Delete(image)
	}
	return len(images), nil
}
