package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yatube/yatube/cmd/yatube/output"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

const seedPassword = "yatube-demo"

var seedPosts int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo content",
	Long: `Create the demo users leo and sam (password "yatube-demo"), the group
"demo" and a number of posts split between the two users.

Running it again reuses the users and the group and adds more posts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(loadConfig(cmd))
		if err != nil {
			return err
		}
		created, err := seed(db, seedPosts)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		output.Success("Added %d posts", created)
		output.Info("Log in as leo or sam with password %q", seedPassword)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedPosts, "posts", 15, "Number of posts to create")
	rootCmd.AddCommand(seedCmd)
}

// seed creates the demo users, group and posts, returns the number of posts created
func seed(db *gorm.DB, posts int) (int, error) {
	var authors []models.User
	for _, username := range []string{"leo", "sam"} {
		user, err := seedUser(db, username)
		if err != nil {
			return 0, err
		}
		authors = append(authors, *user)
	}

	group := models.Group{Title: "Demo", Slug: "demo", Description: "Posts created by yatube seed"}
	if err := db.Where(models.Group{Slug: group.Slug}).FirstOrCreate(&group).Error; err != nil {
		return 0, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < posts; i++ {
			post := models.Post{
				AuthorID: authors[i%len(authors)].ID,
				Text:     fmt.Sprintf("Demo post number %d", i+1),
			}
			// every other post goes to the group
			if i%2 == 0 {
				post.GroupID = &group.ID
			}
			if err := tx.Create(&post).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return posts, nil
}

func seedUser(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}
	return auth.CreateUser(db, username, username+"@yatube.local", seedPassword)
}
