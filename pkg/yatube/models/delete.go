package models

import "gorm.io/gorm"

// Foreign key actions are declared in the model constraint tags, but SQLite only
// enforces them with PRAGMA foreign_keys=ON. The functions below apply the same
// actions explicitly so behaviour does not depend on the driver:
//
//	Post.author    -> User   CASCADE
//	Post.group     -> Group  SET NULL
//	Comment.post   -> Post   CASCADE
//	Comment.author -> User   CASCADE
//	Follow.author  -> User   CASCADE
//	Follow.user    -> User   CASCADE

// DeletePost removes a post with its comments.
// The image path of the removed post is returned so the caller can release the file.
func DeletePost(db *gorm.DB, id uint) (string, error) {
	var image string
	err := db.Transaction(func(tx *gorm.DB) error {
		var post Post
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		image = post.Image
		if err := tx.Where("post_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	return image, err
}

// DeleteGroup removes a group. Its posts stay, detached from any group.
func DeleteGroup(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var group Group
		if err := tx.First(&group, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&Post{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
}

// DeleteUser removes a user with everything they own: posts (and their comments),
// comments and follow relations in both directions.
// Image paths of the removed posts are returned.
func DeleteUser(db *gorm.DB, id uint) ([]string, error) {
	var images []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		var posts []Post
		if err := tx.Where("author_id = ?", id).Find(&posts).Error; err != nil {
			return err
		}
		postIDs := make([]uint, 0, len(posts))
		for _, p := range posts {
			postIDs = append(postIDs, p.ID)
			if p.Image != "" {
				images = append(images, p.Image)
			}
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&Post{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ? OR user_id = ?", id, id).Delete(&Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	return images, err
}
