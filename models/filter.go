package models

import (
	"imagestore/db"

	"gorm.io/gorm"
)

// ImageFilter scopes image listings by tag, owner and album, mirroring the
// listing URL parameters
type ImageFilter struct {
	Tag      string
	Username string
	AlbumID  uint64
}

// Scope validates the filter and returns a query builder over the matching
// images. Unknown tag or username is ErrNotFound; a private album that the
// viewer may not see is ErrForbidden (it does exist).
func (f *ImageFilter) Scope(viewer *User) (func() *gorm.DB, error) {
	var tagID uint64
	if f.Tag != "" {
		tag, err := TagByName(f.Tag)
		if err != nil {
			return nil, err
		}
		tagID = tag.ID
	}
	var userID uint64
	if f.Username != "" {
		user, err := UserByUsername(f.Username)
		if err != nil {
			return nil, err
		}
		userID = user.ID
	}
	if f.AlbumID != 0 {
		album, err := AlbumByID(f.AlbumID)
		if err != nil {
			return nil, err
		}
		if !album.CanView(viewer) {
			return nil, ErrForbidden
		}
	}
	return func() *gorm.DB {
		tx := db.Instance.Model(&Image{})
		if tagID != 0 {
			tx = tx.Joins("join image_tags on image_tags.image_id = images.id").
				Where("image_tags.tag_id = ?", tagID)
		}
		if userID != 0 {
			tx = tx.Where("images.user_id = ?", userID)
		}
		if f.AlbumID != 0 {
			tx = tx.Where("images.album_id = ?", f.AlbumID)
		}
		return tx
	}, nil
}
