package models

import (
	"errors"
	"strconv"
	"time"

	"imagestore/db"

	"gorm.io/gorm"
)

type Album struct {
	ID        uint64  `gorm:"primaryKey"`
	UserID    *uint64 `gorm:"index:user_album_order,priority:1"`
	User      *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(100);not null"`
	Public    bool   `gorm:"not null"`
	HeadID    *uint64
	Head      *Image    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Order     int       `gorm:"not null;default:0;index:user_album_order,priority:2"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func AlbumByID(id uint64) (album Album, err error) {
	err = db.Instance.First(&album, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return
}

// CanView enforces the visibility gate: a private album is visible to its
// owner and to moderators only
func (a *Album) CanView(viewer *User) bool {
	if a.Public {
		return true
	}
	if viewer == nil || viewer.ID == 0 {
		return false
	}
	if a.UserID != nil && *a.UserID == viewer.ID {
		return true
	}
	return viewer.CanModerateAlbums()
}

func (a *Album) CanEdit(viewer *User) bool {
	if viewer == nil || viewer.ID == 0 {
		return false
	}
	if a.UserID != nil && *a.UserID == viewer.ID {
		return true
	}
	return viewer.CanModerateAlbums()
}

// Path returns the storage directory holding the album's images, e.g.
// user_3/album_17
func (a *Album) Path() string {
	userID := uint64(0)
	if a.UserID != nil {
		userID = *a.UserID
	}
	return "user_" + strconv.FormatUint(userID, 10) + "/album_" + strconv.FormatUint(a.ID, 10)
}

// GetHead returns the head image, falling back to the first image in the
// album and persisting that choice
func (a *Album) GetHead() *Image {
	if a.HeadID != nil {
		head := Image{}
		if db.Instance.First(&head, *a.HeadID).Error == nil {
			return &head
		}
	}
	first := Image{}
	err := db.Instance.Where("album_id = ?", a.ID).Order("`order` ASC, id ASC").First(&first).Error
	if err != nil {
		return nil
	}
	a.HeadID = &first.ID
	db.Instance.Model(a).Update("head_id", first.ID)
	return &first
}

// HeadThumbnail returns a URL serving the head image thumb. Thumbnail
// creation is best effort - any failure yields the placeholder text.
func (a *Album) HeadThumbnail() string {
	head := a.GetHead()
	if head == nil {
		return "Empty album"
	}
	if err := head.EnsureThumb(); err != nil {
		return "Empty album"
	}
	return "/image/fetch?id=" + strconv.FormatUint(head.ID, 10) + "&thumb=1"
}

// Touch bumps the album's updated timestamp
func (a *Album) Touch() {
	db.Instance.Model(a).UpdateColumn("updated_at", time.Now().Unix())
}
