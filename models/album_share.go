package models

import (
	"errors"

	"imagestore/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlbumShare struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UserID    uint64 `gorm:"not null"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AlbumID   uint64 `gorm:"not null"`
	Album     Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Token     string `gorm:"type:varchar(100);index:uniq_share_token,unique"`
}

func NewAlbumShare(userID, albumID uint64) AlbumShare {
	return AlbumShare{
		UserID:  userID,
		AlbumID: albumID,
		Token:   uuid.NewString(),
	}
}

func ShareByToken(token string) (share AlbumShare, err error) {
	err = db.Instance.Preload("Album").First(&share, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return
}
