// Package profile owns the per-user gallery counters. The gallery core only
// talks to it through Get/Increment/Decrement.
package profile

import (
	"imagestore/db"

	"gorm.io/gorm"
)

type Profile struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	UpdatedAt  int64
	UserID     uint64 `gorm:"index:uniq_profile_user,unique;not null"`
	ImageCount int    `gorm:"not null;default:0"`
}

func Init() {
	db.Instance.AutoMigrate(&Profile{})
}

// ForUser loads the counter row for the given user, creating it on first use
func ForUser(userID uint64) (p Profile, err error) {
	err = db.Instance.Where(Profile{UserID: userID}).FirstOrCreate(&p).Error
	return
}

func IncrementImages(userID uint64) error {
	return db.Instance.Model(&Profile{}).
		Where("user_id = ?", userID).
		Update("image_count", gorm.Expr("image_count + ?", 1)).Error
}

// DecrementImages lowers the counter by n. A user without a counter row is
// not an error - the update simply affects no rows.
func DecrementImages(userID uint64, n int) error {
	return db.Instance.Model(&Profile{}).
		Where("user_id = ? AND image_count >= ?", userID, n).
		Update("image_count", gorm.Expr("image_count - ?", n)).Error
}
