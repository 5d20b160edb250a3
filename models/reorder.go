package models

import (
	"imagestore/db"

	"gorm.io/gorm"
)

// ReorderImage moves an image to newOrder within its album. The images that
// currently sit between the old and the new position are re-paired with the
// order values that range previously held, which shifts each of them by
// exactly one slot - the multiset of occupied order values never changes.
//
// The whole sequence runs inside one transaction scoped to the album, so a
// failed move leaves the ordering untouched.
func ReorderImage(imageID uint64, newOrder int) error {
	image := Image{}
	if err := db.Instance.First(&image, imageID).Error; err != nil {
		return err
	}
	prevOrder := image.Order
	if newOrder == prevOrder {
		return nil
	}
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		var orders []int
		var siblings []Image
		if newOrder > prevOrder {
			// Moving later: everyone in between steps one slot earlier
			if err := tx.Model(&Image{}).
				Where("album_id = ? AND `order` >= ? AND `order` < ?", image.AlbumID, prevOrder, newOrder).
				Order("`order` ASC, id ASC").
				Pluck("order", &orders).Error; err != nil {
				return err
			}
			if err := tx.
				Where("album_id = ? AND `order` > ? AND `order` <= ?", image.AlbumID, prevOrder, newOrder).
				Order("`order` ASC, id ASC").
				Find(&siblings).Error; err != nil {
				return err
			}
		} else {
			// Moving earlier: everyone in between steps one slot later
			if err := tx.Model(&Image{}).
				Where("album_id = ? AND `order` <= ? AND `order` > ?", image.AlbumID, prevOrder, newOrder).
				Order("`order` ASC, id ASC").
				Pluck("order", &orders).Error; err != nil {
				return err
			}
			if err := tx.
				Where("album_id = ? AND `order` < ? AND `order` >= ?", image.AlbumID, prevOrder, newOrder).
				Order("`order` ASC, id ASC").
				Find(&siblings).Error; err != nil {
				return err
			}
		}
		n := len(orders)
		if len(siblings) < n {
			n = len(siblings)
		}
		for i := 0; i < n; i++ {
			if err := tx.Model(&Image{}).Where("id = ?", siblings[i].ID).
				Update("order", orders[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&Image{}).Where("id = ?", image.ID).
			Update("order", newOrder).Error
	})
}
