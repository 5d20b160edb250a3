package models

import "gorm.io/gorm"

// ImagePosition describes where an image sits inside a filtered set of
// siblings under the (order ASC, id ASC) total order
type ImagePosition struct {
	Index    int64 // zero-based rank
	Count    int64
	Next     *Image // nil when the image is the last one
	Previous *Image // nil when the image is the first one
}

// Position computes the image's rank plus its direct neighbours. The scope
// function must build a fresh query over the sibling set on each call; the
// same scope drives listing, so both always agree on the order.
func Position(scope func() *gorm.DB, image *Image) (pos ImagePosition, err error) {
	if err = scope().Count(&pos.Count).Error; err != nil {
		return
	}
	err = scope().
		Where("`order` < ? OR (`order` = ? AND id < ?)", image.Order, image.Order, image.ID).
		Count(&pos.Index).Error
	if err != nil {
		return
	}
	if pos.Index < pos.Count-1 {
		next := Image{}
		err = scope().
			Where("`order` > ? OR (`order` = ? AND id > ?)", image.Order, image.Order, image.ID).
			Order("`order` ASC, id ASC").
			Limit(1).Find(&next).Error
		if err != nil {
			return
		}
		if next.ID != 0 {
			pos.Next = &next
		}
	}
	if pos.Index > 0 {
		previous := Image{}
		err = scope().
			Where("`order` < ? OR (`order` = ? AND id < ?)", image.Order, image.Order, image.ID).
			Order("`order` DESC, id DESC").
			Limit(1).Find(&previous).Error
		if err != nil {
			return
		}
		if previous.ID != 0 {
			pos.Previous = &previous
		}
	}
	return
}
