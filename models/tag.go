package models

import (
	"errors"

	"imagestore/db"

	"gorm.io/gorm"
)

type Tag struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(250);index:uniq_tag_name,unique"`
}

type ImageTag struct {
	CreatedAt int64
	TagID     uint64 `gorm:"primaryKey"`
	Tag       Tag    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ImageID   uint64 `gorm:"primaryKey"`
	Image     Image  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func TagByName(name string) (tag Tag, err error) {
	err = db.Instance.First(&tag, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return
}

// SetImageTags replaces the image's tags with the given names, creating any
// tag seen for the first time
func SetImageTags(image *Image, names []string) error {
	if err := db.Instance.Where("image_id = ?", image.ID).Delete(&ImageTag{}).Error; err != nil {
		return err
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		tag := Tag{}
		if err := db.Instance.Where(Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		join := ImageTag{TagID: tag.ID, ImageID: image.ID}
		if err := db.Instance.FirstOrCreate(&join).Error; err != nil {
			return err
		}
	}
	return nil
}

// ImageTagNames returns the image's tag names, alphabetically
func ImageTagNames(imageID uint64) (names []string, err error) {
	err = db.Instance.Table("tags").Select("tags.name").
		Joins("join image_tags on image_tags.tag_id = tags.id").
		Where("image_tags.image_id = ?", imageID).
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	return
}
