package models

import (
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"imagestore/config"
	"imagestore/db"
	"imagestore/feed"
	"imagestore/profile"
	"imagestore/storage"
	"imagestore/utils"

	"gorm.io/gorm"
)

type Image struct {
	ID          uint64 `gorm:"primaryKey"`
	AlbumID     uint64 `gorm:"not null;index:album_position,priority:1"`
	Album       Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID      uint64 `gorm:"not null;index"`
	User        User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   int64
	UpdatedAt   int64
	BucketID    uint64
	Bucket      storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Title       string         `gorm:"type:varchar(100)"`
	Name        string         `gorm:"type:varchar(300)"` // original file name
	MimeType    string         `gorm:"type:varchar(50)"`
	Size        int64
	ThumbSize   int64
	ThumbWidth  uint16
	ThumbHeight uint16
	Order       int `gorm:"not null;default:0;index:album_position,priority:2"`
}

func ImageByID(id uint64) (image Image, err error) {
	err = db.Instance.Joins("Bucket").First(&image, "images.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return
}

func (img *Image) GetPath() string {
	return img.GetPathOrThumb(false)
}

func (img *Image) GetThumbPath() string {
	return img.GetPathOrThumb(true)
}

// GetPathOrThumb returns the blob path inside the album directory, e.g.
// user_3/album_17/42.jpg (thumbs are always JPEG)
func (img *Image) GetPathOrThumb(thumb bool) string {
	path := "user_" + strconv.FormatUint(img.UserID, 10) +
		"/album_" + strconv.FormatUint(img.AlbumID, 10) +
		"/" + strconv.FormatUint(img.ID, 10)
	if thumb {
		path += "_thumb.jpg"
	} else {
		path += strings.ToLower(filepath.Ext(img.Name))
	}
	return path
}

func (img *Image) BeforeSave(tx *gorm.DB) (err error) {
	// Restrict the characters in Name
	var name strings.Builder
	for i, c := range img.Name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			name.WriteRune(c)
		} else {
			// Replace all other characters with '_' (underscore)
			name.WriteString("_")
		}
	}
	img.Name = name.String()
	return
}

// CreateImage persists a new image for the user, gated by the per-user image
// quota. The image receives the next free order slot in the album and the
// activity feed gets one consolidated event per album.
func CreateImage(user *User, album *Album, image *Image) error {
	prof, err := profile.ForUser(user.ID)
	if err != nil {
		return err
	}
	if prof.ImageCount >= config.MAX_IMAGES_PER_USER {
		return ErrQuotaExceeded
	}
	if err = profile.IncrementImages(user.ID); err != nil {
		return err
	}
	// Next order slot: max(order)+1, or 0 for the first image. Gaps left by
	// deleted images are not reused.
	var maxOrder *int
	db.Instance.Model(&Image{}).Where("album_id = ?", album.ID).
		Select("max(`order`)").Scan(&maxOrder)
	if maxOrder != nil {
		image.Order = *maxOrder + 1
	} else {
		image.Order = 0
	}
	image.UserID = user.ID
	image.AlbumID = album.ID
	if image.BucketID == 0 {
		image.BucketID = storage.GetDefaultStorage().GetBucket().ID
	}
	if err = db.Instance.Create(image).Error; err != nil {
		return err
	}
	album.Touch()

	var count int64
	db.Instance.Model(&Image{}).Where("album_id = ?", album.ID).Count(&count)
	if count == 1 {
		return feed.Send(user.ID, config.ALBUM_ADD_VERB, album.ID)
	}
	return feed.Replace(user.ID, config.ALBUM_ADD_IMAGE_VERB, album.ID)
}

// DeleteImage releases the blob storage, removes the record and lowers the
// owner's image counter by one. Albums using the image as head fall back to
// no head.
func DeleteImage(image *Image) error {
	image.releaseBlobs()
	db.Instance.Model(&Album{}).Where("head_id = ?", image.ID).Update("head_id", nil)
	db.Instance.Where("image_id = ?", image.ID).Delete(&ImageTag{})
	if err := db.Instance.Delete(image).Error; err != nil {
		return err
	}
	return profile.DecrementImages(image.UserID, 1)
}

// DeleteAlbum deletes every contained image (blobs, records, counters), the
// album's storage directory, its feed actions and finally the album itself
func DeleteAlbum(album *Album) error {
	var images []Image
	if err := db.Instance.Joins("Bucket").Where("album_id = ?", album.ID).Find(&images).Error; err != nil {
		return err
	}
	// The head reference would block the image deletes otherwise
	db.Instance.Model(album).Update("head_id", nil)
	for i := range images {
		if err := DeleteImage(&images[i]); err != nil {
			return err
		}
	}
	if err := storage.GetDefaultStorage().DeleteDir(album.Path()); err != nil {
		log.Printf("Album %d: cannot remove directory: %v", album.ID, err)
	}
	if err := feed.DeleteForAlbum(album.ID); err != nil {
		return err
	}
	db.Instance.Where("album_id = ?", album.ID).Delete(&Comment{})
	db.Instance.Where("album_id = ?", album.ID).Delete(&AlbumShare{})
	return db.Instance.Delete(album).Error
}

func (img *Image) releaseBlobs() {
	store := storage.StorageFrom(&img.Bucket)
	if store == nil {
		log.Printf("Image: %d, error: storage is nil", img.ID)
		return
	}
	if err := store.Delete(img.GetThumbPath()); err != nil {
		log.Printf("Image: %d, thumb delete error: %s", img.ID, err.Error())
	}
	if err := store.Delete(img.GetPath()); err != nil {
		log.Printf("Image: %d, delete error: %s", img.ID, err.Error())
	}
	// Remote (S3) as well
	if err := store.DeleteRemoteFile(img.GetThumbPath()); err != nil {
		log.Printf("Remote Image: %d, thumb delete error: %s", img.ID, err.Error())
	}
	if err := store.DeleteRemoteFile(img.GetPath()); err != nil {
		log.Printf("Remote Image: %d, delete error: %s", img.ID, err.Error())
	}
}

// EnsureThumb creates and stores the JPEG thumbnail if it is missing
func (img *Image) EnsureThumb() error {
	if img.ThumbSize > 0 {
		return nil
	}
	if img.Bucket.ID != img.BucketID {
		db.Instance.Preload("Bucket").First(img)
	}
	store := storage.StorageFrom(&img.Bucket)
	if store == nil {
		return errors.New("storage not available")
	}
	if err := store.EnsureLocalFile(img.GetPath()); err != nil {
		return err
	}
	defer store.ReleaseLocalFile(img.GetPath())
	original := bytes.Buffer{}
	if _, err := store.Load(img.GetPath(), &original); err != nil {
		return err
	}
	thumb := bytes.Buffer{}
	result, err := utils.CreateThumb(uint(config.THUMB_SIZE), &original, &thumb)
	if err != nil {
		return err
	}
	if _, err = store.Save(img.GetThumbPath(), &thumb); err != nil {
		return err
	}
	img.ThumbSize = result.ThumbSize
	img.ThumbWidth = result.NewX
	img.ThumbHeight = result.NewY
	if err = db.Instance.Model(img).Updates(map[string]interface{}{
		"thumb_size":   img.ThumbSize,
		"thumb_width":  img.ThumbWidth,
		"thumb_height": img.ThumbHeight,
	}).Error; err != nil {
		return err
	}
	if err = store.UpdateFile(img.GetThumbPath(), "image/jpeg"); err != nil {
		log.Printf("Image %d: cannot upload thumbnail: %v", img.ID, err)
	}
	return nil
}
