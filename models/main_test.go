package models

import (
	"os"
	"testing"

	"imagestore/config"
	"imagestore/db"
	"imagestore/feed"
	"imagestore/profile"
	"imagestore/storage"
)

func TestMain(m *testing.M) {
	config.MYSQL_DSN = ""
	config.SQLITE_FILE = "file::memory:?cache=shared"
	dir, err := os.MkdirTemp("", "imagestore-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	config.DEFAULT_BUCKET_DIR = dir

	db.Init()
	Init()
	profile.Init()
	feed.Init()
	storage.Init()

	os.Exit(m.Run())
}

func testUser(t *testing.T, username string) *User {
	t.Helper()
	user, err := UserCreate(username, username, "secret123")
	if err != nil {
		t.Fatalf("cannot create user %s: %v", username, err)
	}
	return &user
}

func testAlbum(t *testing.T, user *User, name string, public bool) *Album {
	t.Helper()
	album := Album{UserID: &user.ID, Name: name, Public: public}
	if err := db.Instance.Create(&album).Error; err != nil {
		t.Fatalf("cannot create album %s: %v", name, err)
	}
	return &album
}

// seedImages inserts one image per given order value, bypassing the quota
func seedImages(t *testing.T, album *Album, user *User, orders []int) []Image {
	t.Helper()
	images := make([]Image, 0, len(orders))
	for _, order := range orders {
		image := Image{
			AlbumID: album.ID,
			UserID:  user.ID,
			Name:    "photo.jpg",
			Order:   order,
		}
		if err := db.Instance.Create(&image).Error; err != nil {
			t.Fatalf("cannot create image: %v", err)
		}
		images = append(images, image)
	}
	return images
}

// albumOrders returns (id, order) pairs sorted by (order ASC, id ASC)
func albumOrders(t *testing.T, albumID uint64) (ids []uint64, orders []int) {
	t.Helper()
	var images []Image
	err := db.Instance.Where("album_id = ?", albumID).
		Order("`order` ASC, id ASC").Find(&images).Error
	if err != nil {
		t.Fatalf("cannot list album %d: %v", albumID, err)
	}
	for _, image := range images {
		ids = append(ids, image.ID)
		orders = append(orders, image.Order)
	}
	return
}
