package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"imagestore/config"
	"imagestore/db"
	"imagestore/feed"
	"imagestore/models"
	"imagestore/profile"
	"imagestore/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

var testRouter *gin.Engine

func TestMain(m *testing.M) {
	config.MYSQL_DSN = ""
	config.SQLITE_FILE = "file::memory:?cache=shared"
	dir, err := os.MkdirTemp("", "imagestore-handlers-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	config.DEFAULT_BUCKET_DIR = dir

	db.Init()
	models.Init()
	profile.Init()
	feed.Init()
	storage.Init()

	gin.SetMode(gin.TestMode)
	testRouter = gin.New()
	testRouter.Use(sessions.Sessions("token", cookie.NewStore([]byte("test-only"))))
	testRouter.GET("/image/view", ImageView)

	os.Exit(m.Run())
}

func seedAlbumWithImages(t *testing.T, username string, count int) (*models.Album, []models.Image) {
	t.Helper()
	user, err := models.UserCreate(username, username, "secret123")
	if err != nil {
		t.Fatalf("cannot create user: %v", err)
	}
	album := models.Album{UserID: &user.ID, Name: username, Public: true}
	if err = db.Instance.Create(&album).Error; err != nil {
		t.Fatalf("cannot create album: %v", err)
	}
	images := make([]models.Image, 0, count)
	for i := 0; i < count; i++ {
		image := models.Image{AlbumID: album.ID, UserID: user.ID, Name: "photo.jpg", Order: i}
		if err = db.Instance.Create(&image).Error; err != nil {
			t.Fatalf("cannot create image: %v", err)
		}
		images = append(images, image)
	}
	return &album, images
}

func getImageView(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/image/view?"+query, nil)
	testRouter.ServeHTTP(w, req)
	return w
}

func TestImageViewInFilteredAlbum(t *testing.T) {
	album, images := seedAlbumWithImages(t, "view-member", 3)

	w := getImageView(t, "id="+strconv.FormatUint(images[1].ID, 10)+
		"&album_id="+strconv.FormatUint(album.ID, 10))
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	var response struct {
		Index int64 `json:"index"`
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if response.Index != 1 || response.Count != 3 {
		t.Errorf("got index %d of %d, want 1 of 3", response.Index, response.Count)
	}
}

// An id outside the filtered album must not report a position computed
// against the other album's siblings
func TestImageViewOutsideFilteredAlbum(t *testing.T) {
	_, images := seedAlbumWithImages(t, "view-outside-a", 2)
	other, _ := seedAlbumWithImages(t, "view-outside-b", 5)

	w := getImageView(t, "id="+strconv.FormatUint(images[0].ID, 10)+
		"&album_id="+strconv.FormatUint(other.ID, 10))
	if w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", w.Code)
	}
}
