package models

import (
	"errors"
	"testing"

	"imagestore/config"
	"imagestore/db"
	"imagestore/feed"
	"imagestore/profile"
)

func createImage(t *testing.T, user *User, album *Album) *Image {
	t.Helper()
	image := Image{Name: "upload.jpg", Title: "Upload"}
	if err := CreateImage(user, album, &image); err != nil {
		t.Fatalf("cannot create image: %v", err)
	}
	return &image
}

func imageCount(t *testing.T, userID uint64) int {
	t.Helper()
	prof, err := profile.ForUser(userID)
	if err != nil {
		t.Fatalf("cannot load profile: %v", err)
	}
	return prof.ImageCount
}

func TestCreateImageAssignsNextOrder(t *testing.T) {
	user := testUser(t, "create-order")
	album := testAlbum(t, user, "Orders", true)

	first := createImage(t, user, album)
	if first.Order != 0 {
		t.Errorf("first image got order %d, want 0", first.Order)
	}
	second := createImage(t, user, album)
	if second.Order != 1 {
		t.Errorf("second image got order %d, want 1", second.Order)
	}
	// Gaps are not reused: deleting the first image leaves slot 0 free but
	// the next image still goes after the maximum
	if err := DeleteImage(first); err != nil {
		t.Fatalf("cannot delete image: %v", err)
	}
	third := createImage(t, user, album)
	if third.Order != 2 {
		t.Errorf("image after delete got order %d, want 2", third.Order)
	}
}

func TestCreateImageQuota(t *testing.T) {
	saved := config.MAX_IMAGES_PER_USER
	config.MAX_IMAGES_PER_USER = 2
	defer func() { config.MAX_IMAGES_PER_USER = saved }()

	user := testUser(t, "quota-user")
	album := testAlbum(t, user, "Quota", true)
	createImage(t, user, album)
	createImage(t, user, album)

	image := Image{Name: "over.jpg"}
	err := CreateImage(user, album, &image)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("got %v, want ErrQuotaExceeded", err)
	}
	if got := imageCount(t, user.ID); got != 2 {
		t.Errorf("counter moved on a rejected upload: %d", got)
	}
	var count int64
	db.Instance.Model(&Image{}).Where("album_id = ?", album.ID).Count(&count)
	if count != 2 {
		t.Errorf("rejected upload left %d images, want 2", count)
	}
}

func TestCreateImageCountsAcrossAlbums(t *testing.T) {
	saved := config.MAX_IMAGES_PER_USER
	config.MAX_IMAGES_PER_USER = 2
	defer func() { config.MAX_IMAGES_PER_USER = saved }()

	user := testUser(t, "quota-across")
	first := testAlbum(t, user, "First", true)
	second := testAlbum(t, user, "Second", true)
	createImage(t, user, first)
	createImage(t, user, second)

	image := Image{Name: "over.jpg"}
	if err := CreateImage(user, second, &image); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("got %v, want ErrQuotaExceeded", err)
	}
}

func TestFeedConsolidation(t *testing.T) {
	user := testUser(t, "feed-user")
	album := testAlbum(t, user, "Feed", true)
	createImage(t, user, album)
	createImage(t, user, album)
	createImage(t, user, album)

	var actions []feed.Action
	err := db.Instance.Where("album_id = ?", album.ID).Find(&actions).Error
	if err != nil {
		t.Fatalf("cannot list actions: %v", err)
	}
	// One creation event plus one consolidated add-images event
	verbs := map[string]int{}
	for _, action := range actions {
		verbs[action.Verb]++
	}
	if verbs[config.ALBUM_ADD_VERB] != 1 {
		t.Errorf("got %d creation events, want 1", verbs[config.ALBUM_ADD_VERB])
	}
	if verbs[config.ALBUM_ADD_IMAGE_VERB] != 1 {
		t.Errorf("got %d add-images events, want 1", verbs[config.ALBUM_ADD_IMAGE_VERB])
	}
}

func TestDeleteImageDecrementsCounter(t *testing.T) {
	user := testUser(t, "delete-counter")
	album := testAlbum(t, user, "DeleteOne", true)
	image := createImage(t, user, album)
	before := imageCount(t, user.ID)

	if err := DeleteImage(image); err != nil {
		t.Fatalf("cannot delete image: %v", err)
	}
	if got := imageCount(t, user.ID); got != before-1 {
		t.Errorf("counter went %d -> %d, want %d", before, got, before-1)
	}
	if _, err := ImageByID(image.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted image still loads: %v", err)
	}
}

func TestDeleteAlbumCascade(t *testing.T) {
	user := testUser(t, "delete-cascade")
	album := testAlbum(t, user, "Cascade", true)
	createImage(t, user, album)
	createImage(t, user, album)
	createImage(t, user, album)
	album.GetHead() // persist a head reference, the cascade must clear it
	before := imageCount(t, user.ID)

	if err := DeleteAlbum(album); err != nil {
		t.Fatalf("cannot delete album: %v", err)
	}
	if got := imageCount(t, user.ID); got != before-3 {
		t.Errorf("counter went %d -> %d, want %d", before, got, before-3)
	}
	var imageRows, actionRows int64
	db.Instance.Model(&Image{}).Where("album_id = ?", album.ID).Count(&imageRows)
	db.Instance.Model(&feed.Action{}).Where("album_id = ?", album.ID).Count(&actionRows)
	if imageRows != 0 {
		t.Errorf("%d images survived the cascade", imageRows)
	}
	if actionRows != 0 {
		t.Errorf("%d feed actions survived the cascade", actionRows)
	}
	if _, err := AlbumByID(album.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted album still loads: %v", err)
	}
}

func TestDecrementMissingProfileIsNoOp(t *testing.T) {
	if err := profile.DecrementImages(88888888, 1); err != nil {
		t.Errorf("decrement of a missing counter row errored: %v", err)
	}
}

// The public flag must survive the insert-and-reload round trip for both
// values, or the visibility gate has nothing to work with
func TestAlbumPublicFlagRoundTrip(t *testing.T) {
	user := testUser(t, "flag-roundtrip")
	private := testAlbum(t, user, "Hidden", false)
	public := testAlbum(t, user, "Shown", true)

	reloaded, err := AlbumByID(private.ID)
	if err != nil {
		t.Fatalf("cannot reload album: %v", err)
	}
	if reloaded.Public {
		t.Error("private album persisted as public")
	}
	reloaded, err = AlbumByID(public.ID)
	if err != nil {
		t.Fatalf("cannot reload album: %v", err)
	}
	if !reloaded.Public {
		t.Error("public album persisted as private")
	}
}

func TestAlbumVisibility(t *testing.T) {
	owner := testUser(t, "vis-owner")
	other := testUser(t, "vis-other")
	moderator := testUser(t, "vis-moderator")
	if err := db.Instance.Create(&Grant{UserID: moderator.ID, GrantorID: owner.ID, Permission: PermissionModerateAlbums}).Error; err != nil {
		t.Fatalf("cannot grant: %v", err)
	}
	reloaded, err := UserLogin("vis-moderator", "secret123")
	if err != nil {
		t.Fatalf("cannot reload moderator: %v", err)
	}
	private := testAlbum(t, owner, "Private", false)
	public := testAlbum(t, owner, "Public", true)

	cases := []struct {
		name   string
		album  *Album
		viewer *User
		want   bool
	}{
		{"public anonymous", public, nil, true},
		{"public other", public, other, true},
		{"private anonymous", private, nil, false},
		{"private other", private, other, false},
		{"private owner", private, owner, true},
		{"private moderator", private, &reloaded, true},
	}
	for _, tc := range cases {
		if got := tc.album.CanView(tc.viewer); got != tc.want {
			t.Errorf("%s: CanView = %v, want %v", tc.name, got, tc.want)
		}
	}
	if private.CanEdit(other) {
		t.Error("non-owner may edit a private album")
	}
	if !private.CanEdit(&reloaded) {
		t.Error("moderator may not edit")
	}
	if public.CanEdit(nil) {
		t.Error("anonymous viewer may edit")
	}
}

func TestAlbumHeadThumbnailPlaceholder(t *testing.T) {
	user := testUser(t, "head-empty")
	album := testAlbum(t, user, "Empty", true)
	if got := album.HeadThumbnail(); got != "Empty album" {
		t.Errorf("empty album thumbnail = %q, want placeholder", got)
	}
}
