package models

import (
	"testing"

	"imagestore/db"

	"gorm.io/gorm"
)

func albumScope(albumID uint64) func() *gorm.DB {
	return func() *gorm.DB {
		return db.Instance.Model(&Image{}).Where("album_id = ?", albumID).Session(&gorm.Session{})
	}
}

func TestPositionMiddle(t *testing.T) {
	user := testUser(t, "nav-middle")
	album := testAlbum(t, user, "Middle", true)
	images := seedImages(t, album, user, []int{0, 1, 2, 3, 4})

	pos, err := Position(albumScope(album.ID), &images[2])
	if err != nil {
		t.Fatalf("position failed: %v", err)
	}
	if pos.Count != 5 || pos.Index != 2 {
		t.Errorf("got index %d of %d, want 2 of 5", pos.Index, pos.Count)
	}
	if pos.Next == nil || pos.Next.ID != images[3].ID {
		t.Errorf("wrong next neighbour: %+v", pos.Next)
	}
	if pos.Previous == nil || pos.Previous.ID != images[1].ID {
		t.Errorf("wrong previous neighbour: %+v", pos.Previous)
	}
}

func TestPositionEnds(t *testing.T) {
	user := testUser(t, "nav-ends")
	album := testAlbum(t, user, "Ends", true)
	images := seedImages(t, album, user, []int{0, 1, 2})

	first, err := Position(albumScope(album.ID), &images[0])
	if err != nil {
		t.Fatalf("position failed: %v", err)
	}
	if first.Previous != nil {
		t.Error("first image should have no previous neighbour")
	}
	if first.Index != 0 || first.Next == nil || first.Next.ID != images[1].ID {
		t.Errorf("wrong first position: %+v", first)
	}

	last, err := Position(albumScope(album.ID), &images[2])
	if err != nil {
		t.Fatalf("position failed: %v", err)
	}
	if last.Next != nil {
		t.Error("last image should have no next neighbour")
	}
	if last.Index != 2 || last.Previous == nil || last.Previous.ID != images[1].ID {
		t.Errorf("wrong last position: %+v", last)
	}
}

// Images sharing an order value are ranked by id, so every image still has a
// well-defined position
func TestPositionTieBreakOnID(t *testing.T) {
	user := testUser(t, "nav-ties")
	album := testAlbum(t, user, "Ties", true)
	images := seedImages(t, album, user, []int{1, 1, 1})

	for i := range images {
		pos, err := Position(albumScope(album.ID), &images[i])
		if err != nil {
			t.Fatalf("position failed: %v", err)
		}
		if pos.Index != int64(i) || pos.Count != 3 {
			t.Errorf("image %d: got index %d of %d, want %d of 3", i, pos.Index, pos.Count, i)
		}
	}
	mid, _ := Position(albumScope(album.ID), &images[1])
	if mid.Previous == nil || mid.Previous.ID != images[0].ID {
		t.Errorf("wrong previous under tie-break: %+v", mid.Previous)
	}
	if mid.Next == nil || mid.Next.ID != images[2].ID {
		t.Errorf("wrong next under tie-break: %+v", mid.Next)
	}
}

func TestPositionSingleImage(t *testing.T) {
	user := testUser(t, "nav-single")
	album := testAlbum(t, user, "Single", true)
	images := seedImages(t, album, user, []int{0})

	pos, err := Position(albumScope(album.ID), &images[0])
	if err != nil {
		t.Fatalf("position failed: %v", err)
	}
	if pos.Index != 0 || pos.Count != 1 || pos.Next != nil || pos.Previous != nil {
		t.Errorf("wrong position for single image: %+v", pos)
	}
}
