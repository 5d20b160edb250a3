// Package feed stores the activity stream: one row per (actor, verb, album)
// event. Consumers can subscribe to new actions for live delivery.
package feed

import (
	"sync"

	"imagestore/db"
)

type Action struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	ActorID   uint64 `gorm:"not null;index:actor_verb_target,priority:1"`
	Verb      string `gorm:"type:varchar(100);not null;index:actor_verb_target,priority:2"`
	AlbumID   uint64 `gorm:"not null;index:actor_verb_target,priority:3"`
}

type Listener func(Action)

var (
	listenersMutex sync.Mutex
	listeners      []Listener
)

func Init() {
	db.Instance.AutoMigrate(&Action{})
}

func Subscribe(l Listener) {
	listenersMutex.Lock()
	listeners = append(listeners, l)
	listenersMutex.Unlock()
}

func notify(action Action) {
	listenersMutex.Lock()
	defer listenersMutex.Unlock()
	for _, l := range listeners {
		go l(action)
	}
}

// Send records a new action and notifies subscribers
func Send(actorID uint64, verb string, albumID uint64) error {
	action := Action{
		ActorID: actorID,
		Verb:    verb,
		AlbumID: albumID,
	}
	if err := db.Instance.Create(&action).Error; err != nil {
		return err
	}
	notify(action)
	return nil
}

// Replace deletes any prior action with the same actor/verb/album and records
// a fresh one, so the feed shows a single consolidated event per album
func Replace(actorID uint64, verb string, albumID uint64) error {
	err := db.Instance.
		Where("actor_id = ? AND verb = ? AND album_id = ?", actorID, verb, albumID).
		Delete(&Action{}).Error
	if err != nil {
		return err
	}
	return Send(actorID, verb, albumID)
}

// DeleteForAlbum drops all actions targeting an album (album deletion cascade)
func DeleteForAlbum(albumID uint64) error {
	return db.Instance.Where("album_id = ?", albumID).Delete(&Action{}).Error
}

func Recent(limit int) (actions []Action, err error) {
	err = db.Instance.Order("created_at DESC, id DESC").Limit(limit).Find(&actions).Error
	return
}
