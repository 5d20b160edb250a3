// Package processing runs the background thumbnail pass: any image uploaded
// without a thumbnail gets one, a little after the upload settles.
package processing

import (
	"log"
	"time"

	"imagestore/db"
	"imagestore/models"
)

const (
	idleWait  = 30 * time.Second
	settleAge = 30 // seconds after upload before we touch the image
)

func getNextImageForProcessing(lastProcessedID uint64) (result models.Image) {
	db.Instance.
		Where("size > 0 AND thumb_size = 0 AND id > ? AND ? - created_at > ?",
			lastProcessedID, time.Now().Unix(), settleAge).
		Order("id ASC").Limit(1).Joins("Bucket").Find(&result)
	return
}

// processOneImage returns the image ID on success and 0 on error
func processOneImage(image *models.Image) uint64 {
	if err := image.EnsureThumb(); err != nil {
		log.Printf("Error creating thumbnail for image %d: %v", image.ID, err)
		return 0
	}
	return image.ID
}

func StartProcessing() {
	lastProcessedID := uint64(0)
	for {
		image := getNextImageForProcessing(lastProcessedID)
		if image.ID == 0 {
			// Nothing to process...
			time.Sleep(idleWait)
			lastProcessedID = 0
			continue
		}
		lastProcessedID = processOneImage(&image)
		if lastProcessedID == 0 {
			// An error occurred, wait a bit
			time.Sleep(idleWait)
		}
	}
}
