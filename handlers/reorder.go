package handlers

import (
	"net/http"

	"imagestore/models"

	"github.com/gin-gonic/gin"
)

type ReorderRequest struct {
	ImageID  uint64 `form:"image_id"`
	NewOrder *int   `form:"new_order"`
}

// ImageReorder is fire-and-forget: whatever goes wrong (malformed input,
// unknown image, someone else's album), the caller only ever sees
// {"success": false} with status 200
func ImageReorder(c *gin.Context, user *models.User) {
	success := false
	r := ReorderRequest{}
	if c.ShouldBind(&r) == nil && r.ImageID != 0 && r.NewOrder != nil {
		if image, err := models.ImageByID(r.ImageID); err == nil {
			if album, err := models.AlbumByID(image.AlbumID); err == nil && album.CanEdit(user) {
				success = models.ReorderImage(image.ID, *r.NewOrder) == nil
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": success})
}
