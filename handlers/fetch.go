package handlers

import (
	"net/http"
	"strconv"

	"imagestore/auth"
	"imagestore/models"
	"imagestore/storage"

	"github.com/gin-gonic/gin"
)

type ImageFetchRequest struct {
	ID    uint64 `form:"id" binding:"required"`
	Thumb uint   `form:"thumb"`
}

// ImageFetch serves the image payload (or its thumbnail). Access follows the
// album visibility gate.
func ImageFetch(c *gin.Context) {
	r := ImageFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	session := auth.LoadSession(c)
	viewer := session.User()
	image, err := models.ImageByID(r.ID)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	album, err := models.AlbumByID(image.AlbumID)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	if !album.CanView(&viewer) {
		NewResponder(c).Error(models.ErrForbidden)
		return
	}
	store := storage.StorageFrom(&image.Bucket)
	if store == nil {
		c.JSON(http.StatusInternalServerError, Response{Error: "storage not available"})
		return
	}
	path := image.GetPath()
	if r.Thumb == 1 {
		// Thumbnails are produced on first demand; fall back to the original
		// payload when that fails
		if err = image.EnsureThumb(); err == nil {
			path = image.GetThumbPath()
		}
	}
	if err = store.EnsureLocalFile(path); err != nil {
		c.JSON(http.StatusNotFound, Response{Error: "not found"})
		return
	}
	c.Header("cache-control", "private, max-age="+strconv.Itoa(30*86400))
	store.Serve(path, c.Request, c.Writer)
}
