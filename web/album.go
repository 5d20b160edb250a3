package web

import (
	"net/http"
	"time"

	"imagestore/db"
	"imagestore/handlers"
	"imagestore/models"
	"imagestore/utils"

	"github.com/gin-gonic/gin"
)

const presignValidity = 4 * time.Hour

// AlbumView renders the public gallery page for a shared album. With
// ?format=json the same data is returned as JSON.
func AlbumView(c *gin.Context) {
	token := c.Param("token")
	share, err := models.ShareByToken(token)
	if err != nil {
		c.JSON(http.StatusNotFound, handlers.Response{Error: "not found"})
		return
	}
	album := share.Album
	var images []models.Image
	err = db.Instance.Joins("Bucket").Where("album_id = ?", album.ID).
		Order("`order` ASC, id ASC").
		Find(&images).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	ownerName := ""
	if album.UserID != nil {
		owner := models.User{}
		if db.Instance.First(&owner, *album.UserID).Error == nil {
			ownerName = "@" + owner.Username
		}
	}
	var createdMin, createdMax int64
	result := []gin.H{}
	for i := range images {
		if createdMin == 0 || images[i].CreatedAt < createdMin {
			createdMin = images[i].CreatedAt
		}
		if images[i].CreatedAt > createdMax {
			createdMax = images[i].CreatedAt
		}
		result = append(result, gin.H{
			"id":    images[i].ID,
			"title": images[i].Title,
			"src":   imageURI(&images[i], false),
			"thumb": imageURI(&images[i], true),
		})
	}
	data := gin.H{
		"ownerName": ownerName,
		"subtitle":  utils.GetDatesString(createdMin, createdMax),
		"name":      album.Name,
		"images":    result,
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, data)
		return
	}
	c.HTML(http.StatusOK, "album_view.tmpl", data)
}

// imageURI prefers a presigned S3 link so the gallery page doesn't proxy the
// payload through us
func imageURI(image *models.Image, thumb bool) string {
	path := image.GetPath()
	if thumb && image.ThumbSize > 0 {
		path = image.GetThumbPath()
	}
	if image.Bucket.IsS3() {
		if uri := image.Bucket.CreateS3DownloadURI(path, presignValidity); uri != "" {
			return uri
		}
	}
	uri := "/image/fetch?id=" + formatID(image.ID)
	if thumb {
		uri += "&thumb=1"
	}
	return uri
}
