package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"imagestore/auth"
	"imagestore/config"
	"imagestore/db"
	"imagestore/models"
	"imagestore/storage"

	"github.com/gin-gonic/gin"
)

type ImageInfo struct {
	ID      uint64 `json:"id"`
	Album   uint64 `json:"album_id"`
	Owner   uint64 `json:"owner"`
	Title   string `json:"title"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
	Created int64  `json:"created"`
	Size    int64  `json:"size"`
}

func imageInfoFrom(image *models.Image) ImageInfo {
	return ImageInfo{
		ID:      image.ID,
		Album:   image.AlbumID,
		Owner:   image.UserID,
		Title:   image.Title,
		Name:    image.Name,
		Order:   image.Order,
		Created: image.CreatedAt,
		Size:    image.Size,
	}
}

func imageFilterFrom(c *gin.Context) models.ImageFilter {
	filter := models.ImageFilter{
		Tag:      c.Query("tag"),
		Username: c.Query("username"),
	}
	filter.AlbumID, _ = strconv.ParseUint(c.Query("album_id"), 10, 64)
	return filter
}

// ImageList returns images under the tag/username/album filters, in the
// album's manual order
func ImageList(c *gin.Context) {
	session := auth.LoadSession(c)
	viewer := session.User()
	filter := imageFilterFrom(c)
	scope, err := filter.Scope(&viewer)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	var images []models.Image
	err = scope().Order("`order` ASC, id ASC").
		Limit(config.IMAGES_ON_PAGE).
		Offset((page - 1) * config.IMAGES_ON_PAGE).
		Find(&images).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []ImageInfo{}
	for i := range images {
		result = append(result, imageInfoFrom(&images[i]))
	}
	c.JSON(http.StatusOK, result)
}

// ImageListMin is the compact, newest-first listing used by the front page
// strip; ?offset= skips over already rendered entries
func ImageListMin(c *gin.Context) {
	session := auth.LoadSession(c)
	viewer := session.User()
	filter := imageFilterFrom(c)
	scope, err := filter.Scope(&viewer)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	var images []models.Image
	err = scope().Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(config.IMAGES_ON_PAGE).
		Find(&images).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []ImageInfo{}
	for i := range images {
		result = append(result, imageInfoFrom(&images[i]))
	}
	c.JSON(http.StatusOK, gin.H{"offset": offset, "images": result})
}

// ImageListEx lists like ImageList but leaves out one image (the one already
// shown full-size)
func ImageListEx(c *gin.Context) {
	session := auth.LoadSession(c)
	viewer := session.User()
	filter := imageFilterFrom(c)
	scope, err := filter.Scope(&viewer)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	exclude, _ := strconv.ParseUint(c.DefaultQuery("exclude", "0"), 10, 64)
	tx := scope()
	if exclude != 0 {
		tx = tx.Where("images.id != ?", exclude)
	}
	var images []models.Image
	if err = tx.Order("`order` ASC, id ASC").Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []ImageInfo{}
	for i := range images {
		result = append(result, imageInfoFrom(&images[i]))
	}
	c.JSON(http.StatusOK, gin.H{"exclude": exclude, "images": result})
}

// ImageView returns one image with its tags and its neighbours under the
// same filter, for the prev/next navigation
func ImageView(c *gin.Context) {
	session := auth.LoadSession(c)
	viewer := session.User()
	id, _ := strconv.ParseUint(c.Query("id"), 10, 64)
	if id == 0 {
		c.JSON(http.StatusBadRequest, Response{Error: "id required"})
		return
	}
	filter := imageFilterFrom(c)
	scope, err := filter.Scope(&viewer)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	image, err := models.ImageByID(id)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	// The image must belong to the filtered set itself, otherwise its
	// position would be computed against unrelated siblings
	var member int64
	if err = scope().Where("images.id = ?", image.ID).Count(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if member == 0 {
		NewResponder(c).Error(models.ErrNotFound)
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
	position, err := models.Position(scope, &image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	tags, _ := models.ImageTagNames(image.ID)
	response := gin.H{
		"image": imageInfoFrom(&image),
		"tags":  tags,
		"index": position.Index,
		"count": position.Count,
	}
	if position.Next != nil {
		response["next"] = imageInfoFrom(position.Next)
	}
	if position.Previous != nil {
		response["previous"] = imageInfoFrom(position.Previous)
	}
	c.JSON(http.StatusOK, response)
}

// ImageCreate uploads a new image into an album, gated by the user's image
// quota
func ImageCreate(c *gin.Context, user *models.User) {
	responder := NewResponder(c)
	albumID, _ := strconv.ParseUint(c.PostForm("album_id"), 10, 64)
	if albumID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"album_id": "required"}})
		return
	}
	album, err := models.AlbumByID(albumID)
	if err != nil {
		responder.Error(err)
		return
	}
	if !album.CanEdit(user) {
		responder.Error(models.ErrForbidden)
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "required"}})
		return
	}
	image := models.Image{
		Title:    c.PostForm("title"),
		Name:     file.Filename,
		MimeType: file.Header.Get("Content-Type"),
	}
	if err = models.CreateImage(user, &album, &image); err != nil {
		responder.Error(err)
		return
	}
	// The record exists - store the payload under its final path
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}
	defer reader.Close()
	store := storage.StorageFrom(&image.Bucket)
	if store == nil {
		store = storage.GetDefaultStorage()
	}
	size, err := store.Save(image.GetPath(), reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}
	image.Size = size
	db.Instance.Model(&image).Update("size", size)
	if err = store.UpdateFile(image.GetPath(), image.MimeType); err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}
	if tags := c.PostForm("tags"); tags != "" {
		_ = models.SetImageTags(&image, splitTags(tags))
	}
	albumURL := "/image/list?album_id=" + strconv.FormatUint(album.ID, 10)
	responder.Success(albumURL, gin.H{"url": albumURL, "id": image.ID})
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ImageEdit mirrors the legacy edit form endpoint: a missing id, an unknown
// image or a caller who is not the album owner all answer 400 (JSON) or 404
// (plain), with no hint which of the three it was
func ImageEdit(c *gin.Context) {
	responder := NewResponder(c)
	session := auth.LoadSession(c)
	user := session.User()

	id, _ := strconv.ParseUint(c.PostForm("image_id"), 10, 64)
	if id == 0 {
		responder.Invalid()
		return
	}
	image, err := models.ImageByID(id)
	if err != nil {
		responder.Invalid()
		return
	}
	album, err := models.AlbumByID(image.AlbumID)
	if err != nil {
		responder.Invalid()
		return
	}
	if user.ID == 0 || album.UserID == nil || *album.UserID != user.ID {
		responder.Invalid()
		return
	}
	updates := map[string]interface{}{}
	if title, ok := c.GetPostForm("title"); ok {
		updates["title"] = title
	}
	if len(updates) > 0 {
		if err = db.Instance.Model(&image).Updates(updates).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"errors": err.Error(), "success": false})
			return
		}
	}
	if tags, ok := c.GetPostForm("tags"); ok {
		if err = models.SetImageTags(&image, splitTags(tags)); err != nil {
			c.JSON(http.StatusOK, gin.H{"errors": err.Error(), "success": false})
			return
		}
	}
	albumURL := "/image/list?album_id=" + strconv.FormatUint(image.AlbumID, 10)
	responder.Success(albumURL, gin.H{"success": true})
}

type ImageIDRequest struct {
	ImageID uint64 `form:"image_id" binding:"required"`
}

func ImageDelete(c *gin.Context, user *models.User) {
	r := ImageIDRequest{}
	responder := NewResponder(c)
	if err := c.ShouldBind(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	image, err := models.ImageByID(r.ImageID)
	if err != nil {
		responder.Error(err)
		return
	}
	// Like the album queryset filter: non-moderators only ever see their own
	if image.UserID != user.ID && !user.CanModerateAlbums() {
		responder.Error(models.ErrNotFound)
		return
	}
	if err = models.DeleteImage(&image); err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
		return
	}
	responder.Success("/album/list", gin.H{"success": true})
}
