package handlers

import (
	"net/http"
	"strconv"

	"imagestore/auth"
	"imagestore/config"
	"imagestore/db"
	"imagestore/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AlbumInfo struct {
	ID      uint64 `json:"id"`
	Owner   uint64 `json:"owner"`
	Name    string `json:"name"`
	Public  bool   `json:"public"`
	Head    uint64 `json:"head_id"`
	Thumb   string `json:"thumb"`
	Order   int    `json:"order"`
	Created int64  `json:"created"`
	Updated int64  `json:"updated"`
}

type AlbumCreateRequest struct {
	Name   string `form:"name" binding:"required"`
	Public *bool  `form:"public"`
	Order  int    `form:"order"`
}

type AlbumSaveRequest struct {
	AlbumID uint64  `form:"album_id" binding:"required"`
	Name    string  `form:"name"`
	Public  *bool   `form:"public"`
	Order   *int    `form:"order"`
	HeadID  *uint64 `form:"head_id"`
}

type AlbumIDRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
}

func albumInfoFrom(album *models.Album) AlbumInfo {
	info := AlbumInfo{
		ID:      album.ID,
		Name:    album.Name,
		Public:  album.Public,
		Order:   album.Order,
		Created: album.CreatedAt,
		Updated: album.UpdatedAt,
		Thumb:   album.HeadThumbnail(),
	}
	if album.UserID != nil {
		info.Owner = *album.UserID
	}
	if album.HeadID != nil {
		info.Head = *album.HeadID
	}
	return info
}

// AlbumList returns the public albums, newest grouping first by their manual
// order. With ?username= only that user's albums are returned (404 for an
// unknown username).
func AlbumList(c *gin.Context) {
	tx := db.Instance.Model(&models.Album{}).Where("public = ?", true)
	if username := c.Query("username"); username != "" {
		user, err := models.UserByUsername(username)
		if err != nil {
			NewResponder(c).Error(err)
			return
		}
		tx = tx.Where("user_id = ?", user.ID)
	}
	etag := db.Instance.Model(&models.Album{}).Select("max(updated_at)").Where("public = ?", true)
	if isNotModified(c, etag) {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	var albums []models.Album
	err := tx.Order("`order` ASC, created_at ASC, name ASC").
		Limit(config.ALBUMS_ON_PAGE).
		Offset((page - 1) * config.ALBUMS_ON_PAGE).
		Find(&albums).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []AlbumInfo{}
	for i := range albums {
		result = append(result, albumInfoFrom(&albums[i]))
	}
	c.JSON(http.StatusOK, result)
}

func AlbumCreate(c *gin.Context, user *models.User) {
	r := AlbumCreateRequest{}
	responder := NewResponder(c)
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album := models.Album{
		Name:   r.Name,
		UserID: &user.ID,
		Public: true,
		Order:  r.Order,
	}
	if r.Public != nil {
		album.Public = *r.Public
	}
	if err := db.Instance.Create(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	albumURL := "/image/list?album_id=" + strconv.FormatUint(album.ID, 10)
	responder.Success(albumURL, gin.H{"url": albumURL, "id": album.ID})
}

func AlbumSave(c *gin.Context, user *models.User) {
	r := AlbumSaveRequest{}
	responder := NewResponder(c)
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, err := models.AlbumByID(r.AlbumID)
	if err != nil {
		responder.Error(err)
		return
	}
	// Non-moderators only ever see their own albums here
	if !album.CanEdit(user) {
		responder.Error(models.ErrNotFound)
		return
	}
	updates := map[string]interface{}{}
	if r.Name != "" {
		updates["name"] = r.Name
	}
	if r.Public != nil {
		updates["public"] = *r.Public
	}
	if r.Order != nil {
		updates["order"] = *r.Order
	}
	if r.HeadID != nil {
		updates["head_id"] = *r.HeadID
	}
	if err = db.Instance.Model(&album).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	albumURL := "/image/list?album_id=" + strconv.FormatUint(album.ID, 10)
	responder.Success(albumURL, gin.H{"name": album.Name})
}

func AlbumDelete(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	responder := NewResponder(c)
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, err := models.AlbumByID(r.AlbumID)
	if err != nil {
		responder.Error(err)
		return
	}
	if !album.CanEdit(user) {
		responder.Error(models.ErrNotFound)
		return
	}
	if err = models.DeleteAlbum(&album); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	responder.Success("/album/list", gin.H{"success": true})
}

// AlbumShare mints (or returns) the album's public gallery token
func AlbumShare(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, err := models.AlbumByID(r.AlbumID)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	if !album.CanEdit(user) {
		NewResponder(c).Error(models.ErrForbidden)
		return
	}
	share := models.NewAlbumShare(user.ID, album.ID)
	cond := models.AlbumShare{UserID: user.ID, AlbumID: album.ID}
	if err = db.Instance.Where(cond).FirstOrCreate(&share).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title": "[ " + album.Name + " ]",
		"path":  "/w/album/" + share.Token + "/",
	})
}

type CommentInfo struct {
	ID      uint64 `json:"id"`
	Author  string `json:"author"`
	Created int64  `json:"created"`
	Content string `json:"content"`
}

type CommentCreateRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	Content string `form:"content" binding:"required"`
}

func AlbumComments(c *gin.Context) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := auth.LoadSession(c)
	viewer := session.User()
	album, err := models.AlbumByID(r.AlbumID)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	if !album.CanView(&viewer) {
		NewResponder(c).Error(models.ErrForbidden)
		return
	}
	rows, err := db.Instance.Table("comments").
		Select("comments.id, users.name, comments.created_at, comments.content").
		Joins("join users on users.id = comments.user_id").
		Where("comments.album_id = ?", album.ID).
		Order("comments.created_at ASC, comments.id ASC").
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []CommentInfo{}
	for rows.Next() {
		info := CommentInfo{}
		if err = rows.Scan(&info.ID, &info.Author, &info.Created, &info.Content); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func CommentCreate(c *gin.Context, user *models.User) {
	r := CommentCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	album, err := models.AlbumByID(r.AlbumID)
	if err != nil {
		NewResponder(c).Error(err)
		return
	}
	if !album.CanView(user) {
		NewResponder(c).Error(models.ErrForbidden)
		return
	}
	comment := models.Comment{
		UserID:  user.ID,
		AlbumID: album.ID,
		Content: r.Content,
	}
	if err = db.Instance.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": comment.ID})
}
