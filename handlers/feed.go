package handlers

import (
	"net/http"
	"strconv"

	"imagestore/feed"

	"github.com/gin-gonic/gin"
)

const feedDefaultLimit = 50

type FeedEntry struct {
	ID      uint64 `json:"id"`
	Actor   uint64 `json:"actor"`
	Verb    string `json:"verb"`
	AlbumID uint64 `json:"album_id"`
	Created int64  `json:"created"`
}

func FeedList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(feedDefaultLimit)))
	if limit < 1 || limit > 500 {
		limit = feedDefaultLimit
	}
	actions, err := feed.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []FeedEntry{}
	for _, a := range actions {
		result = append(result, FeedEntry{
			ID:      a.ID,
			Actor:   a.ActorID,
			Verb:    a.Verb,
			AlbumID: a.AlbumID,
			Created: a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}
