package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Response struct {
	Error string `json:"error"`
}

const (
	etagHeader = "ETag"
)

var (
	// Predefined errors
	OKResponse       = Response{}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
)

func isNotModified(c *gin.Context, tx *gorm.DB) bool {
	// Set the current ETag in all cases
	row := tx.Row()
	lastUpdatedAt := uint64(0)
	if row.Scan(&lastUpdatedAt) != nil {
		return false
	}
	c.Header("cache-control", "private, max-age=1")
	c.Header(etagHeader, strconv.FormatUint(lastUpdatedAt, 10))

	// ETag contains the last modification time
	remoteLastUpdatedAt, _ := strconv.ParseUint(c.Request.Header.Get("If-None-Match"), 10, 64)
	if remoteLastUpdatedAt == lastUpdatedAt {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}
