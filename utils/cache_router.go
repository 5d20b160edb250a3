package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1 // the endpoint sets its own cache-control header
)

// CacheRouter applies a default cache-control header to every response.
// Image payload endpoints override it with a long-lived private value.
type CacheRouter struct {
	CacheTime int // seconds; defaults to CacheNoCache
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch cr.CacheTime {
		case CacheCustom:
			// Leave the header to the endpoint
		case CacheNoCache:
			c.Header("cache-control", "no-cache")
		default:
			c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
		}
		c.Next()
	}
}
