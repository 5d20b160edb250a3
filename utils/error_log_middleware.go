package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

type errorBodyLogger struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorBodyLogger) Write(b []byte) (int, error) {
	if status := w.gc.Writer.Status(); status >= 400 {
		log.Printf("[DEBUG ERROR]: Status %d, Body: %s", status, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs the bodies of failed gallery calls. It reads the
// response stream, so it cannot sit behind GZIP.
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = errorBodyLogger{gc: c, ResponseWriter: c.Writer}
	c.Next()
}
