package handlers

import (
	"errors"
	"net/http"
	"strings"

	"imagestore/models"

	"github.com/gin-gonic/gin"
)

// Responder decides once per request whether the client wants JSON (an
// AJAX-style call) or a classic redirect/HTML answer. Handlers then emit
// results without re-checking the transport.
type Responder struct {
	c    *gin.Context
	json bool
}

func NewResponder(c *gin.Context) *Responder {
	json := c.GetHeader("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
	return &Responder{c: c, json: json}
}

func (r *Responder) WantsJSON() bool {
	return r.json
}

// Success sends the JSON body to AJAX callers and redirects everyone else
func (r *Responder) Success(redirectURL string, data gin.H) {
	if r.json {
		if data == nil {
			data = gin.H{"success": true}
		}
		r.c.JSON(http.StatusOK, data)
		return
	}
	r.c.Redirect(http.StatusFound, redirectURL)
}

// Invalid reports a bad edit request: 400 with a JSON body for AJAX callers,
// a plain 404 otherwise
func (r *Responder) Invalid() {
	if r.json {
		r.c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}
	r.c.Status(http.StatusNotFound)
}

// Error maps the model error taxonomy onto HTTP statuses. NotFound and
// Forbidden stay distinct; a quota hit is a structured 200 so the upload
// form can show the message inline.
func (r *Responder) Error(err error) {
	switch {
	case errors.Is(err, models.ErrQuotaExceeded):
		r.c.JSON(http.StatusOK, gin.H{"success": false, "error_message": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		r.c.JSON(http.StatusForbidden, Response{Error: "access denied"})
	case errors.Is(err, models.ErrNotFound):
		r.c.JSON(http.StatusNotFound, Response{Error: "not found"})
	default:
		r.c.JSON(http.StatusInternalServerError, Response{Error: err.Error()})
	}
}
