// Package response provides the uniform JSON envelope used by every endpoint:
// {success: bool, data?: T, error?: string}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the response body shape shared by all endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Pagination metadata returned with paginated list responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPage   int   `json:"totalPage"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"hasNextPage"`
}

type pagedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Paged sends a 200 success envelope with pagination metadata.
func Paged(c *gin.Context, items interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: pagedData{Items: items, Pagination: pagination}})
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent sends a 204 response with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error envelope.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Success: false, Error: message})
}

// Unauthorized sends a 401 error envelope.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Success: false, Error: "authentication required"})
}

// Forbidden sends a 403 error envelope.
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{Success: false, Error: message})
}

// NotFound sends a 404 error envelope.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Success: false, Error: message})
}

// Conflict sends a 409 error envelope.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, Envelope{Success: false, Error: message})
}

// InternalError sends a 500 error envelope.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Success: false, Error: err.Error()})
}

// MethodNotAllowed sends a 405 error envelope.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Envelope{Success: false, Error: "method not allowed"})
}
