package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountsvc/internal/middleware"
	"accountsvc/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// respondError: CustomError — как есть, остальное — 500 без подробностей.
func respondError(c *gin.Context, op string, err error) {
	if ce, ok := services.AsCustomError(err); ok {
		log.Printf("[auth][%s] rejected: status=%d msg=%q", op, ce.StatusCode, ce.Message)
		c.JSON(ce.StatusCode, errorResponse{Error: ce.Message})
		return
	}
	log.Printf("[auth][%s] internal error: %v", op, err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Printf("[auth][%s] bad request: bind json failed: err=%v", op, err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

func getUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
