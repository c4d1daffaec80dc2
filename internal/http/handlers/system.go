package handlers

import (
	"net/http"

	intconfig "backoffice/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database tidak tersedia", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "ok"})
}
