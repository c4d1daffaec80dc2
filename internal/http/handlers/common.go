package handlers

import (
	"net/http"
	"strconv"

	intconfig "backoffice/internal/config"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var appEnv intconfig.Env

// Init wires the environment into this package. Called once from the
// router.
func Init(env intconfig.Env) {
	appEnv = env
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// PathID parses a positive :param id or responds 400 and returns false.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", err)
		return 0, false
	}
	return id, true
}

// actorName derives the audit-trail actor from the authenticated staff.
func actorName(c *gin.Context) string {
	rc := middleware.GetAuthUser(c)
	if rc.Name != "" {
		return rc.Name
	}
	if rc.UserID > 0 {
		return "staff#" + strconv.FormatInt(int64(rc.UserID), 10)
	}
	return "staff"
}
