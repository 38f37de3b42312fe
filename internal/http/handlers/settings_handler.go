// README: Settings handlers for reading and updating the compensation policy.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"getdriven/internal/http/middleware"
	"getdriven/internal/modules/settings"
)

type SettingsHandler struct {
	settings *settings.Service
}

func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	p, err := h.settings.PolicyFor(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var u settings.Update
	if err := c.ShouldBindJSON(&u); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.settings.Update(c.Request.Context(), middleware.CallerID(c), u)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}
