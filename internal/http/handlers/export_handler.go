// README: Export handler streaming the rides workbook as an xlsx download.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"getdriven/internal/http/middleware"
	"getdriven/internal/modules/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	export *export.Service
}

func NewExportHandler(svc *export.Service) *ExportHandler {
	return &ExportHandler{export: svc}
}

func (h *ExportHandler) Rides(c *gin.Context) {
	name, buf, err := h.export.Workbook(c.Request.Context(), middleware.CallerID(c), c.Query("month"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
