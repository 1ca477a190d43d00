package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/am-bush650/student-management-system/internal/service"
	"github.com/am-bush650/student-management-system/pkg/response"
)

// ExportHandler 档案导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStudent 导出学生档案文件
// GET /api/v1/export/students/:id?format=pdf|csv|xlsx
// 每次请求即时生成，不做缓存
func (h *ExportHandler) ExportStudent(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatPDF)

	buf, filename, contentType, err := h.exportSvc.ExportStudent(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportBadFormat):
			response.BadRequest(c, 16001, "不支持的导出格式")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12001, "学生不存在")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.Error(c, http.StatusInternalServerError, 16002, "生成导出文件失败")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
