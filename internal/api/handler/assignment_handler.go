package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/am-bush650/student-management-system/internal/service"
	"github.com/am-bush650/student-management-system/pkg/response"
)

// AssignmentHandler 作业上传 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Upload 学生上传作业文件
// POST /api/v1/assignments/upload
// 表单字段 file 为作业文件；归属学生取自当前 Token，重复上传追加新记录
func (h *AssignmentHandler) Upload(c *gin.Context) {
	studentID := GetStudentID(c)
	if studentID == "" {
		response.Forbidden(c, 10003, "无权限执行该操作")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 15001, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 15001, "缺少上传文件")
		return
	}
	defer file.Close()

	assignment, err := h.assignmentSvc.Upload(
		c.Request.Context(),
		studentID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileMissing):
			response.BadRequest(c, 15001, "缺少上传文件")
		case errors.Is(err, service.ErrFileTooLarge):
			response.BadRequest(c, 15002, "文件大小超出上限")
		case errors.Is(err, service.ErrFileTypeBanned):
			response.BadRequest(c, 15003, "不允许的文件类型")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12001, "学生不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, assignment)
}

// List 查看学生的作业上传记录
// GET /api/v1/assignments?student_id=
// student_id 缺省时取当前 Token 归属的学生
func (h *AssignmentHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	studentID := c.Query("student_id")
	if studentID == "" {
		studentID = GetStudentID(c)
	}
	if studentID == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignments, err := h.assignmentSvc.ListByStudent(c.Request.Context(), studentID, role, GetStudentID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权限执行该操作")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 12001, "学生不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, assignments)
}

// Download 下载作业原始文件
// GET /api/v1/assignments/:id/download
func (h *AssignmentHandler) Download(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	rc, meta, err := h.assignmentSvc.Download(c.Request.Context(), c.Param("id"), role, GetStudentID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 15004, "作业记录不存在")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权限执行该操作")
		default:
			response.InternalError(c)
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", meta.FileName))
	c.DataFromReader(http.StatusOK, meta.SizeBytes, meta.ContentType, rc, nil)
}
