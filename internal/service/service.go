package service

import (
	"go.uber.org/zap"

	"github.com/am-bush650/student-management-system/config"
	"github.com/am-bush650/student-management-system/internal/repository"
	"github.com/am-bush650/student-management-system/pkg/jwt"
	"github.com/am-bush650/student-management-system/pkg/redis"
	"github.com/am-bush650/student-management-system/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Student    StudentService
	Grade      GradeService
	Message    MessageService
	Assignment AssignmentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	store storage.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Student:    NewStudentService(repo, logger),
		Grade:      NewGradeService(cfg, repo, logger),
		Message:    NewMessageService(repo, logger),
		Assignment: NewAssignmentService(cfg, repo, store, logger),
		Export:     NewExportService(repo, logger),
	}
}
