package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Tx         TxManager
	User       UserRepository
	Student    StudentRepository
	Grade      GradeRepository
	Message    MessageRepository
	Assignment AssignmentRepository
}

// TxManager 事务执行器。fn 内的全部写操作在同一事务中执行，
// fn 返回非 nil 错误或发生 panic 时整体回滚。
type TxManager interface {
	Transaction(ctx context.Context, fn func(txRepo *Repository) error) error
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Tx:         &gormTxManager{db: db},
		User:       NewUserRepo(db),
		Student:    NewStudentRepo(db),
		Grade:      NewGradeRepo(db),
		Message:    NewMessageRepo(db),
		Assignment: NewAssignmentRepo(db),
	}
}

type gormTxManager struct {
	db *gorm.DB
}

func (m *gormTxManager) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
