package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/am-bush650/student-management-system/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	// Upsert 按 (student_id, course) 写入或覆盖成绩
	Upsert(ctx context.Context, grade *model.Grade) error
	GetByStudentCourse(ctx context.Context, studentID, course string) (*model.Grade, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Grade, error)
	CountByStudent(ctx context.Context, studentID string) (int64, error)
}

// gradeRepo GradeRepository 的 GORM 实现
type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Upsert(ctx context.Context, grade *model.Grade) error {
	// 成绩无历史版本：冲突时直接覆盖分数
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "course"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":      grade.Score,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(grade).Error
}

func (r *gradeRepo) GetByStudentCourse(ctx context.Context, studentID, course string) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course = ?", studentID, course).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("course ASC").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepo) CountByStudent(ctx context.Context, studentID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Grade{}).
		Where("student_id = ?", studentID).
		Count(&total).Error
	return total, err
}
