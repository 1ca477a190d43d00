package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/am-bush650/student-management-system/internal/model"
)

// MessageRepository 站内消息数据访问接口
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	// ListByUser 返回用户收发的全部消息，按时间升序
	ListByUser(ctx context.Context, userID string) ([]model.Message, error)
}

// messageRepo MessageRepository 的 GORM 实现
type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepo) ListByUser(ctx context.Context, userID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
