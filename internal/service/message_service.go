package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/am-bush650/student-management-system/internal/dto"
	"github.com/am-bush650/student-management-system/internal/model"
	"github.com/am-bush650/student-management-system/internal/repository"
)

// ── 消息模块业务错误 ──

var (
	ErrMessageBodyEmpty  = errors.New("消息内容不能为空")
	ErrRecipientNotFound = errors.New("收件人不存在")
	ErrMessageToSelf     = errors.New("不能给自己发送消息")
)

// MessageService 站内消息业务接口
type MessageService interface {
	// Send 追加一条消息；空内容或收件人不存在时拒绝
	Send(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	// ListByUser 返回用户收发的全部消息，按时间升序
	ListByUser(ctx context.Context, userID string) ([]dto.MessageResponse, error)
}

type messageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, logger: logger}
}

func (s *messageService) Send(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrMessageBodyEmpty
	}
	if req.RecipientID == senderID {
		return nil, ErrMessageToSelf
	}

	// 收件人必须存在
	if _, err := s.repo.User.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		s.logger.Error("查询收件人失败", zap.Error(err))
		return nil, err
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Body:        body,
	}
	if err := s.repo.Message.Create(ctx, message); err != nil {
		s.logger.Error("写入消息失败", zap.Error(err))
		return nil, err
	}

	resp := toMessageResponse(message)
	return &resp, nil
}

func (s *messageService) ListByUser(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	messages, err := s.repo.Message.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询消息失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		list = append(list, toMessageResponse(&messages[i]))
	}
	return list, nil
}

// toMessageResponse 将 model.Message 转换为 dto.MessageResponse
func toMessageResponse(message *model.Message) dto.MessageResponse {
	resp := dto.MessageResponse{
		ID:          message.MessageID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Body:        message.Body,
		CreatedAt:   message.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if message.Sender != nil {
		resp.SenderName = message.Sender.Username
	}
	if message.Recipient != nil {
		resp.RecipientName = message.Recipient.Username
	}
	return resp
}
