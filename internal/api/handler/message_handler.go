package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/am-bush650/student-management-system/internal/dto"
	"github.com/am-bush650/student-management-system/internal/service"
	"github.com/am-bush650/student-management-system/pkg/response"
)

// MessageHandler 站内消息 HTTP 处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建 MessageHandler
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendMessage 发送消息
// POST /api/v1/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	message, err := h.messageSvc.Send(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageBodyEmpty):
			response.BadRequest(c, 14001, "消息内容不能为空")
		case errors.Is(err, service.ErrRecipientNotFound):
			response.NotFound(c, 14002, "收件人不存在")
		case errors.Is(err, service.ErrMessageToSelf):
			response.BadRequest(c, 14003, "不能给自己发送消息")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, message)
}

// ListMessages 查看与当前用户相关的全部消息（按时间正序）
// GET /api/v1/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	messages, err := h.messageSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, messages)
}
