package dto

// ── 消息模块 DTO ──

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	Body        string `json:"body"         binding:"required"`
}

// MessageResponse 消息响应
type MessageResponse struct {
	ID            string `json:"id"`
	SenderID      string `json:"sender_id"`
	SenderName    string `json:"sender_name,omitempty"`
	RecipientID   string `json:"recipient_id"`
	RecipientName string `json:"recipient_name,omitempty"`
	Body          string `json:"body"`
	CreatedAt     string `json:"created_at"`
}
