package dto

// ── 作业模块 DTO ──

// AssignmentResponse 作业上传记录响应
type AssignmentResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	FileName    string `json:"file_name"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type,omitempty"`
	CreatedAt   string `json:"created_at"`
}
