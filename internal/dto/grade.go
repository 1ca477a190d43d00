package dto

// ── 成绩模块 DTO ──

// EditGradeRequest 录入/修改单科成绩请求
type EditGradeRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	Course    string  `json:"course"     binding:"required,min=1,max=100"`
	Score     float64 `json:"score"      binding:"min=0,max=100"`
}

// GradeResponse 单科成绩响应
type GradeResponse struct {
	ID        string  `json:"id"`
	StudentID string  `json:"student_id"`
	Course    string  `json:"course"`
	Score     float64 `json:"score"`
	UpdatedAt string  `json:"updated_at"`
}

// BulkUploadResponse 成绩批量导入响应
type BulkUploadResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Errors  []BulkUploadError `json:"errors,omitempty"`
}

// BulkUploadError 导入错误详情
type BulkUploadError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
