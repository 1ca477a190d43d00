package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 新建学生档案请求（manage_records）
type CreateStudentRequest struct {
	Name       string  `json:"name"        binding:"required,min=1,max=100"`
	Email      string  `json:"email"       binding:"required,email"`
	Phone      string  `json:"phone"       binding:"omitempty,max=30"`
	Major      string  `json:"major"       binding:"omitempty,max=100"`
	EnrolledAt string  `json:"enrolled_at" binding:"omitempty,datetime=2006-01-02"`
	UserID     *string `json:"user_id"     binding:"omitempty,uuid"`
}

// UpdateStudentRequest 更新学生档案请求
type UpdateStudentRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
	Major *string `json:"major" binding:"omitempty,max=100"`
}

// StudentResponse 学生档案响应
// GradeCount 仅详情接口填充，列表接口不查询成绩数
type StudentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Major      string `json:"major,omitempty"`
	EnrolledAt string `json:"enrolled_at"`
	GradeCount int64  `json:"grade_count,omitempty"`
}
