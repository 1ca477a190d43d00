package model

// Grade 成绩表 — 对应 grades
// (student_id, course) 唯一；不保留历史版本，后写覆盖
type Grade struct {
	GradeID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"grade_id"`
	StudentID string  `gorm:"type:uuid;not null;uniqueIndex:uq_grades_student_course" json:"student_id"`
	Course    string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_grades_student_course" json:"course"`
	Score     float64 `gorm:"type:numeric(5,2);not null"                          json:"score"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }
