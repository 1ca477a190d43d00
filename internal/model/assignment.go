package model

import "time"

// Assignment 作业上传记录表 — 对应 assignments
// 仅追加；同一学生重复上传产生新记录，不做版本合并
type Assignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	StudentID    string    `gorm:"type:uuid;not null;index"                       json:"student_id"`
	FileName     string    `gorm:"type:varchar(255);not null"                     json:"file_name"`
	StoredPath   string    `gorm:"type:varchar(500);not null"                     json:"-"`
	SizeBytes    int64     `gorm:"not null;default:0"                             json:"size_bytes"`
	ContentType  string    `gorm:"type:varchar(100);not null;default:''"          json:"content_type"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
