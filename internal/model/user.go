package model

// User 用户表 — 对应 users
// 账号在开通期由种子数据创建，登录时读取；普通用户不可自助修改
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"`
	BaseModel

	// 关联：角色为 student 时与学生档案一对一
	Student *Student `gorm:"foreignKey:UserID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
