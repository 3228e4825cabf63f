package models

import "time"

// Contact 联系表单提交记录
type Contact struct {
	ID        uint      `gorm:"primarykey" json:"id"`                          // 主键
	Name      string    `gorm:"not null" json:"name"`                          // 姓名
	Email     string    `gorm:"not null;index" json:"email"`                   // 邮箱
	Subject   string    `gorm:"default:''" json:"subject"`                     // 主题
	Message   string    `gorm:"type:text;not null" json:"message"`             // 留言内容
	Status    string    `gorm:"not null;default:'unread';index" json:"status"` // 处理状态 unread/read/replied
	CreatedAt time.Time `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (Contact) TableName() string {
	return "contacts"
}
