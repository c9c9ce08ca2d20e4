package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	Username     string     `gorm:"column:username;size:150;uniqueIndex;not null"`
	Email        string     `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
