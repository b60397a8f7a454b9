package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"type:varchar(30);uniqueIndex:idx_username"`
	Email     string `gorm:"type:varchar(255);uniqueIndex:idx_email"`
	Password  string `gorm:"type:varchar(255)"`
	Role      string `gorm:"type:varchar(20);default:user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
