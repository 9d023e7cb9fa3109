package model

import (
	"time"
)

type User struct {
	ID               string  `gorm:"primaryKey;type:varchar(64)"`
	Email            *string `gorm:"type:varchar(255);uniqueIndex:idx_email"`
	SubscriptionPlan string  `gorm:"type:varchar(32);default:free"`
	IsDelete         bool    `gorm:"type:tinyint(1);default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (User) TableName() string {
	return "users"
}
