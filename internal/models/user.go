package models

import "time"

// User represents an account on the platform.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(60);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Address   string    `json:"address" gorm:"type:varchar(400)"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'USER';check:chk_users_role,role IN ('USER','STORE_OWNER','ADMIN')"`
	CreatedAt time.Time `json:"created_at"`
}
