package models

import "time"

// Store is a rateable store, optionally operated by a STORE_OWNER user.
type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     *string   `json:"email" gorm:"type:varchar(255)"`
	Address   string    `json:"address" gorm:"type:varchar(400);not null"`
	OwnerID   *uint     `json:"owner_id" gorm:"index"`
	Owner     *User     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at"`
}
