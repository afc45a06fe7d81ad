package models

import "time"

type User struct {
	BaseModel
	Email              string             `gorm:"uniqueIndex;not null"`
	PasswordHash       string             `gorm:"not null" json:"-"`
	Plan               Plan               `gorm:"type:varchar(32);default:'community';not null"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(20);default:'active'"`
	StripeCustomerID   string             `gorm:"index"`

	// Relations
	Sessions []Session `gorm:"foreignKey:UserID"`
}

// Session - строка журнала выданных токенов.
// Только вставка: строки не обновляются и не удаляются при истечении,
// срок проверяется при чтении.
type Session struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
