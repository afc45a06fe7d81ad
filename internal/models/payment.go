package models

import (
	"gorm.io/datatypes"
)

// PaymentEvent - запись о примененном завершении оплаты.
// Уникальный ProviderSessionID дает идемпотентность: повторная
// доставка одного и того же события от провайдера не меняет план дважды.
type PaymentEvent struct {
	BaseModel
	UserID            string         `gorm:"not null;index"`
	ProviderSessionID string         `gorm:"not null;uniqueIndex"`
	Plan              Plan           `gorm:"type:varchar(32);not null"`
	Payload           datatypes.JSON `gorm:"type:jsonb"`
}
