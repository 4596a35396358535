package notifications

import (
	"time"

	"services-portal/internal/domain/users"
)

const (
	KindPayment  = "payment"
	KindApproval = "approval"
	KindTicket   = "ticket"
)

type Notification struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uint       `gorm:"not null;index" json:"user_id"`
	User   users.User `json:"-"`

	Kind    string `gorm:"type:varchar(20);not null" json:"kind"`
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"not null;default:false;index" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
