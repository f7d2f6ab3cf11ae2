package models

import "time"

// Account holds account-level subscription state. The webhook subscription
// path flips SubscriptionActive; ledger invariants do not apply here.
type Account struct {
	ID                    string     `gorm:"column:id;primary_key;type:uuid" json:"id"`
	UserID                string     `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	SubscriptionActive    bool       `gorm:"column:subscription_active;not null;default:false" json:"subscription_active"`
	PlanID                string     `gorm:"column:plan_id;type:varchar(64)" json:"plan_id"`
	SubscriptionUpdatedAt *time.Time `gorm:"column:subscription_updated_at" json:"subscription_updated_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (Account) TableName() string {
	return "account"
}
