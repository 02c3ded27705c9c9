package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)

type SubscriptionTier string

const (
	TierGold     SubscriptionTier = "gold"
	TierPlatinum SubscriptionTier = "platinum"
	TierDiamond  SubscriptionTier = "diamond"
)

type User struct {
	ID        uuid.UUID        `db:"id"`
	Username  string           `db:"username"`
	Email     string           `db:"email"`
	Password  string           `db:"password"`
	Role      UserRole         `db:"role"`
	Tier      SubscriptionTier `db:"tier"`
	WalletID  string           `db:"wallet_id"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}
