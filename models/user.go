package models

import "time"

// User is recorded when someone starts a conversation with the bot.
// Wallet addresses and balances are never stored.
type User struct {
	UserId    int64 `gorm:"primaryKey;unique:true;not_null:true"`
	UserName  string
	CreatedAt time.Time
}
