// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol is a ticker that charts can be requested for.
// Code is the provider ticker (1-7 uppercase letters); SortKey orders the
// list shown to clients.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:7;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Market    string    `gorm:"size:100;not null"`
	IsActive  bool      `gorm:"not null"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
