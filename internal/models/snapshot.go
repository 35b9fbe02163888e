package models

import "time"

// ListKind тип списка ссылок.
type ListKind string

const (
	ListKindPopular ListKind = "popular"
	ListKindRecent  ListKind = "recent"
	ListKindOwned   ListKind = "owned"
)

// SnapshotEntry одна ссылка из выгруженного списка.
type SnapshotEntry struct {
	ID          uint      `gorm:"primaryKey"`
	TakenAt     time.Time `gorm:"index;not null"`
	Kind        ListKind  `gorm:"size:16;index;not null"`
	Position    int       `gorm:"not null"`
	Name        string    `gorm:"size:255;not null"`
	URL         string    `gorm:"size:2048;not null"`
	Description string    `gorm:"size:1024"`
	Views       int
}
