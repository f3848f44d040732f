package entity

import "time"

// AdminSession logged-in catalog administrator
type AdminSession struct {
	UserID       int64
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}

// AdminAction audit record of something an admin did
type AdminAction struct {
	ID        string
	UserID    int64
	Action    string // "login", "upload_catalog", "clean_all"
	Details   string
	Timestamp time.Time
}
