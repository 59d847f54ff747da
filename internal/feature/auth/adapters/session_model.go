package adapters

import (
	"time"

	"portfolio_backend/internal/feature/auth/domain/entity"
)

// SessionModel is the sessions table. One row per refresh token.
type SessionModel struct {
	ID        string     `gorm:"primaryKey;size:64"`
	UserID    uint       `gorm:"index:idx_sessions_user_created,priority:1;not null"`
	UserAgent string     `gorm:"size:512"`
	IPAddress string     `gorm:"size:45"`
	CreatedAt time.Time  `gorm:"index:idx_sessions_user_created,priority:2;not null"`
	ExpiresAt time.Time  `gorm:"index;not null"`
	RevokedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

func (m *SessionModel) toEntity() *entity.Session {
	s := entity.Session(*m)
	return &s
}

func sessionModelFrom(s *entity.Session) *SessionModel {
	m := SessionModel(*s)
	return &m
}
