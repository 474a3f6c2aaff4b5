package admin

import "time"

type Session struct {
	username  string
	startTime time.Time
	isActive  bool
}

func NewSession(username string) *Session {
	return &Session{
		username:  username,
		startTime: time.Now(),
		isActive:  true,
	}
}

func (s *Session) Username() string { return s.username }

func (s *Session) StartTime() time.Time { return s.startTime }

func (s *Session) IsActive() bool {
	return s != nil && s.isActive
}

func (s *Session) End() {
	s.isActive = false
}
