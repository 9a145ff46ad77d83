package domain

import "time"

// Service услуга барбершопа (стрижка, борода, ...)
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
