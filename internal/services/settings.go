package services

import (
	"strings"
	"sync"

	"localcart/internal/domain"
	"localcart/internal/repos"
)

const (
	UsernameKey     = "username"
	DefaultUsername = "User"
)

// Settings is the process-wide display name, loaded once and written through
// on every change.
type Settings struct {
	repo *repos.SettingsRepo

	mu       sync.RWMutex
	username string
}

func LoadSettings(repo *repos.SettingsRepo) (*Settings, error) {
	name, err := repo.Get(UsernameKey, DefaultUsername)
	if err != nil {
		return nil, err
	}
	return &Settings{repo: repo, username: name}, nil
}

func (s *Settings) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Settings) SetUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Invalid(UsernameKey, "required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(UsernameKey, name); err != nil {
		return err
	}
	s.username = name
	return nil
}
