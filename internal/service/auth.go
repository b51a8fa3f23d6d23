package service

import (
	"SpindleTracker/internal/session"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AuthService проверяет единственную учётную запись из конфигурации
// и выдаёт сессии.
type AuthService struct {
	username     string
	passwordHash []byte
	sessions     session.Store
}

// NewAuthService хеширует пароль один раз при старте.
func NewAuthService(username, password string, sessions session.Store) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &AuthService{username: username, passwordHash: hash, sessions: sessions}, nil
}

// Login возвращает новую сессию или ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (session.Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return session.Session{}, ErrInvalidCredentials
	}
	sess, err := s.sessions.Create(s.username)
	if err != nil {
		return session.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Logout удаляет сессию; неизвестный токен не ошибка.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.sessions.Delete(token)
}
