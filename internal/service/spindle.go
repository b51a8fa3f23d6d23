package service

import (
	"SpindleTracker/internal/model"
	"SpindleTracker/internal/repo"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SpindleService инкапсулирует правила работы со шпинделями.
type SpindleService struct {
	repo   repo.SpindleRepository
	logger *zap.SugaredLogger
	now    Clock
}

// NewSpindleService создаёт сервис поверх репозитория шпинделей.
func NewSpindleService(r repo.SpindleRepository, logger *zap.SugaredLogger) *SpindleService {
	return &SpindleService{repo: r, logger: logger, now: time.Now}
}

// WithClock подменяет источник времени.
func (s *SpindleService) WithClock(c Clock) *SpindleService {
	s.now = c
	return s
}

// Today возвращает сегодняшнюю дату в формате хранилища.
func (s *SpindleService) Today() string {
	return FormatDate(s.now())
}

// List возвращает шпиндели, Referans ID которых содержит query.
func (s *SpindleService) List(query string) ([]model.Spindle, error) {
	items, err := s.repo.Search(query)
	if err != nil {
		return nil, fmt.Errorf("list spindles: %w", err)
	}
	return items, nil
}

func (s *SpindleService) Get(id string) (model.Spindle, error) {
	item, found, err := s.repo.GetByID(id)
	if err != nil {
		return model.Spindle{}, fmt.Errorf("get spindle %s: %w", id, err)
	}
	if !found {
		return model.Spindle{}, ErrNotFound
	}
	return item, nil
}

// Create сохраняет новый шпиндель. Пустая дата установки становится сегодняшней.
func (s *SpindleService) Create(in model.Spindle) (string, error) {
	if in.RefID == "" {
		return "", &ValidationError{Field: model.SpindleRefID}
	}
	today := s.Today()
	in.InstalledAt = orDefault(in.InstalledAt, today)
	in.UpdatedAt = today

	id, err := s.repo.Create(in)
	if err != nil {
		return "", fmt.Errorf("create spindle: %w", err)
	}
	s.logger.Infow("spindle created", "id", id, "ref", in.RefID)
	return id, nil
}

// Update заменяет поля шпинделя. false, если шпинделя с таким id нет.
func (s *SpindleService) Update(id string, in model.Spindle) (bool, error) {
	if in.RefID == "" {
		return false, &ValidationError{Field: model.SpindleRefID}
	}
	in.UpdatedAt = s.Today()

	ok, err := s.repo.Update(id, in)
	if err != nil {
		return false, fmt.Errorf("update spindle %s: %w", id, err)
	}
	if ok {
		s.logger.Infow("spindle updated", "id", id, "ref", in.RefID)
	}
	return ok, nil
}

func (s *SpindleService) Delete(id string) (bool, error) {
	ok, err := s.repo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("delete spindle %s: %w", id, err)
	}
	if ok {
		s.logger.Infow("spindle deleted", "id", id)
	}
	return ok, nil
}
