package service

import (
	"SpindleTracker/internal/model"
	"SpindleTracker/internal/repo"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SpareService — правила работы с запасными деталями (yedek).
type SpareService struct {
	repo   repo.SpareRepository
	logger *zap.SugaredLogger
	now    Clock
}

// NewSpareService создаёт сервис поверх репозитория запчастей.
func NewSpareService(r repo.SpareRepository, logger *zap.SugaredLogger) *SpareService {
	return &SpareService{repo: r, logger: logger, now: time.Now}
}

// WithClock подменяет источник времени.
func (s *SpareService) WithClock(c Clock) *SpareService {
	s.now = c
	return s
}

// Today возвращает сегодняшнюю дату в формате хранилища.
func (s *SpareService) Today() string {
	return FormatDate(s.now())
}

// List возвращает детали, Referans ID которых содержит query.
func (s *SpareService) List(query string) ([]model.Spare, error) {
	items, err := s.repo.Search(query)
	if err != nil {
		return nil, fmt.Errorf("list spares: %w", err)
	}
	return items, nil
}

func (s *SpareService) Get(id string) (model.Spare, error) {
	item, found, err := s.repo.GetByID(id)
	if err != nil {
		return model.Spare{}, fmt.Errorf("get spare %s: %w", id, err)
	}
	if !found {
		return model.Spare{}, ErrNotFound
	}
	return item, nil
}

// Create сохраняет деталь. "Tamirde mi" по умолчанию Hayır, пустые даты — сегодня.
func (s *SpareService) Create(in model.Spare) (string, error) {
	if in.RefID == "" {
		return "", &ValidationError{Field: model.SpareRefID}
	}
	today := s.Today()
	in.InRepair = orDefault(in.InRepair, model.InRepairNo)
	in.SentToRepairAt = orDefault(in.SentToRepairAt, today)
	in.ReturnedAt = orDefault(in.ReturnedAt, today)
	in.RemovedAt = orDefault(in.RemovedAt, today)
	in.UpdatedAt = today

	id, err := s.repo.Create(in)
	if err != nil {
		return "", fmt.Errorf("create spare: %w", err)
	}
	s.logger.Infow("spare created", "id", id, "ref", in.RefID)
	return id, nil
}

// Update заменяет поля детали; даты при редактировании не подставляются.
func (s *SpareService) Update(id string, in model.Spare) (bool, error) {
	if in.RefID == "" {
		return false, &ValidationError{Field: model.SpareRefID}
	}
	in.InRepair = orDefault(in.InRepair, model.InRepairNo)
	in.UpdatedAt = s.Today()

	ok, err := s.repo.Update(id, in)
	if err != nil {
		return false, fmt.Errorf("update spare %s: %w", id, err)
	}
	if ok {
		s.logger.Infow("spare updated", "id", id, "ref", in.RefID)
	}
	return ok, nil
}

func (s *SpareService) Delete(id string) (bool, error) {
	ok, err := s.repo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("delete spare %s: %w", id, err)
	}
	if ok {
		s.logger.Infow("spare deleted", "id", id)
	}
	return ok, nil
}
