package service

import (
	"SpindleTracker/internal/model"
	"SpindleTracker/internal/repo"
	"time"

	"github.com/stretchr/testify/mock"
)

// мок для repo.SpindleRepository
type mockSpindleRepo struct{ mock.Mock }

func (m *mockSpindleRepo) List() ([]model.Spindle, error) {
	args := m.Called()
	if v, ok := args.Get(0).([]model.Spindle); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSpindleRepo) Search(q string) ([]model.Spindle, error) {
	args := m.Called(q)
	if v, ok := args.Get(0).([]model.Spindle); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSpindleRepo) GetByID(id string) (model.Spindle, bool, error) {
	args := m.Called(id)
	return args.Get(0).(model.Spindle), args.Bool(1), args.Error(2)
}
func (m *mockSpindleRepo) Create(it model.Spindle) (string, error) {
	args := m.Called(it)
	return args.String(0), args.Error(1)
}
func (m *mockSpindleRepo) Update(id string, it model.Spindle) (bool, error) {
	args := m.Called(id, it)
	return args.Bool(0), args.Error(1)
}
func (m *mockSpindleRepo) Delete(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

var _ repo.SpindleRepository = (*mockSpindleRepo)(nil)

// мок для repo.SpareRepository
type mockSpareRepo struct{ mock.Mock }

func (m *mockSpareRepo) List() ([]model.Spare, error) {
	args := m.Called()
	if v, ok := args.Get(0).([]model.Spare); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSpareRepo) Search(q string) ([]model.Spare, error) {
	args := m.Called(q)
	if v, ok := args.Get(0).([]model.Spare); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSpareRepo) GetByID(id string) (model.Spare, bool, error) {
	args := m.Called(id)
	return args.Get(0).(model.Spare), args.Bool(1), args.Error(2)
}
func (m *mockSpareRepo) Create(it model.Spare) (string, error) {
	args := m.Called(it)
	return args.String(0), args.Error(1)
}
func (m *mockSpareRepo) Update(id string, it model.Spare) (bool, error) {
	args := m.Called(id, it)
	return args.Bool(0), args.Error(1)
}
func (m *mockSpareRepo) Delete(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

var _ repo.SpareRepository = (*mockSpareRepo)(nil)

// fixedClock — 14.10.2026
func fixedClock() time.Time {
	return time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)
}
