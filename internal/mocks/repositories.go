package mocks

import (
	"context"

	"github.com/plantops/greenops/internal/domain"
)

// MockRecordRepository is a mock implementation of RecordRepository interface
type MockRecordRepository struct {
	Records  []domain.OperationalRecord
	FindFunc func(ctx context.Context, filter domain.RecordFilter) ([]domain.OperationalRecord, error)
	SaveFunc func(ctx context.Context, records []domain.OperationalRecord) error
}

func NewMockRecordRepository(records []domain.OperationalRecord) *MockRecordRepository {
	return &MockRecordRepository{Records: records}
}

func (m *MockRecordRepository) Find(ctx context.Context, filter domain.RecordFilter) ([]domain.OperationalRecord, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return m.Records, nil
}

func (m *MockRecordRepository) Save(ctx context.Context, records []domain.OperationalRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, records)
	}
	m.Records = append(m.Records, records...)
	return nil
}
