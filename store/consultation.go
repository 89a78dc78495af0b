package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/cabinet-pediatrie/model"
	"gorm.io/gorm"
)

// ConsultationStore owns the lifecycle of consultation records.
type ConsultationStore struct {
	db *gorm.DB
}

// NewConsultationStore creates a ConsultationStore on an open storage handle.
func NewConsultationStore(db *gorm.DB) *ConsultationStore {
	if db == nil {
		panic("database connection cannot be nil for ConsultationStore")
	}
	return &ConsultationStore{db: db}
}

// Initialize creates the consultations table when missing.
func (s *ConsultationStore) Initialize(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.Consultation{}); err != nil {
		return fmt.Errorf("migrate consultations: %w", err)
	}
	return nil
}

// Create inserts rec and returns the id assigned by storage. rec.ID is ignored.
// Required fields arrive as zero values rather than NULL, so callers enforce
// their presence before calling Create.
func (s *ConsultationStore) Create(ctx context.Context, rec model.Consultation) (uint, error) {
	rec.ID = 0
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("%w: create consultation: %v", ErrIntegrity, err)
	}
	return rec.ID, nil
}

// List returns every consultation, newest date first. Records sharing a
// date are ordered by descending id.
func (s *ConsultationStore) List(ctx context.Context) ([]model.ConsultationSummary, error) {
	summaries := []model.ConsultationSummary{}
	err := s.db.WithContext(ctx).
		Model(&model.Consultation{}).
		Select("id, date_consultation, nom_patient, prenom_patient, age, motif_consultation").
		Order("date_consultation DESC").
		Order("id DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return summaries, nil
}

// Get returns the full record with the given id.
func (s *ConsultationStore) Get(ctx context.Context, id uint) (model.Consultation, error) {
	var rec model.Consultation
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Consultation{}, ErrNotFound
	}
	if err != nil {
		return model.Consultation{}, fmt.Errorf("get consultation %d: %w", id, err)
	}
	return rec, nil
}

// Update overwrites every field of the record with the values in rec.
// Empty strings and nil optional fields replace what was stored.
func (s *ConsultationStore) Update(ctx context.Context, id uint, rec model.Consultation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Consultation{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("check consultation %d: %w", id, err)
		}
		if count == 0 {
			return ErrNotFound
		}

		rec.ID = id
		err := tx.Model(&model.Consultation{ID: id}).
			Select("*").
			Omit("id").
			Updates(&rec).Error
		if err != nil {
			return fmt.Errorf("%w: update consultation %d: %v", ErrIntegrity, id, err)
		}
		return nil
	})
}

// Delete removes the record permanently.
func (s *ConsultationStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Consultation{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete consultation %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type ageAggregate struct {
	Total      int64
	AverageAge *float64
}

// CountAndAverageAge returns the number of records and the mean age. The
// average is nil when there are no records.
func (s *ConsultationStore) CountAndAverageAge(ctx context.Context) (int64, *float64, error) {
	var agg ageAggregate
	err := s.db.WithContext(ctx).
		Model(&model.Consultation{}).
		Select("COUNT(*) AS total, AVG(age) AS average_age").
		Scan(&agg).Error
	if err != nil {
		return 0, nil, fmt.Errorf("aggregate consultations: %w", err)
	}
	if agg.Total == 0 {
		return 0, nil, nil
	}
	return agg.Total, agg.AverageAge, nil
}

// CountForDate counts records whose stored date equals date exactly.
func (s *ConsultationStore) CountForDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Consultation{}).
		Where("date_consultation = ?", date).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count consultations for %s: %w", date, err)
	}
	return count, nil
}
