package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ariebrainware/cabinet-pediatrie/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupStoreTestDB opens a private in-memory SQLite database for one test.
func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:storetest_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func setupConsultationStore(t *testing.T) (*ConsultationStore, *gorm.DB) {
	t.Helper()
	db := setupStoreTestDB(t)
	s := NewConsultationStore(db)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize consultation store: %v", err)
	}
	return s, db
}

func strPtr(s string) *string { return &s }

func sampleConsultation(date string, age int) model.Consultation {
	return model.Consultation{
		Date:               date,
		PatientLastName:    "Martin",
		PatientFirstName:   "Léa",
		Age:                age,
		Reason:             "Fièvre",
		ClinicalExam:       strPtr("Gorge rouge"),
		ComplementaryExams: nil,
		Treatment:          strPtr("Paracétamol"),
	}
}
