package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nidolabs/nido/internal/models"
)

type fakeActivityRepo struct {
	records map[uint]*models.ActivityRecord
	nextID  uint
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{records: make(map[uint]*models.ActivityRecord), nextID: 1}
}

func (repo *fakeActivityRepo) FindByID(recordID uint) (models.ActivityRecord, error) {
	record, ok := repo.records[recordID]
	if !ok {
		return models.ActivityRecord{}, errors.New("not found")
	}
	return *record, nil
}

func (repo *fakeActivityRepo) ListByProfile(profileID uint, limit int) ([]models.ActivityRecord, error) {
	result := make([]models.ActivityRecord, 0)
	for _, record := range repo.records {
		if record.ProfileID == profileID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (repo *fakeActivityRepo) ListByProfileRange(profileID uint, from time.Time, to time.Time) ([]models.ActivityRecord, error) {
	result := make([]models.ActivityRecord, 0)
	for _, record := range repo.records {
		if record.ProfileID == profileID && !record.StartedAt.Before(from) && record.StartedAt.Before(to) {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (repo *fakeActivityRepo) Create(record *models.ActivityRecord) error {
	record.ID = repo.nextID
	repo.nextID++
	stored := *record
	repo.records[record.ID] = &stored
	return nil
}

func (repo *fakeActivityRepo) Save(record *models.ActivityRecord) error {
	stored := *record
	repo.records[record.ID] = &stored
	return nil
}

func (repo *fakeActivityRepo) DeleteByID(recordID uint) error {
	delete(repo.records, recordID)
	return nil
}

func TestRecordValidatesKindAndRange(t *testing.T) {
	service := NewActivityService(newFakeActivityRepo())
	now := time.Now()

	if _, err := service.Record(1, 7, ActivityInput{Kind: "bath", StartedAt: now}); !errors.Is(err, ErrInvalidActivityKind) {
		t.Fatalf("expected ErrInvalidActivityKind, got %v", err)
	}

	before := now.Add(-time.Hour)
	if _, err := service.Record(1, 7, ActivityInput{Kind: models.ActivitySleep, StartedAt: now, EndedAt: &before}); !errors.Is(err, ErrInvalidActivityRange) {
		t.Fatalf("expected ErrInvalidActivityRange, got %v", err)
	}

	record, err := service.Record(1, 7, ActivityInput{Kind: " Sleep ", StartedAt: now})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if record.Kind != models.ActivitySleep {
		t.Fatalf("kind not normalized: %q", record.Kind)
	}
	if record.RecordedBy != 7 {
		t.Fatalf("recorded_by = %d, want 7", record.RecordedBy)
	}
}

func TestUpdateAndDeleteTreatCrossProfileIDsAsNotFound(t *testing.T) {
	repo := newFakeActivityRepo()
	service := NewActivityService(repo)
	now := time.Now()

	record, err := service.Record(1, 7, ActivityInput{Kind: models.ActivityDiaper, StartedAt: now})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	input := ActivityInput{Kind: models.ActivityDiaper, StartedAt: now}
	if _, err := service.Update(2, record.ID, input); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound on cross-profile update, got %v", err)
	}
	if err := service.Delete(2, record.ID); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound on cross-profile delete, got %v", err)
	}

	if err := service.Delete(1, record.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("record not deleted")
	}
}
