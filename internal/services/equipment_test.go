package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
)

var staff = authz.Session{UserID: 7, Role: "equipment_manager", Name: "Dana"}

func newEquipmentFixture(seed ...entities.Equipment) (*EquipmentService, *fakeEquipmentRepo, *fakeActivityRepo) {
	repo := newFakeEquipmentRepo(seed...)
	activity := &fakeActivityRepo{}
	svc := NewEquipmentService(&fakeTx{}, repo, activity, zap.NewNop())
	return svc, repo, activity
}

func treadmill() entities.Equipment {
	return entities.Equipment{
		ID:           1,
		Name:         "Treadmill",
		Type:         "Cardio",
		Status:       entities.EquipmentAvailable,
		Location:     "Floor 1",
		SerialNumber: "TM-001",
	}
}

func TestCreateEquipment_DuplicateSerialIsConflict(t *testing.T) {
	svc, repo, activity := newEquipmentFixture(treadmill())

	_, err := svc.CreateEquipment(context.Background(), staff, dto.CreateEquipmentDTO{
		Name: "Second treadmill", Type: "Cardio", Status: "Available", Location: "Floor 2", SerialNumber: "TM-001",
	})

	var conflict *apperrors.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "serial_number", conflict.Field)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Zero(t, repo.creates)
	assert.Empty(t, activity.entries)
}

func TestCreateEquipment_DefaultsAndLogsActivity(t *testing.T) {
	svc, repo, activity := newEquipmentFixture()
	purchased := "2023-06-01"

	created, err := svc.CreateEquipment(context.Background(), staff, dto.CreateEquipmentDTO{
		Name: " Rowing machine ", Type: "Cardio", Status: "Available", Location: "Floor 1",
		SerialNumber: "RW-9", PurchaseDate: &purchased,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rowing machine", created.Name)
	assert.Equal(t, entities.DefaultExpectedLifetimeDays, created.ExpectedLifetimeDays)
	assert.True(t, created.PurchaseDate.Valid)
	assert.Equal(t, 1, repo.creates)

	require.Len(t, activity.entries, 1)
	entry := activity.entries[0]
	assert.Equal(t, created.ID, entry.EquipmentID.Uint64)
	assert.Equal(t, staff.UserID, entry.UserID.Uint64)
	assert.Contains(t, entry.Action, "Rowing machine")
}

func TestCreateEquipment_BadDate(t *testing.T) {
	svc, repo, _ := newEquipmentFixture()
	bad := "06/01/2023"

	_, err := svc.CreateEquipment(context.Background(), staff, dto.CreateEquipmentDTO{
		Name: "Bike", Type: "Cardio", Status: "Available", Location: "Floor 1", SerialNumber: "BK-1", PurchaseDate: &bad,
	})
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, repo.creates)
}

func TestUpdateEquipment_SnapshotAndSerialCheck(t *testing.T) {
	other := treadmill()
	other.ID, other.SerialNumber, other.Name = 2, "TM-002", "Other treadmill"
	svc, repo, activity := newEquipmentFixture(treadmill(), other)
	ctx := context.Background()

	taken := "TM-002"
	_, err := svc.UpdateEquipment(ctx, staff, 1, dto.UpdateEquipmentDTO{SerialNumber: &taken})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, activity.entries)

	location := "Floor 3"
	same := "TM-001"
	updated, err := svc.UpdateEquipment(ctx, staff, 1, dto.UpdateEquipmentDTO{Location: &location, SerialNumber: &same})
	require.NoError(t, err)
	assert.Equal(t, "Floor 3", updated.Location)
	assert.Equal(t, "Floor 3", repo.rows[1].Location)

	require.Len(t, activity.entries, 1)
	var snap struct {
		Before entities.Equipment `json:"before"`
		After  entities.Equipment `json:"after"`
	}
	require.NoError(t, json.Unmarshal(activity.entries[0].Details, &snap))
	assert.Equal(t, "Floor 1", snap.Before.Location)
	assert.Equal(t, "Floor 3", snap.After.Location)
}

func TestDeleteEquipment_LogsWithoutReference(t *testing.T) {
	svc, repo, activity := newEquipmentFixture(treadmill())

	require.NoError(t, svc.DeleteEquipment(context.Background(), staff, 1))
	assert.Empty(t, repo.rows)
	require.Len(t, activity.entries, 1)
	assert.False(t, activity.entries[0].EquipmentID.Valid)
	assert.Contains(t, string(activity.entries[0].Details), "TM-001")

	err := svc.DeleteEquipment(context.Background(), staff, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBulkUpdateStatus(t *testing.T) {
	second := treadmill()
	second.ID, second.SerialNumber = 2, "TM-002"
	svc, repo, activity := newEquipmentFixture(treadmill(), second)
	ctx := context.Background()

	n, err := svc.BulkUpdateStatus(ctx, staff, dto.BulkEquipmentStatusDTO{IDs: []uint64{1, 2}, Status: "Maintenance"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, entities.EquipmentMaintenance, repo.rows[1].Status)
	assert.Equal(t, entities.EquipmentMaintenance, repo.rows[2].Status)
	assert.Len(t, activity.entries, 2)

	_, err = svc.BulkUpdateStatus(ctx, staff, dto.BulkEquipmentStatusDTO{IDs: []uint64{99}, Status: "Available"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.BulkUpdateStatus(ctx, staff, dto.BulkEquipmentStatusDTO{IDs: []uint64{1}, Status: "Broken"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestRecordUsage(t *testing.T) {
	svc, repo, activity := newEquipmentFixture(treadmill())
	fixed := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	usage, err := svc.RecordUsage(ctx, staff, 1, dto.RecordUsageDTO{DurationMinutes: 45})
	require.NoError(t, err)
	assert.Equal(t, fixed, usage.StartedAt)
	assert.Equal(t, fixed.Add(45*time.Minute), usage.EndedAt.Time)
	assert.Len(t, repo.usage, 1)
	assert.Len(t, activity.entries, 1)

	started := "2024-03-04T18:00:00Z"
	usage, err = svc.RecordUsage(ctx, staff, 1, dto.RecordUsageDTO{StartedAt: &started, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), usage.StartedAt)

	_, err = svc.RecordUsage(ctx, staff, 42, dto.RecordUsageDTO{DurationMinutes: 10})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
