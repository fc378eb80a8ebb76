package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-dashboard/internal/calendar"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
)

func newCalendarFixture() (*CalendarService, *fakeEventRepo, *fakeActivityRepo) {
	maint := newFakeMaintenanceRepo(
		entities.MaintenanceSchedule{
			ID: 1, EquipmentID: 1, EquipmentName: "Treadmill", EquipmentType: "Cardio",
			ScheduledDate: day(2024, 3, 5), Description: "Belt check",
			Priority: entities.PriorityMedium, Status: entities.MaintenanceScheduled,
		},
		entities.MaintenanceSchedule{
			ID: 2, EquipmentID: 2, EquipmentName: "Squat rack", EquipmentType: "Strength",
			ScheduledDate: day(2024, 3, 20), Description: "Bolt torque",
			Priority: entities.PriorityHigh, Status: entities.MaintenanceScheduled,
		},
	)
	events := &fakeEventRepo{events: []entities.CalendarEvent{{
		ID: 1, Title: "Staff meeting", EventDate: day(2024, 3, 15),
		Priority: entities.PriorityMedium, Status: "Scheduled",
	}}}
	activity := &fakeActivityRepo{}
	svc := NewCalendarService(&fakeTx{}, maint, events, activity, zap.NewNop())
	svc.now = func() time.Time { return march10 }
	return svc, events, activity
}

func allEvents(days []calendar.Day) []calendar.Event {
	var out []calendar.Event
	for _, d := range days {
		out = append(out, d.Events...)
	}
	return out
}

func TestGetMonth_Filters(t *testing.T) {
	svc, _, _ := newCalendarFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		filter CalendarFilter
		want   []string
	}{
		{"everything", CalendarFilter{}, []string{"Treadmill: Belt check", "Staff meeting", "Squat rack: Bolt torque"}},
		{"derived overdue status", CalendarFilter{Status: "overdue"}, []string{"Treadmill: Belt check"}},
		{"priority", CalendarFilter{Priority: "High"}, []string{"Squat rack: Bolt torque"}},
		{"equipment type hides ad-hoc events", CalendarFilter{EquipmentType: "Cardio"}, []string{"Treadmill: Belt check"}},
		{"events only", CalendarFilter{Source: "event"}, []string{"Staff meeting"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := svc.GetMonth(ctx, 2024, time.March, tt.filter)
			require.NoError(t, err)
			require.Len(t, days, 42)

			var titles []string
			for _, ev := range allEvents(days) {
				titles = append(titles, ev.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestGetMonth_MarksOverdueAndToday(t *testing.T) {
	svc, _, _ := newCalendarFixture()

	days, err := svc.GetMonth(context.Background(), 2024, time.March, CalendarFilter{})
	require.NoError(t, err)

	for _, d := range days {
		switch d.Date {
		case "2024-03-05":
			require.Len(t, d.Events, 1)
			assert.Equal(t, "Overdue", d.Events[0].Status)
			assert.Equal(t, calendar.SourceMaintenance, d.Events[0].SourceType)
		case "2024-03-10":
			assert.True(t, d.IsToday)
		case "2024-02-25":
			assert.False(t, d.IsCurrentMonth)
		}
	}
}

func TestGetMonth_InvalidMonth(t *testing.T) {
	svc, _, _ := newCalendarFixture()
	_, err := svc.GetMonth(context.Background(), 2024, time.Month(13), CalendarFilter{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateAndDeleteEvent(t *testing.T) {
	svc, events, activity := newCalendarFixture()
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, staff, dto.CreateCalendarEventDTO{Title: " Inspection ", EventDate: "2024-03-22"})
	require.NoError(t, err)
	assert.Equal(t, "Inspection", ev.Title)
	assert.Equal(t, entities.PriorityMedium, ev.Priority)
	assert.Equal(t, "Scheduled", ev.Status)
	assert.Len(t, events.events, 2)

	require.NoError(t, svc.DeleteEvent(ctx, staff, ev.ID))
	assert.Len(t, events.events, 1)
	assert.Len(t, activity.entries, 2)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, staff, 99), apperrors.ErrNotFound)

	_, err = svc.CreateEvent(ctx, staff, dto.CreateCalendarEventDTO{Title: "x", EventDate: "22/03/2024"})
	assert.True(t, apperrors.IsValidation(err))
}
