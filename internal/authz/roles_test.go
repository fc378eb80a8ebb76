package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "equipment-dashboard/pkg/errors"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"EquipmentManager":   RoleEquipmentManager,
		"equipment_manager":  RoleEquipmentManager,
		"Equipment Manager":  RoleEquipmentManager,
		"equipment-manager":  RoleEquipmentManager,
		"  EQUIPMENTMANAGER": RoleEquipmentManager,
		"staff":              "staff",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeRole(in), in)
	}
}

func TestSession_HasRole(t *testing.T) {
	s := Session{UserID: 1, Role: "EquipmentManager"}
	assert.True(t, s.HasRole(RoleEquipmentManager))
	assert.True(t, s.HasRole("staff", "equipment_manager"))
	assert.False(t, s.HasRole("staff"))
	assert.False(t, Session{UserID: 1}.HasRole(RoleEquipmentManager))
}

func TestSessionContextRoundTrip(t *testing.T) {
	_, err := SessionFromContext(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	ctx := WithSession(context.Background(), Session{UserID: 7, Role: "equipment_manager", Name: "Dana"})
	s, err := SessionFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.UserID)
	assert.Equal(t, "Dana", s.Name)
}
