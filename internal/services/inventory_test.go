package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
)

func towels(quantity int) entities.InventoryItem {
	return entities.InventoryItem{ID: 1, Name: "Towels", Category: "Supplies", Quantity: quantity, MinQuantity: 3, UnitPrice: 4.5}
}

// Every adjustment either lands exactly one ledger row with consistent quantities, or is
// rejected leaving stock, ledger and activity untouched.
func TestAdjustQuantity_NeverNegative(t *testing.T) {
	for start := 0; start <= 5; start++ {
		for delta := -7; delta <= 7; delta++ {
			if delta == 0 {
				continue
			}
			t.Run(fmt.Sprintf("%d%+d", start, delta), func(t *testing.T) {
				repo := newFakeInventoryRepo(towels(start))
				activity := &fakeActivityRepo{}
				svc := NewInventoryService(&fakeTx{}, repo, activity, zap.NewNop())

				item, ledger, err := svc.AdjustQuantity(context.Background(), staff, 1,
					dto.AdjustInventoryDTO{Adjustment: delta, Reason: "count"})

				if start+delta < 0 {
					assert.True(t, apperrors.IsValidation(err))
					assert.Nil(t, item)
					assert.Nil(t, ledger)
					assert.Equal(t, start, repo.items[1].Quantity)
					assert.Empty(t, repo.transactions)
					assert.Empty(t, activity.entries)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, start+delta, item.Quantity)
				assert.Equal(t, start+delta, repo.items[1].Quantity)
				require.Len(t, repo.transactions, 1)
				row := repo.transactions[0]
				assert.Equal(t, start, row.PreviousQuantity)
				assert.Equal(t, delta, row.Adjustment)
				assert.Equal(t, start+delta, row.NewQuantity)
				assert.Equal(t, ledger.ID, row.ID)
				assert.Len(t, activity.entries, 1)
			})
		}
	}
}

func TestAdjustQuantity_RejectsEmptyInput(t *testing.T) {
	repo := newFakeInventoryRepo(towels(5))
	svc := NewInventoryService(&fakeTx{}, repo, &fakeActivityRepo{}, zap.NewNop())
	ctx := context.Background()

	_, _, err := svc.AdjustQuantity(ctx, staff, 1, dto.AdjustInventoryDTO{Adjustment: 0, Reason: "x"})
	assert.True(t, apperrors.IsValidation(err))

	_, _, err = svc.AdjustQuantity(ctx, staff, 1, dto.AdjustInventoryDTO{Adjustment: 2, Reason: "   "})
	assert.True(t, apperrors.IsValidation(err))

	_, _, err = svc.AdjustQuantity(ctx, staff, 9, dto.AdjustInventoryDTO{Adjustment: 2, Reason: "restock"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdjustQuantity_StockStatusFollowsQuantity(t *testing.T) {
	repo := newFakeInventoryRepo(towels(5))
	svc := NewInventoryService(&fakeTx{}, repo, &fakeActivityRepo{}, zap.NewNop())

	item, _, err := svc.AdjustQuantity(context.Background(), staff, 1, dto.AdjustInventoryDTO{Adjustment: -2, Reason: "used"})
	require.NoError(t, err)
	assert.Equal(t, entities.StockLow, item.StockStatus)
	assert.InDelta(t, 13.5, item.TotalValue, 0.0001)

	item, _, err = svc.AdjustQuantity(context.Background(), staff, 1, dto.AdjustInventoryDTO{Adjustment: -3, Reason: "used"})
	require.NoError(t, err)
	assert.Equal(t, entities.StockEmpty, item.StockStatus)
}

func TestCreateItem_InitialStockLedger(t *testing.T) {
	repo := newFakeInventoryRepo()
	activity := &fakeActivityRepo{}
	svc := NewInventoryService(&fakeTx{}, repo, activity, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, staff, dto.CreateInventoryItemDTO{Name: "Chalk", Category: "Supplies", Quantity: 12, MinQuantity: 4})
	require.NoError(t, err)
	assert.Equal(t, entities.StockIn, created.StockStatus)
	require.Len(t, repo.transactions, 1)
	assert.Equal(t, 12, repo.transactions[0].NewQuantity)
	assert.Equal(t, "Initial stock", repo.transactions[0].Reason)

	_, err = svc.CreateItem(ctx, staff, dto.CreateInventoryItemDTO{Name: "Bands", Category: "Accessories"})
	require.NoError(t, err)
	assert.Len(t, repo.transactions, 1)
	assert.Len(t, activity.entries, 2)

	_, err = svc.CreateItem(ctx, staff, dto.CreateInventoryItemDTO{Name: "Bad", Category: "X", Quantity: -1})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateItem_KeepsQuantity(t *testing.T) {
	repo := newFakeInventoryRepo(towels(8))
	svc := NewInventoryService(&fakeTx{}, repo, &fakeActivityRepo{}, zap.NewNop())
	minQty := 10

	updated, err := svc.UpdateItem(context.Background(), staff, 1, dto.UpdateInventoryItemDTO{MinQuantity: &minQty})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, entities.StockLow, updated.StockStatus)
}

func TestGetTransactions_UnknownItem(t *testing.T) {
	svc := NewInventoryService(&fakeTx{}, newFakeInventoryRepo(), &fakeActivityRepo{}, zap.NewNop())
	_, _, err := svc.GetTransactions(context.Background(), 3, dtoFilter())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
