package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"equipment-dashboard/internal/entities"
	"equipment-dashboard/pkg/utils"
)

// SeedUsers creates the staff accounts if they are missing.
func SeedUsers(ctx context.Context, db *pgxpool.Pool, password string) error {
	log.Println("  - seeding users...")

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	for _, u := range usersData {
		if _, err := db.Exec(ctx,
			`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
			u.Name, u.Email, hashed, u.Role); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
	}
	return nil
}

// SeedDemoData fills equipment, inventory and maintenance. Rows keyed by a unique
// serial number are skipped when present, so the seeder can be run twice.
func SeedDemoData(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := seedEquipment(ctx, tx); err != nil {
		return err
	}
	if err := seedInventory(ctx, tx); err != nil {
		return err
	}
	if err := seedMaintenance(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func seedEquipment(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - seeding equipment...")

	query := `INSERT INTO equipment (name, type, status, location, serial_number, manufacturer, purchase_date, warranty_expiry, cost)
			  VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::date, NULLIF($8, '')::date, $9)
			  ON CONFLICT (serial_number) DO NOTHING`
	for _, e := range equipmentData {
		if _, err := tx.Exec(ctx, query, e.Name, e.Type, string(e.Status), e.Location, e.SerialNumber,
			e.Manufacturer, e.PurchaseDate, e.Warranty, e.Cost); err != nil {
			return fmt.Errorf("insert equipment %s: %w", e.SerialNumber, err)
		}
	}
	return nil
}

func seedInventory(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - seeding inventory...")

	var count int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM inventory_items").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("    inventory already present, skipping")
		return nil
	}

	for _, item := range inventoryData {
		var id uint64
		if err := tx.QueryRow(ctx,
			`INSERT INTO inventory_items (name, category, quantity, min_quantity, unit_price, supplier, location)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			item.Name, item.Category, item.Quantity, item.MinQty, item.UnitPrice, item.Supplier, item.Location,
		).Scan(&id); err != nil {
			return fmt.Errorf("insert inventory item %s: %w", item.Name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO inventory_transactions (item_id, previous_quantity, adjustment, new_quantity, reason)
			 VALUES ($1, 0, $2, $2, 'Initial stock')`, id, item.Quantity); err != nil {
			return fmt.Errorf("insert initial stock for %s: %w", item.Name, err)
		}
	}
	return nil
}

func seedMaintenance(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - seeding maintenance schedules...")

	ids, err := mapIDsBySerial(ctx, tx)
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, m := range maintenanceData {
		equipmentID, ok := ids[m.SerialNumber]
		if !ok {
			log.Printf("WARNING: equipment %s not found, skipping maintenance", m.SerialNumber)
			continue
		}
		scheduled := today.AddDate(0, 0, m.DaysFromNow)

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM maintenance_schedules WHERE equipment_id = $1 AND description = $2)`,
			equipmentID, m.Description).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		var completion *time.Time
		if m.Status == entities.MaintenanceCompleted {
			completion = &scheduled
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO maintenance_schedules (equipment_id, scheduled_date, description, priority, status, completion_date, cost)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			equipmentID, scheduled, m.Description, string(m.Priority), string(m.Status), completion, m.Cost); err != nil {
			return fmt.Errorf("insert maintenance for %s: %w", m.SerialNumber, err)
		}
	}
	return nil
}

func mapIDsBySerial(ctx context.Context, tx pgx.Tx) (map[string]uint64, error) {
	rows, err := tx.Query(ctx, "SELECT id, serial_number FROM equipment")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]uint64)
	for rows.Next() {
		var id uint64
		var serial string
		if err := rows.Scan(&id, &serial); err != nil {
			return nil, err
		}
		ids[serial] = id
	}
	return ids, rows.Err()
}
