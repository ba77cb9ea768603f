package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/timetracker/internal/modules"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes, and backfill module access.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"clock_logs", "employee_modules", "property_modules", "employee_pay_history", "admin_sessions", "device_sessions", "magic_links", "employees", "properties"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		propertyCode := "ABC123"
		var propertyID int64
		row := db.Raw("SELECT id FROM properties WHERE code = ?", propertyCode).Row()
		if err := row.Scan(&propertyID); err != nil {
			if err := db.Exec(
				"INSERT INTO properties (code, name, email, is_active, timezone, property_type, created_at, updated_at) VALUES (?, ?, ?, true, ?, ?, now(), now())",
				propertyCode, "Sunrise Inn", "manager@sunriseinn.test", "America/New_York", "hotel",
			).Error; err != nil {
				log.Fatalf("failed to insert sample property: %v", err)
			}
			if err := db.Raw("SELECT id FROM properties WHERE code = ?", propertyCode).Row().Scan(&propertyID); err != nil {
				log.Fatalf("failed to lookup sample property: %v", err)
			}
			fmt.Println("Seeded sample property:", propertyCode)
		} else {
			fmt.Println("sample property already exists:", propertyCode)
		}

		// Passcodes are stored in the legacy plaintext format on purpose so
		// the first kiosk login exercises the transparent rehash path.
		staff := []struct {
			First    string
			Last     string
			Passcode string
			IsAdmin  bool
			PayType  string
			Cents    int64
		}{
			{"Alice", "Nguyen", "1234", true, "salary", 5200000},
			{"Ben", "Ortiz", "5678", false, "hourly", 1850},
		}

		for _, m := range staff {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE property_id = ? AND first_name = ? AND last_name = ?", propertyID, m.First, m.Last).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO employees (property_id, first_name, last_name, passcode_hash, is_admin, status, pay_type, pay_amount_cents, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 'active', ?, ?, now(), now())",
				propertyID, m.First, m.Last, m.Passcode, m.IsAdmin, m.PayType, m.Cents,
			).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", m.First, err)
			}
			fmt.Printf("Seeded employee: %s %s (passcode %s)\n", m.First, m.Last, m.Passcode)
		}

		backfillModuleAccess(db)

		fmt.Println("Seed complete")
	},
}

// backfillModuleAccess gives every property the full module set and every
// admin an explicit grant for each of their property's modules.
func backfillModuleAccess(db *gorm.DB) {
	rows, err := db.Raw("SELECT id FROM properties").Rows()
	if err != nil {
		log.Fatalf("failed to list properties: %v", err)
	}
	defer rows.Close()

	var propertyIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Fatalf("failed to scan property id: %v", err)
		}
		propertyIDs = append(propertyIDs, id)
	}

	for _, pid := range propertyIDs {
		for _, key := range modules.AllModuleKeys {
			var exists int
			if err := db.Raw("SELECT 1 FROM property_modules WHERE property_id = ? AND module_key = ?", pid, key).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO property_modules (property_id, module_key, created_at) VALUES (?, ?, now())", pid, key).Error; err != nil {
				log.Fatalf("failed to backfill property module %s: %v", key, err)
			}
		}

		adminRows, err := db.Raw("SELECT id FROM employees WHERE property_id = ? AND is_admin = true", pid).Rows()
		if err != nil {
			log.Fatalf("failed to list admins: %v", err)
		}
		var adminIDs []int64
		for adminRows.Next() {
			var id int64
			if err := adminRows.Scan(&id); err != nil {
				adminRows.Close()
				log.Fatalf("failed to scan admin id: %v", err)
			}
			adminIDs = append(adminIDs, id)
		}
		adminRows.Close()

		for _, aid := range adminIDs {
			for _, key := range modules.AllModuleKeys {
				var exists int
				if err := db.Raw("SELECT 1 FROM employee_modules WHERE employee_id = ? AND module_key = ?", aid, key).Row().Scan(&exists); err == nil {
					continue
				}
				if err := db.Exec("INSERT INTO employee_modules (employee_id, module_key, created_at) VALUES (?, ?, now())", aid, key).Error; err != nil {
					log.Fatalf("failed to backfill employee module %s: %v", key, err)
				}
			}
		}
	}

	fmt.Println("Module access backfilled for", len(propertyIDs), "properties")
}
