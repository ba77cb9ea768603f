package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/timetracker/internal/modules"
	"github.com/frahmantamala/timetracker/internal/passcode"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Onboard a new property interactively",
	Long:  `Walk through creating a property, its first admin employee and its module selection.`,
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

		reader := bufio.NewReader(os.Stdin)

		code := prompt(reader, "Property code (short, unique, e.g. ABC123)")
		name := prompt(reader, "Property name")
		email := prompt(reader, "Contact email (magic links go here)")
		address := promptDefault(reader, "Street address", "")
		city := promptDefault(reader, "City", "")
		state := promptDefault(reader, "State/Province", "")
		zip := promptDefault(reader, "Postal code", "")
		timezone := promptDefault(reader, "Timezone", "America/New_York")
		propertyType := promptDefault(reader, "Property type", "hotel")

		var exists int
		if err := db.Raw("SELECT 1 FROM properties WHERE code = ?", code).Row().Scan(&exists); err == nil {
			log.Fatalf("property with code %s already exists", code)
		}

		adminFirst := prompt(reader, "Admin first name")
		adminLast := prompt(reader, "Admin last name")
		adminCode := prompt(reader, "Admin passcode (4 digits)")
		if !passcode.ValidatePasscode(adminCode) {
			log.Fatal("invalid passcode: must be exactly 4 digits")
		}
		hash, err := passcode.Hash(adminCode)
		if err != nil {
			log.Fatalf("failed to hash passcode: %v", err)
		}

		moduleKeys := promptModules(reader)

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(
				"INSERT INTO properties (code, name, email, is_active, address_line1, city, state_province, postal_code, timezone, property_type, created_at, updated_at) VALUES (?, ?, ?, true, ?, ?, ?, ?, ?, ?, now(), now())",
				code, name, email, address, city, state, zip, timezone, propertyType,
			).Error; err != nil {
				return fmt.Errorf("insert property: %w", err)
			}

			var propertyID int64
			if err := tx.Raw("SELECT id FROM properties WHERE code = ?", code).Row().Scan(&propertyID); err != nil {
				return fmt.Errorf("lookup property: %w", err)
			}

			if err := tx.Exec(
				"INSERT INTO employees (property_id, first_name, last_name, passcode_hash, is_admin, status, pay_type, created_at, updated_at) VALUES (?, ?, ?, ?, true, 'active', 'salary', now(), now())",
				propertyID, adminFirst, adminLast, hash,
			).Error; err != nil {
				return fmt.Errorf("insert admin: %w", err)
			}

			for _, key := range moduleKeys {
				if err := tx.Exec(
					"INSERT INTO property_modules (property_id, module_key, created_at) VALUES (?, ?, now())",
					propertyID, key,
				).Error; err != nil {
					return fmt.Errorf("insert module %s: %w", key, err)
				}
			}

			return nil
		})
		if err != nil {
			log.Fatalf("onboarding failed: %v", err)
		}

		fmt.Printf("Property %s (%s) onboarded with admin %s %s and modules %s\n",
			name, code, adminFirst, adminLast, strings.Join(moduleKeys, ", "))
	},
}

func prompt(reader *bufio.Reader, label string) string {
	for {
		fmt.Printf("%s: ", label)
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
		fmt.Println("value is required")
	}
}

func promptDefault(reader *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s (optional): ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptModules(reader *bufio.Reader) []string {
	fmt.Printf("Modules [%s]\n", strings.Join(modules.AllModuleKeys, ", "))
	fmt.Print("Comma-separated module keys (empty for all): ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return modules.AllModuleKeys
	}

	selected := modules.Normalize(strings.Split(line, ","))
	return modules.EnsureBase(selected)
}
