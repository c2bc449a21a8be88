package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal/rbac"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users, rooms, timeslots and access control data.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initORM(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			// Delete order respects the foreign keys.
			for _, table := range []string{
				"booking_logs", "user_roles", "role_permissions",
				"bookings", "timeslots", "rooms", "users", "roles", "permissions",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		userID := seedUser(db, "User", "user@example.com", "user", cfg.Security.BCryptCost)
		adminID := seedUser(db, "Admin", "admin@example.com", "admin", cfg.Security.BCryptCost)

		roomAID := seedRoom(db, "Konferencia terem A", 10)
		roomBID := seedRoom(db, "Tárgyaló B", 6)

		slotID := seedTimeslot(db, roomAID, "2025-09-12 10:00:00", "2025-09-12 11:00:00")
		seedTimeslot(db, roomBID, "2025-09-12 11:00:00", "2025-09-12 12:00:00")

		seedBooking(db, userID, slotID)

		permissions := map[string]string{
			rbac.PermAdmin:           "Full access to every operation",
			rbac.PermCreateBooking:   "Can create bookings",
			rbac.PermUpdateBooking:   "Can update booking status",
			rbac.PermCancelBooking:   "Can cancel bookings",
			rbac.PermDeleteBooking:   "Can delete bookings",
			rbac.PermManageRooms:     "Can manage rooms",
			rbac.PermManageTimeslots: "Can manage timeslots",
			rbac.PermManageUsers:     "Can manage users",
			rbac.PermManageRoles:     "Can manage roles and permissions",
		}
		permIDs := make(map[string]int64, len(permissions))
		for name, desc := range permissions {
			permIDs[name] = seedPermission(db, name, desc)
		}

		adminRoleID := seedRole(db, "admin", "System administrator")
		userRoleID := seedRole(db, "user", "Regular user")

		seedGrant(db, adminRoleID, permIDs[rbac.PermAdmin])
		seedGrant(db, userRoleID, permIDs[rbac.PermCreateBooking])
		seedGrant(db, userRoleID, permIDs[rbac.PermCancelBooking])

		seedAssignment(db, adminID, adminRoleID)
		seedAssignment(db, userID, userRoleID)

		fmt.Println("Seeding complete")
	},
}

func seedUser(db *gorm.DB, name, email, password string, cost int) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Println("user already exists:", email)
		return id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatalf("failed to hash password for %s: %v", email, err)
	}

	if err := db.Exec(
		"INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, now())",
		name, email, string(hash)).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("user not found after insert %s: %v", email, err)
	}

	fmt.Println("Seeded user:", email)
	return id
}

func seedRoom(db *gorm.DB, name string, capacity int) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM rooms WHERE name = ?", name).Row().Scan(&id); err == nil {
		return id
	}

	if err := db.Exec(
		"INSERT INTO rooms (name, capacity, created_at) VALUES (?, ?, now())",
		name, capacity).Error; err != nil {
		log.Fatalf("failed to insert room %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM rooms WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("room not found after insert %s: %v", name, err)
	}

	fmt.Println("Seeded room:", name)
	return id
}

func seedTimeslot(db *gorm.DB, roomID int64, start, end string) int64 {
	var id int64
	if err := db.Raw(
		"SELECT id FROM timeslots WHERE room_id = ? AND start_time = ?",
		roomID, start).Row().Scan(&id); err == nil {
		return id
	}

	if err := db.Exec(
		"INSERT INTO timeslots (room_id, start_time, end_time, created_at) VALUES (?, ?, ?, now())",
		roomID, start, end).Error; err != nil {
		log.Fatalf("failed to insert timeslot: %v", err)
	}
	if err := db.Raw(
		"SELECT id FROM timeslots WHERE room_id = ? AND start_time = ?",
		roomID, start).Row().Scan(&id); err != nil {
		log.Fatalf("timeslot not found after insert: %v", err)
	}

	return id
}

func seedBooking(db *gorm.DB, userID, timeslotID int64) {
	var exists int
	if err := db.Raw("SELECT 1 FROM bookings WHERE timeslot_id = ?", timeslotID).Row().Scan(&exists); err == nil {
		return
	}

	if err := db.Exec(
		"INSERT INTO bookings (user_id, timeslot_id, status, created_at) VALUES (?, ?, 'booked', now())",
		userID, timeslotID).Error; err != nil {
		log.Fatalf("failed to insert booking: %v", err)
	}

	fmt.Println("Seeded booking for timeslot", timeslotID)
}

func seedPermission(db *gorm.DB, name, description string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", name).Row().Scan(&id); err == nil {
		return id
	}

	if err := db.Exec(
		"INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", name, description).Error; err != nil {
		log.Fatalf("failed to insert permission %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("permission not found after insert %s: %v", name, err)
	}

	return id
}

func seedRole(db *gorm.DB, name, description string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Row().Scan(&id); err == nil {
		return id
	}

	if err := db.Exec(
		"INSERT INTO roles (name, description, created_at) VALUES (?, ?, now())", name, description).Error; err != nil {
		log.Fatalf("failed to insert role %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("role not found after insert %s: %v", name, err)
	}

	return id
}

func seedGrant(db *gorm.DB, roleID, permissionID int64) {
	var exists int
	if err := db.Raw(
		"SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?",
		roleID, permissionID).Row().Scan(&exists); err == nil {
		return
	}

	if err := db.Exec(
		"INSERT INTO role_permissions (role_id, permission_id, created_at) VALUES (?, ?, now())",
		roleID, permissionID).Error; err != nil {
		log.Fatalf("failed to grant permission %d to role %d: %v", permissionID, roleID, err)
	}
}

func seedAssignment(db *gorm.DB, userID, roleID int64) {
	var exists int
	if err := db.Raw(
		"SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?",
		userID, roleID).Row().Scan(&exists); err == nil {
		return
	}

	if err := db.Exec(
		"INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, now())",
		userID, roleID).Error; err != nil {
		log.Fatalf("failed to assign role %d to user %d: %v", roleID, userID, err)
	}
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
