package testutil

import (
	"fmt"
	"testing"

	"storerating/internal/database"
	"storerating/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDatabase opens a private in-memory SQLite database with foreign
// keys enforced and the full schema migrated. Each call gets its own
// database, so tests never see each other's rows.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	db, err := database.Open(database.Config{Driver: "sqlite", DSN: dsn, LogLevel: gormlogger.Silent})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user whose password is bcrypt-hashed at minimum cost.
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{Name: name, Email: email, Password: string(hash), Address: "1 Test Street", Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

// CreateStore inserts a store, optionally owned by ownerID.
func CreateStore(t *testing.T, db *gorm.DB, name, address string, ownerID *uint) *models.Store {
	t.Helper()
	store := &models.Store{Name: name, Address: address, OwnerID: ownerID}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("Failed to create store %s: %v", name, err)
	}
	return store
}

// CountRows returns the row count of a model's table.
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
