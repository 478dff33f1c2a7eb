package repositories

import "gorm.io/gorm"

// UnitOfWork runs a function against repositories bound to one database
// transaction. Returning an error from fn rolls everything back.
type UnitOfWork interface {
	WithinTransaction(fn func(users UserRepository, stores StoreRepository) error) error
}

// GORMUnitOfWork is a GORM implementation of UnitOfWork.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{db: db}
}

// WithinTransaction opens a transaction on a dedicated connection and commits
// only if fn returns nil.
func (u *GORMUnitOfWork) WithinTransaction(fn func(users UserRepository, stores StoreRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMUserRepository(tx), NewGORMStoreRepository(tx))
	})
}
