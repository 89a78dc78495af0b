package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ariebrainware/cabinet-pediatrie/model"
	"github.com/ariebrainware/cabinet-pediatrie/util"
	"gorm.io/gorm"
)

const (
	// DefaultUsername is the account seeded on first run.
	DefaultUsername = "doctor"
	// DefaultPassword is the documented weak default for DefaultUsername.
	DefaultPassword = "doctor"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknownUserHash is compared against when the username does not exist so a
// failed lookup costs the same bcrypt work as a wrong password.
func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		h, err := util.HashPassword("unknown-user-placeholder")
		if err != nil {
			panic(fmt.Sprintf("failed to prepare placeholder hash: %v", err))
		}
		dummyHash = h
	})
	return dummyHash
}

// CredentialStore gates access with the seeded account.
type CredentialStore struct {
	db *gorm.DB
}

// NewCredentialStore creates a CredentialStore on an open storage handle.
func NewCredentialStore(db *gorm.DB) *CredentialStore {
	if db == nil {
		panic("database connection cannot be nil for CredentialStore")
	}
	return &CredentialStore{db: db}
}

// Initialize creates the users table when missing and seeds the default
// account. It is safe to call on every startup.
func (s *CredentialStore) Initialize(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}

	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", DefaultUsername).Count(&count).Error; err != nil {
		return fmt.Errorf("look up default user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := util.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	if err := model.SeedUser(db, DefaultUsername, hash); err != nil {
		return err
	}
	util.Logger().WithField("username", DefaultUsername).Warn("Seeded default account; change its password")
	return nil
}

// Verify reports whether password matches the stored hash for username.
// Unknown usernames and wrong passwords both yield false with a nil error;
// an error is only returned when storage itself fails.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (bool, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, _ = util.VerifyPassword(password, unknownUserHash())
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up user: %w", err)
	}

	ok, err := util.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A corrupt stored hash must not be distinguishable from a bad password.
		util.Logger().WithError(err).WithField("user_id", user.ID).Error("Stored password hash is unreadable")
		return false, nil
	}
	return ok, nil
}

// Authenticate is Verify with a rejected pair reported as ErrAuthFailure.
func (s *CredentialStore) Authenticate(ctx context.Context, username, password string) error {
	ok, err := s.Verify(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthFailure
	}
	return nil
}
