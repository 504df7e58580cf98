package aggregate

import (
	"fmt"
	"time"

	"marketplace-backend/internal/domain/event"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleAdmin  UserRole = "Admin"
	RoleVendor UserRole = "Vendor"
	RoleUser   UserRole = "User"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleVendor || r == RoleUser
}

type User struct {
	id             string
	name           string
	email          string
	hashedPassword string
	role           UserRole
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	isActive       bool

	uncommittedEvents []event.DomainEvent
}

// NewUser creates a new user account with a hashed password
func NewUser(name, email, password string, role UserRole) (*User, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &User{
		id:             uuid.New().String(),
		name:           name,
		email:          email,
		hashedPassword: string(hashedPassword),
		role:           role,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
		isActive:       true,
	}

	user.raiseEvent(&event.UserCreated{
		UserID:         user.id,
		Name:           name,
		Email:          email,
		HashedPassword: user.hashedPassword,
		Role:           string(role),
		IsActive:       true,
		Timestamp:      now,
	})

	return user, nil
}

// ReconstructUser rebuilds a user from persisted state
func ReconstructUser(id, name, email, hashedPassword string, role UserRole, version int, createdAt, updatedAt time.Time, isActive bool) *User {
	return &User{
		id:             id,
		name:           name,
		email:          email,
		hashedPassword: hashedPassword,
		role:           role,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isActive:       isActive,
	}
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.hashedPassword), []byte(password)) == nil
}

// UpdateProfile changes the user's name and email
func (u *User) UpdateProfile(name, email string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	now := time.Now()
	u.name = name
	u.email = email
	u.version++
	u.updatedAt = now

	u.raiseEvent(&event.UserProfileUpdated{
		UserID:       u.id,
		Name:         name,
		Email:        email,
		EventVersion: u.version,
		Timestamp:    now,
	})

	return nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u.hashedPassword = string(hashedPassword)
	u.version++
	u.updatedAt = now

	u.raiseEvent(&event.UserPasswordChanged{
		UserID:         u.id,
		HashedPassword: u.hashedPassword,
		EventVersion:   u.version,
		Timestamp:      now,
	})

	return nil
}

// PromoteToRole changes the user's role
func (u *User) PromoteToRole(role UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now()
	u.role = role
	u.version++
	u.updatedAt = now

	u.raiseEvent(&event.UserRoleUpdated{
		UserID:       u.id,
		Role:         string(role),
		EventVersion: u.version,
		Timestamp:    now,
	})

	return nil
}

// Delete deactivates the user account
func (u *User) Delete() error {
	now := time.Now()
	u.isActive = false
	u.version++
	u.updatedAt = now

	u.raiseEvent(&event.UserDeleted{
		UserID:       u.id,
		EventVersion: u.version,
		Timestamp:    now,
	})

	return nil
}

func (u *User) raiseEvent(ev event.DomainEvent) {
	u.uncommittedEvents = append(u.uncommittedEvents, ev)
}

func (u *User) GetUncommittedEvents() []event.DomainEvent {
	return u.uncommittedEvents
}

func (u *User) MarkEventsAsCommitted() {
	u.uncommittedEvents = nil
}

// Getters
func (u *User) ID() string             { return u.id }
func (u *User) Name() string           { return u.name }
func (u *User) Email() string          { return u.email }
func (u *User) HashedPassword() string { return u.hashedPassword }
func (u *User) Role() UserRole         { return u.role }
func (u *User) Version() int           { return u.version }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }
func (u *User) IsActive() bool         { return u.isActive }
