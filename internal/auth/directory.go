package auth

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountStatus marks whether a user may sign in.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// User is a row of the user table. The password hash never leaves the package.
type User struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status"`
	LastLogin *time.Time    `json:"lastLogin"`

	hash []byte
}

// NewUser is the payload for creating a user.
type NewUser struct {
	Username string `json:"username" yaml:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" yaml:"email" validate:"required,email"`
	Password string `json:"password" yaml:"password" validate:"required,min=6"`
	Role     Role   `json:"role" yaml:"role" validate:"omitempty,oneof=admin operator viewer"`
}

var validate = validator.New()

// Directory is the in-memory user table.
type Directory struct {
	mu     sync.RWMutex
	users  map[string]*User
	byName map[string]string
	cost   int
	now    func() time.Time
}

// NewDirectory creates an empty directory hashing passwords at the given
// bcrypt cost. A cost of zero selects bcrypt.DefaultCost.
func NewDirectory(cost int) *Directory {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{
		users:  make(map[string]*User),
		byName: make(map[string]string),
		cost:   cost,
		now:    time.Now,
	}
}

// SeedDefaults installs the built-in accounts. john.doe has no password and
// cannot sign in.
func (d *Directory) SeedDefaults() error {
	seed := []NewUser{
		{Username: "admin", Email: "admin@company.com", Password: "admin123", Role: RoleAdmin},
		{Username: "operator", Email: "operator@company.com", Password: "op123", Role: RoleOperator},
		{Username: "viewer", Email: "viewer@company.com", Password: "view123", Role: RoleViewer},
	}
	for _, nu := range seed {
		if _, err := d.insert(nu, StatusActive); err != nil {
			return fmt.Errorf("seed %s: %w", nu.Username, err)
		}
	}
	_, err := d.insert(NewUser{Username: "john.doe", Email: "john.doe@company.com", Role: RoleOperator}, StatusInactive)
	if err != nil {
		return fmt.Errorf("seed john.doe: %w", err)
	}
	return nil
}

// Add validates and stores a new active user.
func (d *Directory) Add(nu NewUser) (User, error) {
	nu.Username = strings.TrimSpace(nu.Username)
	nu.Email = strings.TrimSpace(nu.Email)
	if nu.Role == "" {
		nu.Role = RoleViewer
	}
	if err := validate.Struct(nu); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	return d.insert(nu, StatusActive)
}

func (d *Directory) insert(nu NewUser, status AccountStatus) (User, error) {
	var hash []byte
	if nu.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(nu.Password), d.cost)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := strings.ToLower(nu.Username)
	if _, exists := d.byName[key]; exists {
		return User{}, ErrDuplicateUser
	}
	u := &User{
		ID:       uuid.NewString(),
		Username: nu.Username,
		Email:    nu.Email,
		Role:     nu.Role,
		Status:   status,
		hash:     hash,
	}
	d.users[u.ID] = u
	d.byName[key] = u.ID
	return u.public(), nil
}

// List returns all users ordered by username.
func (d *Directory) List() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u.public())
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Username) < strings.ToLower(out[j].Username)
	})
	return out
}

// Get looks a user up by id.
func (d *Directory) Get(id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u.public(), nil
}

// Delete removes a user. actorID may not delete itself.
func (d *Directory) Delete(actorID, id string) error {
	if actorID == id {
		return ErrSelfModify
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(d.users, id)
	delete(d.byName, strings.ToLower(u.Username))
	return nil
}

// ToggleStatus flips a user between active and inactive.
func (d *Directory) ToggleStatus(actorID, id string) (User, error) {
	if actorID == id {
		return User{}, ErrSelfModify
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	if u.Status == StatusActive {
		u.Status = StatusInactive
	} else {
		u.Status = StatusActive
	}
	return u.public(), nil
}

// Authenticate checks a username and password and records the login time.
func (d *Directory) Authenticate(username, password string) (User, error) {
	d.mu.RLock()
	id, ok := d.byName[strings.ToLower(strings.TrimSpace(username))]
	var u *User
	if ok {
		u = d.users[id]
	}
	d.mu.RUnlock()

	if u == nil || len(u.hash) == 0 {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, still := d.users[id]; !still {
		return User{}, ErrInvalidCredentials
	}
	if u.Status != StatusActive {
		return User{}, ErrUserInactive
	}
	now := d.now().UTC()
	u.LastLogin = &now
	return u.public(), nil
}

func (u *User) public() User {
	out := *u
	out.hash = nil
	if u.LastLogin != nil {
		t := *u.LastLogin
		out.LastLogin = &t
	}
	return out
}
