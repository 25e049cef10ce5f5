// Package identity is a deliberately minimal account layer: credential
// checks, registration and a fixed bearer-token sentinel. It is not
// real authentication and must be replaced before any production use.
package identity

import (
	"errors"

	"eco-fashion-api/internal/models"
	"eco-fashion-api/internal/store"
)

var (
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when username, email or password is
	// empty at registration.
	ErrMissingFields = errors.New("missing required fields")
	// ErrUsernameTaken is returned for a duplicate username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned for a duplicate email.
	ErrEmailTaken = errors.New("email already exists")
)

// DefaultToken is the sentinel bearer token accepted on auth-gated
// routes. There are no per-user tokens.
const DefaultToken = "fake-jwt-token"

// RegisterRequest carries a registration. Username, email and password
// are required; the name fields default to empty.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Engine reads and writes the users collection.
type Engine struct {
	store *store.Store
}

func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Login checks a username/password pair against the stored bcrypt hash.
func (e *Engine) Login(username, password string) (models.PublicUser, error) {
	var (
		user  models.User
		found bool
	)
	e.store.View(func(d *store.Dataset) {
		for _, u := range d.Users {
			if u.Username == username {
				user, found = u, true
				return
			}
		}
	})
	if !found || !CheckPassword(password, user.Password) {
		return models.PublicUser{}, ErrInvalidCredentials
	}
	return user.Public(), nil
}

// Register creates a new non-admin account. Usernames and emails are
// unique across the collection.
func (e *Engine) Register(req RegisterRequest) (models.PublicUser, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.PublicUser{}, ErrMissingFields
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return models.PublicUser{}, err
	}

	var created models.User
	err = e.store.Update(func(d *store.Dataset) error {
		for _, u := range d.Users {
			if u.Username == req.Username {
				return ErrUsernameTaken
			}
		}
		for _, u := range d.Users {
			if u.Email == req.Email {
				return ErrEmailTaken
			}
		}
		created = models.User{
			ID:        nextUserID(d),
			Username:  req.Username,
			Email:     req.Email,
			Password:  hash,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			IsAdmin:   false,
		}
		d.Users = append(d.Users, created)
		return nil
	})
	if err != nil {
		return models.PublicUser{}, err
	}
	return created.Public(), nil
}

// First returns the first user in the collection. The current-user
// endpoint is a stub: the sentinel token identifies nobody in
// particular, so it answers with the first account on file.
func (e *Engine) First() (models.PublicUser, bool) {
	var (
		user models.PublicUser
		ok   bool
	)
	e.store.View(func(d *store.Dataset) {
		if len(d.Users) > 0 {
			user, ok = d.Users[0].Public(), true
		}
	})
	return user, ok
}

// EnsureAdmin synthesizes the administrator account when the users
// collection is empty, persisting it immediately. Called once at boot,
// right after the store is opened.
func (e *Engine) EnsureAdmin() error {
	empty := false
	e.store.View(func(d *store.Dataset) {
		empty = len(d.Users) == 0
	})
	if !empty {
		return nil
	}
	hash, err := HashPassword("admin")
	if err != nil {
		return err
	}
	return e.store.Update(func(d *store.Dataset) error {
		if len(d.Users) > 0 {
			return nil
		}
		d.Users = append(d.Users, models.User{
			ID:        1,
			Username:  "admin",
			Email:     "admin@example.com",
			Password:  hash,
			FirstName: "Admin",
			LastName:  "User",
			IsAdmin:   true,
		})
		return nil
	})
}

func nextUserID(d *store.Dataset) int {
	max := 0
	for _, u := range d.Users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
