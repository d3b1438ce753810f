package identity

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"

	"github.com/code-lova/SimpleExpenseTracker/internal/domain"
	"github.com/code-lova/SimpleExpenseTracker/internal/log"
	"github.com/code-lova/SimpleExpenseTracker/internal/storage"
)

const (
	storeKeyUsers = "users"

	minUsernameLength = 3
	minPasswordLength = 6

	// logout has no storage round-trip; the short delay keeps its shape
	// consistent with the other operations.
	logoutDelay = 50 * time.Millisecond
)

const (
	errUsernameRequired = "Username is required."
	errUsernameTooShort = "Username must be at least 3 characters long."
	errEmailRequired    = "Email is required."
	errEmailInvalid     = "Please enter a valid email address."
	errPasswordRequired = "Password is required."
	errPasswordTooShort = "Password must be at least 6 characters long."
	errUsernameTaken    = "Username is already taken. Please choose a different username."
	errEmailRegistered  = "Email is already registered. Please use a different email or try logging in."
	errInvalidLogin     = "Invalid username or password."

	errRegisterUnexpected = "An unexpected error occurred during registration. Please try again."
	errLoginUnexpected    = "An unexpected error occurred during login. Please try again."
)

// CategorySeeder creates the default category set for a freshly registered
// user. It is injected after construction because the category service in
// turn needs this service to resolve the current user.
type CategorySeeder interface {
	CreateDefaultCategoriesForUser(ctx context.Context, userID int) error
}

type Service interface {
	Register(ctx context.Context, username, email, password string) domain.AuthResult
	Login(ctx context.Context, username, password string) domain.AuthResult
	Logout(ctx context.Context)
	CurrentUser() *domain.User
	IsAuthenticated() bool
	AllUsers(ctx context.Context) []domain.User
	Subscribe(fn func()) string
	Unsubscribe(id string)
	SetCategorySeeder(seeder CategorySeeder)
}

type service struct {
	store  storage.Store
	logger *log.Logger

	mu          sync.RWMutex
	currentUser *domain.User
	seeder      CategorySeeder
	subscribers map[string]func()
}

func NewService(store storage.Store, logger *log.Logger) Service {
	return &service{
		store:       store,
		logger:      logger.WithComponent("identity"),
		subscribers: make(map[string]func()),
	}
}

func (s *service) SetCategorySeeder(seeder CategorySeeder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeder = seeder
}

func (s *service) Register(ctx context.Context, username, email, password string) domain.AuthResult {
	if strings.TrimSpace(username) == "" {
		return domain.AuthFailure(errUsernameRequired)
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return domain.AuthFailure(errUsernameTooShort)
	}
	if strings.TrimSpace(email) == "" {
		return domain.AuthFailure(errEmailRequired)
	}
	if checkmail.ValidateFormat(email) != nil {
		return domain.AuthFailure(errEmailInvalid)
	}
	if strings.TrimSpace(password) == "" {
		return domain.AuthFailure(errPasswordRequired)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domain.AuthFailure(errPasswordTooShort)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		s.logger.Error("registration failed to load users", "error", err)
		return domain.AuthFailure(errRegisterUnexpected)
	}

	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return domain.AuthFailure(errUsernameTaken)
		}
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return domain.AuthFailure(errEmailRegistered)
		}
	}

	newUser := domain.User{
		ID:          nextUserID(users),
		Username:    username,
		Email:       email,
		Password:    password,
		CreatedDate: time.Now(),
	}

	users = append(users, newUser)
	if err := s.store.Set(ctx, storeKeyUsers, users); err != nil {
		s.logger.Error("registration failed to persist users", "error", err)
		return domain.AuthFailure(errRegisterUnexpected)
	}

	s.setCurrentUser(&newUser)

	// Seeding failure must not fail the registration itself.
	if seeder := s.categorySeeder(); seeder != nil {
		if err := seeder.CreateDefaultCategoriesForUser(ctx, newUser.ID); err != nil {
			s.logger.Error("failed to create default categories", "userID", newUser.ID, "error", err)
		}
	} else {
		s.logger.Warn("no category seeder configured during registration")
	}

	s.notifySubscribers()
	return domain.AuthSuccess(&newUser)
}

func (s *service) Login(ctx context.Context, username, password string) domain.AuthResult {
	if strings.TrimSpace(username) == "" {
		return domain.AuthFailure(errUsernameRequired)
	}
	if strings.TrimSpace(password) == "" {
		return domain.AuthFailure(errPasswordRequired)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		s.logger.Error("login failed to load users", "error", err)
		return domain.AuthFailure(errLoginUnexpected)
	}

	// Username matches case-insensitively, password exactly. Unknown user
	// and wrong password yield the same generic error.
	for i := range users {
		if strings.EqualFold(users[i].Username, username) && users[i].Password == password {
			user := users[i]
			s.setCurrentUser(&user)
			s.notifySubscribers()
			return domain.AuthSuccess(&user)
		}
	}
	return domain.AuthFailure(errInvalidLogin)
}

func (s *service) Logout(_ context.Context) {
	time.Sleep(logoutDelay)
	s.setCurrentUser(nil)
	s.notifySubscribers()
}

func (s *service) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	user := *s.currentUser
	return &user
}

func (s *service) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// AllUsers returns every stored user, persisting an empty list on first
// access so subsequent reads see an initialized store.
func (s *service) AllUsers(ctx context.Context) []domain.User {
	users, err := s.loadUsers(ctx)
	if err != nil {
		s.logger.Error("failed to load users", "error", err)
		return []domain.User{}
	}
	return users
}

// Subscribe registers a callback fired synchronously after every session
// change (login, registration, logout). It returns a handle for Unsubscribe.
func (s *service) Subscribe(fn func()) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.subscribers[id] = fn
	s.mu.Unlock()
	return id
}

func (s *service) Unsubscribe(id string) {
	s.mu.Lock()
	delete(s.subscribers, id)
	s.mu.Unlock()
}

func (s *service) loadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	found, err := s.store.Get(ctx, storeKeyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		users = []domain.User{}
		if err := s.store.Set(ctx, storeKeyUsers, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *service) setCurrentUser(user *domain.User) {
	s.mu.Lock()
	s.currentUser = user
	s.mu.Unlock()
}

func (s *service) categorySeeder() CategorySeeder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeder
}

func (s *service) notifySubscribers() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

func nextUserID(users []domain.User) int {
	maxID := 0
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}
