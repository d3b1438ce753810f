package category

import (
	"context"
	"strings"

	"github.com/code-lova/SimpleExpenseTracker/internal/domain"
	"github.com/code-lova/SimpleExpenseTracker/internal/log"
	"github.com/code-lova/SimpleExpenseTracker/internal/storage"
)

const storeKeyCategories = "categories"

const (
	errNoSession        = "You must be logged in to manage categories."
	errDuplicateName    = "A category with this name already exists."
	errCategoryNotFound = "Category not found."
	errUnexpected       = "Something went wrong. Please try again."
)

// IdentityService is the slice of the identity service this package needs.
type IdentityService interface {
	CurrentUser() *domain.User
}

type Service interface {
	CreateDefaultCategoriesForUser(ctx context.Context, userID int) error
	ForCurrentUser(ctx context.Context) []domain.Category
	IncomeForCurrentUser(ctx context.Context) []domain.Category
	ExpenseForCurrentUser(ctx context.Context) []domain.Category
	ByID(ctx context.Context, id int) *domain.Category
	Add(ctx context.Context, category domain.Category) domain.Result[domain.Category]
	Update(ctx context.Context, category domain.Category) domain.OperationResult
	Delete(ctx context.Context, id int) domain.OperationResult
}

type service struct {
	store    storage.Store
	identity IdentityService
	logger   *log.Logger
}

func NewService(store storage.Store, identity IdentityService, logger *log.Logger) Service {
	return &service{
		store:    store,
		identity: identity,
		logger:   logger.WithComponent("category"),
	}
}

// CreateDefaultCategoriesForUser seeds the fixed 8-category default set for
// userID. It is a no-op when the user already owns any category.
func (s *service) CreateDefaultCategoriesForUser(ctx context.Context, userID int) error {
	categories, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	for _, c := range categories {
		if c.UserID == userID {
			return nil
		}
	}

	categories = append(categories, defaultCategoriesForUser(userID, nextCategoryID(categories))...)
	return s.store.Set(ctx, storeKeyCategories, categories)
}

func (s *service) ForCurrentUser(ctx context.Context) []domain.Category {
	return s.filtered(ctx, "")
}

func (s *service) IncomeForCurrentUser(ctx context.Context) []domain.Category {
	return s.filtered(ctx, domain.CategoryTypeIncome)
}

func (s *service) ExpenseForCurrentUser(ctx context.Context) []domain.Category {
	return s.filtered(ctx, domain.CategoryTypeExpense)
}

func (s *service) ByID(ctx context.Context, id int) *domain.Category {
	user := s.identity.CurrentUser()
	if user == nil {
		return nil
	}

	categories, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return nil
	}

	for i := range categories {
		if categories[i].ID == id && categories[i].UserID == user.ID {
			category := categories[i]
			return &category
		}
	}
	return nil
}

func (s *service) Add(ctx context.Context, category domain.Category) domain.Result[domain.Category] {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.FailureOf[domain.Category](errNoSession)
	}

	categories, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return domain.FailureOf[domain.Category](errUnexpected)
	}

	for _, c := range categories {
		if c.UserID == user.ID && strings.EqualFold(c.Name, category.Name) {
			return domain.FailureOf[domain.Category](errDuplicateName)
		}
	}

	category.ID = nextCategoryID(categories)
	category.UserID = user.ID
	categories = append(categories, category)

	if err := s.store.Set(ctx, storeKeyCategories, categories); err != nil {
		s.logger.Error("failed to persist categories", "error", err)
		return domain.FailureOf[domain.Category](errUnexpected)
	}
	return domain.OkOf("Category added.", &category)
}

func (s *service) Update(ctx context.Context, category domain.Category) domain.OperationResult {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.Failure(errNoSession)
	}

	categories, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return domain.Failure(errUnexpected)
	}

	existing := -1
	for i := range categories {
		if categories[i].ID == category.ID && categories[i].UserID == user.ID {
			existing = i
			break
		}
	}
	if existing < 0 {
		return domain.Failure(errCategoryNotFound)
	}

	// The new name may collide only with a different category of the same
	// owner; renaming a category to its own name is fine.
	for _, c := range categories {
		if c.ID != category.ID && c.UserID == user.ID && strings.EqualFold(c.Name, category.Name) {
			return domain.Failure(errDuplicateName)
		}
	}

	categories[existing].Name = category.Name
	categories[existing].Description = category.Description
	categories[existing].Color = category.Color
	categories[existing].Type = category.Type

	if err := s.store.Set(ctx, storeKeyCategories, categories); err != nil {
		s.logger.Error("failed to persist categories", "error", err)
		return domain.Failure(errUnexpected)
	}
	return domain.Ok("Category updated.")
}

func (s *service) Delete(ctx context.Context, id int) domain.OperationResult {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.Failure(errNoSession)
	}

	categories, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return domain.Failure(errUnexpected)
	}

	for i := range categories {
		if categories[i].ID == id && categories[i].UserID == user.ID {
			categories = append(categories[:i], categories[i+1:]...)
			if err := s.store.Set(ctx, storeKeyCategories, categories); err != nil {
				s.logger.Error("failed to persist categories", "error", err)
				return domain.Failure(errUnexpected)
			}
			return domain.Ok("Category deleted.")
		}
	}
	return domain.Failure(errCategoryNotFound)
}

func (s *service) filtered(ctx context.Context, categoryType string) []domain.Category {
	user := s.identity.CurrentUser()
	if user == nil {
		return []domain.Category{}
	}

	categories, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return []domain.Category{}
	}

	result := []domain.Category{}
	for _, c := range categories {
		if c.UserID != user.ID {
			continue
		}
		if categoryType != "" && c.Type != categoryType {
			continue
		}
		result = append(result, c)
	}
	return result
}

// loadAll reads the whole category document. The very first access, when
// the key does not exist yet, seeds and persists the demo set; an existing
// empty list is left alone.
func (s *service) loadAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	found, err := s.store.Get(ctx, storeKeyCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !found {
		categories = demoCategories()
		if err := s.store.Set(ctx, storeKeyCategories, categories); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

func nextCategoryID(categories []domain.Category) int {
	maxID := 0
	for _, c := range categories {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}
