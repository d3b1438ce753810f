package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/code-lova/SimpleExpenseTracker/internal/domain"
	"github.com/code-lova/SimpleExpenseTracker/internal/log"
	"github.com/code-lova/SimpleExpenseTracker/internal/storage"
)

type stubIdentity struct {
	user *domain.User
}

func (s *stubIdentity) CurrentUser() *domain.User {
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("storage unavailable")
}

func (failingStore) Set(context.Context, string, any) error {
	return errors.New("storage unavailable")
}

func newTestService(userID int) (Service, *stubIdentity, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	identity := &stubIdentity{}
	if userID > 0 {
		identity.user = &domain.User{ID: userID, Username: "user"}
	}
	return NewService(store, identity, log.New("error")), identity, store
}

func TestFirstAccessSeedsDemoSet(t *testing.T) {
	svc, _, store := newTestService(1)
	ctx := context.Background()

	owned := svc.ForCurrentUser(ctx)
	assert.Len(t, owned, 10)

	// second access must not seed again
	assert.Len(t, svc.ForCurrentUser(ctx), 10)

	var stored []domain.Category
	found, err := store.Get(ctx, "categories", &stored)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, stored, 10)

	assert.Len(t, svc.IncomeForCurrentUser(ctx), 4)
	assert.Len(t, svc.ExpenseForCurrentUser(ctx), 6)
}

func TestDemoSetBelongsToFirstUserOnly(t *testing.T) {
	svc, identity, _ := newTestService(2)
	ctx := context.Background()

	// first access still seeds, but user 2 sees nothing of it
	assert.Empty(t, svc.ForCurrentUser(ctx))

	identity.user = &domain.User{ID: 1}
	assert.Len(t, svc.ForCurrentUser(ctx), 10)
}

func TestCreateDefaultCategoriesForUser(t *testing.T) {
	svc, identity, _ := newTestService(2)
	ctx := context.Background()

	assert.NoError(t, svc.CreateDefaultCategoriesForUser(ctx, 2))

	owned := svc.ForCurrentUser(ctx)
	assert.Len(t, owned, 8)
	// IDs continue the store-wide sequence after the 10 demo entries
	for _, c := range owned {
		assert.GreaterOrEqual(t, c.ID, 11)
		assert.LessOrEqual(t, c.ID, 18)
	}
	assert.Len(t, svc.IncomeForCurrentUser(ctx), 4)
	assert.Len(t, svc.ExpenseForCurrentUser(ctx), 4)

	// idempotent: the user already owns categories now
	assert.NoError(t, svc.CreateDefaultCategoriesForUser(ctx, 2))
	assert.Len(t, svc.ForCurrentUser(ctx), 8)

	// a user with any category at all is skipped too
	identity.user = &domain.User{ID: 1}
	assert.NoError(t, svc.CreateDefaultCategoriesForUser(ctx, 1))
	assert.Len(t, svc.ForCurrentUser(ctx), 10)
}

func TestAdd(t *testing.T) {
	svc, _, _ := newTestService(1)
	ctx := context.Background()

	result := svc.Add(ctx, domain.Category{Name: "Pets", Type: domain.CategoryTypeExpense, Color: "#123456"})
	assert.True(t, result.Success)
	assert.Equal(t, 11, result.Data.ID)
	assert.Equal(t, 1, result.Data.UserID)

	fetched := svc.ByID(ctx, result.Data.ID)
	assert.NotNil(t, fetched)
	assert.Equal(t, "Pets", fetched.Name)
}

func TestAdd_DuplicateNamePerOwnerOnly(t *testing.T) {
	svc, identity, _ := newTestService(1)
	ctx := context.Background()

	assert.True(t, svc.Add(ctx, domain.Category{Name: "Food", Type: domain.CategoryTypeExpense}).Success)

	duplicate := svc.Add(ctx, domain.Category{Name: "FOOD", Type: domain.CategoryTypeExpense})
	assert.False(t, duplicate.Success)
	assert.Equal(t, errDuplicateName, duplicate.Error)

	// a different user may own a category with the same name
	identity.user = &domain.User{ID: 2}
	assert.True(t, svc.Add(ctx, domain.Category{Name: "Food", Type: domain.CategoryTypeExpense}).Success)
}

func TestUpdate(t *testing.T) {
	svc, _, _ := newTestService(1)
	ctx := context.Background()

	added := svc.Add(ctx, domain.Category{Name: "Pets", Description: "d", Color: "#111111", Type: domain.CategoryTypeExpense})
	assert.True(t, added.Success)

	updated := *added.Data
	updated.Name = "Pet Care"
	updated.Color = "#222222"
	assert.True(t, svc.Update(ctx, updated).Success)

	fetched := svc.ByID(ctx, added.Data.ID)
	assert.Equal(t, "Pet Care", fetched.Name)
	assert.Equal(t, "#222222", fetched.Color)
}

func TestUpdate_NameConflictWithOtherCategory(t *testing.T) {
	svc, _, _ := newTestService(1)
	ctx := context.Background()

	a := svc.Add(ctx, domain.Category{Name: "Pets", Type: domain.CategoryTypeExpense})
	svc.Add(ctx, domain.Category{Name: "Garden", Type: domain.CategoryTypeExpense})

	// renaming onto another category's name fails
	conflict := *a.Data
	conflict.Name = "garden"
	result := svc.Update(ctx, conflict)
	assert.False(t, result.Success)
	assert.Equal(t, errDuplicateName, result.Error)

	// keeping the own name is not a conflict
	same := *a.Data
	same.Description = "changed"
	assert.True(t, svc.Update(ctx, same).Success)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService(1)

	result := svc.Update(context.Background(), domain.Category{ID: 999, Name: "Ghost"})
	assert.False(t, result.Success)
	assert.Equal(t, errCategoryNotFound, result.Error)
}

func TestDelete(t *testing.T) {
	svc, identity, _ := newTestService(1)
	ctx := context.Background()

	added := svc.Add(ctx, domain.Category{Name: "Pets", Type: domain.CategoryTypeExpense})
	assert.True(t, svc.Delete(ctx, added.Data.ID).Success)
	assert.Nil(t, svc.ByID(ctx, added.Data.ID))

	notFound := svc.Delete(ctx, added.Data.ID)
	assert.False(t, notFound.Success)
	assert.Equal(t, errCategoryNotFound, notFound.Error)

	// other users' categories are invisible to delete
	identity.user = &domain.User{ID: 2}
	assert.False(t, svc.Delete(ctx, 1).Success)
}

func TestNoSession(t *testing.T) {
	svc, _, _ := newTestService(0)
	ctx := context.Background()

	assert.Empty(t, svc.ForCurrentUser(ctx))
	assert.Empty(t, svc.IncomeForCurrentUser(ctx))
	assert.Empty(t, svc.ExpenseForCurrentUser(ctx))
	assert.Nil(t, svc.ByID(ctx, 1))
	assert.False(t, svc.Add(ctx, domain.Category{Name: "Pets"}).Success)
	assert.False(t, svc.Update(ctx, domain.Category{ID: 1}).Success)
	assert.False(t, svc.Delete(ctx, 1).Success)
}

func TestStorageFailureYieldsEmptyResults(t *testing.T) {
	identity := &stubIdentity{user: &domain.User{ID: 1}}
	svc := NewService(failingStore{}, identity, log.New("error"))
	ctx := context.Background()

	assert.Empty(t, svc.ForCurrentUser(ctx))
	assert.Nil(t, svc.ByID(ctx, 1))

	result := svc.Add(ctx, domain.Category{Name: "Pets"})
	assert.False(t, result.Success)
	assert.Equal(t, errUnexpected, result.Error)
	assert.Error(t, svc.CreateDefaultCategoriesForUser(ctx, 1))
}
