package transaction

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/code-lova/SimpleExpenseTracker/internal/domain"
	"github.com/code-lova/SimpleExpenseTracker/internal/log"
	"github.com/code-lova/SimpleExpenseTracker/internal/storage"
)

const (
	storeKeyIncomes  = "incomes"
	storeKeyExpenses = "expenses"
)

const (
	errNoSession   = "You must be logged in to manage transactions."
	errNotFoundMsg = "Transaction not found."
	errUnexpected  = "Something went wrong. Please try again."
)

var errNotFound = errors.New("transaction not found")

// IdentityService is the slice of the identity service this package needs.
type IdentityService interface {
	CurrentUser() *domain.User
}

// CategoryService resolves the category attached to each transaction on
// read. A nil result is fine: the category may have been deleted.
type CategoryService interface {
	ByID(ctx context.Context, id int) *domain.Category
}

type Service interface {
	IncomesForCurrentUser(ctx context.Context) []domain.Income
	IncomeByID(ctx context.Context, id int) *domain.Income
	AddIncome(ctx context.Context, income domain.Income) domain.Result[domain.Income]
	UpdateIncome(ctx context.Context, income domain.Income) domain.OperationResult
	DeleteIncome(ctx context.Context, id int) domain.OperationResult

	ExpensesForCurrentUser(ctx context.Context) []domain.Expense
	ExpenseByID(ctx context.Context, id int) *domain.Expense
	AddExpense(ctx context.Context, expense domain.Expense) domain.Result[domain.Expense]
	UpdateExpense(ctx context.Context, expense domain.Expense) domain.OperationResult
	DeleteExpense(ctx context.Context, id int) domain.OperationResult

	TotalIncome(ctx context.Context, from, to *time.Time) decimal.Decimal
	TotalExpenses(ctx context.Context, from, to *time.Time) decimal.Decimal
	NetIncome(ctx context.Context, from, to *time.Time) decimal.Decimal
}

type service struct {
	store      storage.Store
	identity   IdentityService
	categories CategoryService
	logger     *log.Logger
}

func NewService(store storage.Store, identity IdentityService, categories CategoryService, logger *log.Logger) Service {
	return &service{
		store:      store,
		identity:   identity,
		categories: categories,
		logger:     logger.WithComponent("transaction"),
	}
}

// Income methods

func (s *service) IncomesForCurrentUser(ctx context.Context) []domain.Income {
	user := s.identity.CurrentUser()
	if user == nil {
		return []domain.Income{}
	}

	incomes, err := storage.Load[domain.Income](ctx, s.store, storeKeyIncomes)
	if err != nil {
		s.logger.Error("failed to load incomes", "error", err)
		return []domain.Income{}
	}

	owned := []domain.Income{}
	for _, income := range incomes {
		if income.UserID != user.ID {
			continue
		}
		income.Category = s.categories.ByID(ctx, income.CategoryID)
		owned = append(owned, income)
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Date.After(owned[j].Date)
	})
	return owned
}

func (s *service) IncomeByID(ctx context.Context, id int) *domain.Income {
	user := s.identity.CurrentUser()
	if user == nil {
		return nil
	}

	incomes, err := storage.Load[domain.Income](ctx, s.store, storeKeyIncomes)
	if err != nil {
		s.logger.Error("failed to load incomes", "error", err)
		return nil
	}

	for i := range incomes {
		if incomes[i].ID == id && incomes[i].UserID == user.ID {
			income := incomes[i]
			income.Category = s.categories.ByID(ctx, income.CategoryID)
			return &income
		}
	}
	return nil
}

func (s *service) AddIncome(ctx context.Context, income domain.Income) domain.Result[domain.Income] {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.FailureOf[domain.Income](errNoSession)
	}
	if income.Date.IsZero() {
		income.Date = today()
	}

	err := storage.Mutate(ctx, s.store, storeKeyIncomes, func(incomes []domain.Income) ([]domain.Income, error) {
		income.ID = nextIncomeID(incomes)
		income.UserID = user.ID
		return append(incomes, income), nil
	})
	if err != nil {
		s.logger.Error("failed to add income", "error", err)
		return domain.FailureOf[domain.Income](errUnexpected)
	}
	return domain.OkOf("Income added.", &income)
}

func (s *service) UpdateIncome(ctx context.Context, income domain.Income) domain.OperationResult {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.Failure(errNoSession)
	}

	err := storage.Mutate(ctx, s.store, storeKeyIncomes, func(incomes []domain.Income) ([]domain.Income, error) {
		for i := range incomes {
			if incomes[i].ID == income.ID && incomes[i].UserID == user.ID {
				incomes[i].Description = income.Description
				incomes[i].Amount = income.Amount
				incomes[i].Date = income.Date
				incomes[i].CategoryID = income.CategoryID
				incomes[i].Notes = income.Notes
				return incomes, nil
			}
		}
		return nil, errNotFound
	})
	return s.mutationResult(err, "Income updated.")
}

func (s *service) DeleteIncome(ctx context.Context, id int) domain.OperationResult {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.Failure(errNoSession)
	}

	err := storage.Mutate(ctx, s.store, storeKeyIncomes, func(incomes []domain.Income) ([]domain.Income, error) {
		for i := range incomes {
			if incomes[i].ID == id && incomes[i].UserID == user.ID {
				return append(incomes[:i], incomes[i+1:]...), nil
			}
		}
		return nil, errNotFound
	})
	return s.mutationResult(err, "Income deleted.")
}

// Expense methods

func (s *service) ExpensesForCurrentUser(ctx context.Context) []domain.Expense {
	user := s.identity.CurrentUser()
	if user == nil {
		return []domain.Expense{}
	}

	expenses, err := storage.Load[domain.Expense](ctx, s.store, storeKeyExpenses)
	if err != nil {
		s.logger.Error("failed to load expenses", "error", err)
		return []domain.Expense{}
	}

	owned := []domain.Expense{}
	for _, expense := range expenses {
		if expense.UserID != user.ID {
			continue
		}
		expense.Category = s.categories.ByID(ctx, expense.CategoryID)
		owned = append(owned, expense)
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Date.After(owned[j].Date)
	})
	return owned
}

func (s *service) ExpenseByID(ctx context.Context, id int) *domain.Expense {
	user := s.identity.CurrentUser()
	if user == nil {
		return nil
	}

	expenses, err := storage.Load[domain.Expense](ctx, s.store, storeKeyExpenses)
	if err != nil {
		s.logger.Error("failed to load expenses", "error", err)
		return nil
	}

	for i := range expenses {
		if expenses[i].ID == id && expenses[i].UserID == user.ID {
			expense := expenses[i]
			expense.Category = s.categories.ByID(ctx, expense.CategoryID)
			return &expense
		}
	}
	return nil
}

func (s *service) AddExpense(ctx context.Context, expense domain.Expense) domain.Result[domain.Expense] {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.FailureOf[domain.Expense](errNoSession)
	}
	if expense.Date.IsZero() {
		expense.Date = today()
	}

	err := storage.Mutate(ctx, s.store, storeKeyExpenses, func(expenses []domain.Expense) ([]domain.Expense, error) {
		expense.ID = nextExpenseID(expenses)
		expense.UserID = user.ID
		return append(expenses, expense), nil
	})
	if err != nil {
		s.logger.Error("failed to add expense", "error", err)
		return domain.FailureOf[domain.Expense](errUnexpected)
	}
	return domain.OkOf("Expense added.", &expense)
}

func (s *service) UpdateExpense(ctx context.Context, expense domain.Expense) domain.OperationResult {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.Failure(errNoSession)
	}

	err := storage.Mutate(ctx, s.store, storeKeyExpenses, func(expenses []domain.Expense) ([]domain.Expense, error) {
		for i := range expenses {
			if expenses[i].ID == expense.ID && expenses[i].UserID == user.ID {
				expenses[i].Description = expense.Description
				expenses[i].Amount = expense.Amount
				expenses[i].Date = expense.Date
				expenses[i].CategoryID = expense.CategoryID
				expenses[i].Notes = expense.Notes
				return expenses, nil
			}
		}
		return nil, errNotFound
	})
	return s.mutationResult(err, "Expense updated.")
}

func (s *service) DeleteExpense(ctx context.Context, id int) domain.OperationResult {
	user := s.identity.CurrentUser()
	if user == nil {
		return domain.Failure(errNoSession)
	}

	err := storage.Mutate(ctx, s.store, storeKeyExpenses, func(expenses []domain.Expense) ([]domain.Expense, error) {
		for i := range expenses {
			if expenses[i].ID == id && expenses[i].UserID == user.ID {
				return append(expenses[:i], expenses[i+1:]...), nil
			}
		}
		return nil, errNotFound
	})
	return s.mutationResult(err, "Expense deleted.")
}

// Summary methods

// TotalIncome sums the current user's income amounts, optionally bounded by
// an inclusive date range on either end.
func (s *service) TotalIncome(ctx context.Context, from, to *time.Time) decimal.Decimal {
	user := s.identity.CurrentUser()
	if user == nil {
		return decimal.Zero
	}

	incomes, err := storage.Load[domain.Income](ctx, s.store, storeKeyIncomes)
	if err != nil {
		s.logger.Error("failed to load incomes", "error", err)
		return decimal.Zero
	}

	total := decimal.Zero
	for _, income := range incomes {
		if income.UserID == user.ID && inRange(income.Date, from, to) {
			total = total.Add(income.Amount)
		}
	}
	return total
}

func (s *service) TotalExpenses(ctx context.Context, from, to *time.Time) decimal.Decimal {
	user := s.identity.CurrentUser()
	if user == nil {
		return decimal.Zero
	}

	expenses, err := storage.Load[domain.Expense](ctx, s.store, storeKeyExpenses)
	if err != nil {
		s.logger.Error("failed to load expenses", "error", err)
		return decimal.Zero
	}

	total := decimal.Zero
	for _, expense := range expenses {
		if expense.UserID == user.ID && inRange(expense.Date, from, to) {
			total = total.Add(expense.Amount)
		}
	}
	return total
}

func (s *service) NetIncome(ctx context.Context, from, to *time.Time) decimal.Decimal {
	return s.TotalIncome(ctx, from, to).Sub(s.TotalExpenses(ctx, from, to))
}

func (s *service) mutationResult(err error, message string) domain.OperationResult {
	if errors.Is(err, errNotFound) {
		return domain.Failure(errNotFoundMsg)
	}
	if err != nil {
		s.logger.Error("transaction mutation failed", "error", err)
		return domain.Failure(errUnexpected)
	}
	return domain.Ok(message)
}

func inRange(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func nextIncomeID(incomes []domain.Income) int {
	maxID := 0
	for _, income := range incomes {
		if income.ID > maxID {
			maxID = income.ID
		}
	}
	return maxID + 1
}

func nextExpenseID(expenses []domain.Expense) int {
	maxID := 0
	for _, expense := range expenses {
		if expense.ID > maxID {
			maxID = expense.ID
		}
	}
	return maxID + 1
}
