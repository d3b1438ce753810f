package category

import "github.com/code-lova/SimpleExpenseTracker/internal/domain"

// defaultCategoriesForUser is the fixed set seeded for every new user:
// 4 expense and 4 income categories, with IDs continuing the store-wide
// sequence starting at nextID.
func defaultCategoriesForUser(userID, nextID int) []domain.Category {
	defaults := []domain.Category{
		{Name: "Food & Dining", Description: "Meals, groceries, restaurants", Color: "#ff6b6b", Type: domain.CategoryTypeExpense},
		{Name: "Transportation", Description: "Gas, public transport, car maintenance", Color: "#4ecdc4", Type: domain.CategoryTypeExpense},
		{Name: "Entertainment", Description: "Movies, games, hobbies, fun activities", Color: "#45b7d1", Type: domain.CategoryTypeExpense},
		{Name: "Utilities & Bills", Description: "Electric, water, internet, phone", Color: "#f9ca24", Type: domain.CategoryTypeExpense},

		{Name: "Salary", Description: "Regular employment income", Color: "#6c5ce7", Type: domain.CategoryTypeIncome},
		{Name: "Freelance", Description: "Freelance and contract work", Color: "#a29bfe", Type: domain.CategoryTypeIncome},
		{Name: "Investment", Description: "Dividends, interest, capital gains", Color: "#00b894", Type: domain.CategoryTypeIncome},
		{Name: "Other Income", Description: "Gifts, bonuses, miscellaneous", Color: "#00cec9", Type: domain.CategoryTypeIncome},
	}

	for i := range defaults {
		defaults[i].ID = nextID + i
		defaults[i].UserID = userID
	}
	return defaults
}

// demoCategories is the one-time, store-level bootstrap written when the
// categories document does not exist at all. It belongs to user 1 and is
// intentionally a different set than the per-user defaults.
func demoCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "Salary", Description: "Monthly salary and wages", Color: "#28a745", Type: domain.CategoryTypeIncome, UserID: 1},
		{ID: 2, Name: "Freelance", Description: "Freelance work income", Color: "#17a2b8", Type: domain.CategoryTypeIncome, UserID: 1},
		{ID: 3, Name: "Investment", Description: "Investment returns and dividends", Color: "#ffc107", Type: domain.CategoryTypeIncome, UserID: 1},
		{ID: 4, Name: "Other Income", Description: "Other sources of income", Color: "#6c757d", Type: domain.CategoryTypeIncome, UserID: 1},

		{ID: 5, Name: "Food & Dining", Description: "Restaurants, groceries, and food expenses", Color: "#dc3545", Type: domain.CategoryTypeExpense, UserID: 1},
		{ID: 6, Name: "Transportation", Description: "Gas, public transport, car maintenance", Color: "#fd7e14", Type: domain.CategoryTypeExpense, UserID: 1},
		{ID: 7, Name: "Shopping", Description: "Clothes, electronics, and general shopping", Color: "#e83e8c", Type: domain.CategoryTypeExpense, UserID: 1},
		{ID: 8, Name: "Entertainment", Description: "Movies, games, hobbies", Color: "#6f42c1", Type: domain.CategoryTypeExpense, UserID: 1},
		{ID: 9, Name: "Bills & Utilities", Description: "Rent, electricity, internet, phone", Color: "#20c997", Type: domain.CategoryTypeExpense, UserID: 1},
		{ID: 10, Name: "Healthcare", Description: "Medical expenses, insurance, pharmacy", Color: "#0dcaf0", Type: domain.CategoryTypeExpense, UserID: 1},
	}
}
