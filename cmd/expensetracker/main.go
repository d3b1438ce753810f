package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/code-lova/SimpleExpenseTracker/internal/category"
	"github.com/code-lova/SimpleExpenseTracker/internal/config"
	"github.com/code-lova/SimpleExpenseTracker/internal/domain"
	"github.com/code-lova/SimpleExpenseTracker/internal/identity"
	applog "github.com/code-lova/SimpleExpenseTracker/internal/log"
	"github.com/code-lova/SimpleExpenseTracker/internal/notification"
	"github.com/code-lova/SimpleExpenseTracker/internal/storage"
	"github.com/code-lova/SimpleExpenseTracker/internal/transaction"
)

const dateLayout = "2006-01-02"

func main() {
	cfg := config.Load()
	logger := applog.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	notifier := notification.NewService()
	identityService := identity.NewService(store, logger)
	categoryService := category.NewService(store, identityService, logger)
	transactionService := transaction.NewService(store, identityService, categoryService, logger)

	// Two-phase wiring: identity needs the category service to seed
	// defaults for new users, while category needs identity for scoping.
	identityService.SetCategorySeeder(categoryService)

	notifier.Subscribe(func() {
		if notifier.Visible() {
			fmt.Printf("[%s] %s\n", notifier.Severity(), notifier.Message())
		}
	})
	identityService.Subscribe(func() {
		if user := identityService.CurrentUser(); user != nil {
			logger.Info("session changed", "user", user.Username)
		} else {
			logger.Info("session cleared")
		}
	})

	app := &console{
		identity:     identityService,
		categories:   categoryService,
		transactions: transactionService,
		notifier:     notifier,
	}
	app.run(context.Background())
}

func openStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.BackendPostgres:
		store, err := storage.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return storage.NewMemoryStore(), func() {}, nil
	}
}

// console is a minimal line-based front end standing in for the UI layer.
type console struct {
	identity     identity.Service
	categories   category.Service
	transactions transaction.Service
	notifier     notification.Service
}

func (c *console) run(ctx context.Context) {
	fmt.Println("SimpleExpenseTracker - type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		c.dispatch(ctx, fields[0], fields[1:])
	}
}

func (c *console) dispatch(ctx context.Context, command string, args []string) {
	switch command {
	case "help":
		printHelp()
	case "register":
		if len(args) < 3 {
			fmt.Println("usage: register <username> <email> <password>")
			return
		}
		c.report(c.identity.Register(ctx, args[0], args[1], args[2]))
	case "login":
		if len(args) < 2 {
			fmt.Println("usage: login <username> <password>")
			return
		}
		c.report(c.identity.Login(ctx, args[0], args[1]))
	case "logout":
		c.identity.Logout(ctx)
		c.notifier.ShowInfo("Logged out.")
	case "whoami":
		if user := c.identity.CurrentUser(); user != nil {
			fmt.Printf("%d  %s  %s\n", user.ID, user.Username, user.Email)
		} else {
			fmt.Println("not logged in")
		}
	case "categories":
		for _, cat := range c.categories.ForCurrentUser(ctx) {
			fmt.Printf("%3d  %-8s %-20s %s\n", cat.ID, cat.Type, cat.Name, cat.Description)
		}
	case "addcat":
		if len(args) < 2 {
			fmt.Println("usage: addcat <name> <Income|Expense> [description...]")
			return
		}
		result := c.categories.Add(ctx, domain.Category{
			Name:        args[0],
			Type:        args[1],
			Description: strings.Join(args[2:], " "),
			Color:       "#007bff",
		})
		c.reportOp(result.OperationResult)
	case "delcat":
		id, ok := parseID(args)
		if !ok {
			fmt.Println("usage: delcat <id>")
			return
		}
		c.reportOp(c.categories.Delete(ctx, id))
	case "incomes":
		for _, income := range c.transactions.IncomesForCurrentUser(ctx) {
			fmt.Printf("%3d  %s  %10s  %-20s %s\n", income.ID,
				income.Date.Format(dateLayout), income.Amount, income.Description, categoryName(income.Category))
		}
	case "expenses":
		for _, expense := range c.transactions.ExpensesForCurrentUser(ctx) {
			fmt.Printf("%3d  %s  %10s  %-20s %s\n", expense.ID,
				expense.Date.Format(dateLayout), expense.Amount, expense.Description, categoryName(expense.Category))
		}
	case "addincome", "addexpense":
		item, ok := parseTransaction(args)
		if !ok {
			fmt.Printf("usage: %s <amount> <categoryID> <description...> [@YYYY-MM-DD]\n", command)
			return
		}
		if command == "addincome" {
			c.reportOp(c.transactions.AddIncome(ctx, item).OperationResult)
		} else {
			c.reportOp(c.transactions.AddExpense(ctx, domain.Expense(item)).OperationResult)
		}
	case "summary":
		from, to := parseRange(args)
		fmt.Printf("income:   %s\n", c.transactions.TotalIncome(ctx, from, to))
		fmt.Printf("expenses: %s\n", c.transactions.TotalExpenses(ctx, from, to))
		fmt.Printf("net:      %s\n", c.transactions.NetIncome(ctx, from, to))
	default:
		fmt.Printf("unknown command %q, try 'help'\n", command)
	}
}

func (c *console) report(result domain.AuthResult) {
	if result.Success {
		c.notifier.ShowSuccess("Welcome, " + result.User.Username + "!")
	} else {
		c.notifier.ShowError(result.Error)
	}
}

func (c *console) reportOp(result domain.OperationResult) {
	if result.Success {
		c.notifier.ShowSuccess(result.Message)
	} else {
		c.notifier.ShowError(result.Error)
	}
}

func printHelp() {
	fmt.Println(`commands:
  register <username> <email> <password>
  login <username> <password>
  logout | whoami
  categories | addcat <name> <Income|Expense> [description...] | delcat <id>
  incomes | expenses
  addincome <amount> <categoryID> <description...> [@YYYY-MM-DD]
  addexpense <amount> <categoryID> <description...> [@YYYY-MM-DD]
  summary [from] [to]
  quit`)
}

func categoryName(category *domain.Category) string {
	if category == nil {
		return "(no category)"
	}
	return category.Name
}

func parseID(args []string) (int, bool) {
	if len(args) < 1 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	return id, err == nil
}

func parseTransaction(args []string) (domain.Income, bool) {
	if len(args) < 3 {
		return domain.Income{}, false
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return domain.Income{}, false
	}
	categoryID, err := strconv.Atoi(args[1])
	if err != nil {
		return domain.Income{}, false
	}

	item := domain.Income{Amount: amount, CategoryID: categoryID}
	words := args[2:]
	if last := words[len(words)-1]; strings.HasPrefix(last, "@") {
		date, err := time.Parse(dateLayout, strings.TrimPrefix(last, "@"))
		if err != nil {
			return domain.Income{}, false
		}
		item.Date = date
		words = words[:len(words)-1]
	}
	item.Description = strings.Join(words, " ")
	return item, true
}

func parseRange(args []string) (*time.Time, *time.Time) {
	var from, to *time.Time
	if len(args) > 0 {
		if d, err := time.Parse(dateLayout, args[0]); err == nil {
			from = &d
		}
	}
	if len(args) > 1 {
		if d, err := time.Parse(dateLayout, args[1]); err == nil {
			to = &d
		}
	}
	return from, to
}
