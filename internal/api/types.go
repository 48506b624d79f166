package api

import "github.com/theirongolddev/finboard/internal/session"

// Credentials are the sign-in inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResult is the outcome of Login or Register. These calls report
// failure here instead of returning an error.
type AuthResult struct {
	Success bool
	User    *session.User
	Message string
	Err     error
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
}

// DateRange bounds summary queries. Dates are YYYY-MM-DD.
type DateRange struct {
	StartDate string `url:"startDate,omitempty"`
	EndDate   string `url:"endDate,omitempty"`
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID            int64   `json:"id,omitempty"`
	Type          string  `json:"type"` // INCOME or EXPENSE
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

// Transaction types.
const (
	Income  = "INCOME"
	Expense = "EXPENSE"
)

// TransactionFilter narrows ListTransactions.
type TransactionFilter struct {
	Type      string `url:"type,omitempty"`
	Category  string `url:"category,omitempty"`
	StartDate string `url:"startDate,omitempty"`
	EndDate   string `url:"endDate,omitempty"`
	Page      int    `url:"page,omitempty"`
	Size      int    `url:"size,omitempty"`
}

// TransactionSummary is the income/expense rollup for a period.
type TransactionSummary struct {
	TotalIncome    float64            `json:"totalIncome"`
	TotalExpense   float64            `json:"totalExpense"`
	NetSavings     float64            `json:"netSavings"`
	SavingsRate    float64            `json:"savingsRate"`
	CategoryTotals map[string]float64 `json:"categoryTotals,omitempty"`
}

// CategoryTotal is one row of a spend analysis.
type CategoryTotal struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// TransactionAnalysis is the server-side category breakdown.
type TransactionAnalysis struct {
	Categories    []CategoryTotal `json:"categories"`
	TopCategories []string        `json:"topCategories,omitempty"`
	AverageDaily  float64         `json:"averageDaily"`
}

// MonthlyTotal is one month of income and expense.
type MonthlyTotal struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Investment is a portfolio holding.
type Investment struct {
	ID            int64   `json:"id,omitempty"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol,omitempty"`
	Type          string  `json:"type"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	CurrentPrice  float64 `json:"currentPrice,omitempty"`
	PurchaseDate  string  `json:"purchaseDate,omitempty"`
	Platform      string  `json:"platform,omitempty"`
}

// PortfolioSummary is the headline portfolio view.
type PortfolioSummary struct {
	TotalInvested     float64 `json:"totalInvested"`
	CurrentValue      float64 `json:"currentValue"`
	TotalReturns      float64 `json:"totalReturns"`
	ReturnsPercentage float64 `json:"returnsPercentage"`
	HoldingsCount     int     `json:"holdingsCount"`
}

// AssetShare is one slice of the asset distribution.
type AssetShare struct {
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PerformancePoint is one sample of portfolio value.
type PerformancePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Budget is a monthly needs/wants/savings split.
type Budget struct {
	ID                int64   `json:"id,omitempty"`
	MonthlyIncome     float64 `json:"monthlyIncome"`
	NeedsPercentage   float64 `json:"needsPercentage"`
	WantsPercentage   float64 `json:"wantsPercentage"`
	SavingsPercentage float64 `json:"savingsPercentage"`
	Month             string  `json:"month,omitempty"`
}

// BudgetPercentages updates only the split.
type BudgetPercentages struct {
	NeedsPercentage   float64 `json:"needsPercentage"`
	WantsPercentage   float64 `json:"wantsPercentage"`
	SavingsPercentage float64 `json:"savingsPercentage"`
}

// BucketUsage is allocated vs. spent for one budget bucket.
type BucketUsage struct {
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// BudgetAnalysis compares the budget with actual spend.
type BudgetAnalysis struct {
	Month   string      `json:"month,omitempty"`
	Needs   BucketUsage `json:"needs"`
	Wants   BucketUsage `json:"wants"`
	Savings BucketUsage `json:"savings"`
}

// Goal is a savings target.
type Goal struct {
	ID            int64   `json:"id,omitempty"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline,omitempty"`
	Category      string  `json:"category,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// Subscription is a recurring payment.
type Subscription struct {
	ID              int64   `json:"id,omitempty"`
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	BillingCycle    string  `json:"billingCycle"`
	NextBillingDate string  `json:"nextBillingDate"`
	Category        string  `json:"category,omitempty"`
	Active          bool    `json:"active"`
	LastPaidDate    string  `json:"lastPaidDate,omitempty"`
}

// Advice is the advisor's narrative summary.
type Advice struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}

// Recommendation is a single advisor suggestion.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UdhaariEntry is an informal loan, lent or borrowed.
type UdhaariEntry struct {
	ID          int64   `json:"id,omitempty"`
	PersonName  string  `json:"personName"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"` // LENT or BORROWED
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`
	Status      string  `json:"status,omitempty"` // PENDING or SETTLED
}

// Udhaari types and statuses.
const (
	Lent     = "LENT"
	Borrowed = "BORROWED"
	Pending  = "PENDING"
	Settled  = "SETTLED"
)

// UdhaariSummary totals the ledger.
type UdhaariSummary struct {
	TotalLent     float64 `json:"totalLent"`
	TotalBorrowed float64 `json:"totalBorrowed"`
	NetBalance    float64 `json:"netBalance"`
	PendingCount  int     `json:"pendingCount"`
}

// ImportRequest commits previously uploaded statement rows.
type ImportRequest struct {
	UploadID     string        `json:"uploadId,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// ImportResult reports what a statement upload or import did.
type ImportResult struct {
	UploadID     string        `json:"uploadId,omitempty"`
	Imported     int           `json:"imported"`
	Skipped      int           `json:"skipped"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
}
