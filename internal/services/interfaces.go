package services

import (
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
)

// Every servicer method takes the phone of the user it acts for. The HTTP
// layer fills it from the session token; an empty phone falls back to the
// stored session.

// AuthServicer defines the contract for session, PIN and onboarding state.
type AuthServicer interface {
	StartSession(phone string) (*models.AuthSession, error)
	EndSession() error
	CurrentSession() (*models.AuthSession, error)
	SetPIN(phone, pin string) error
	VerifyPIN(phone, pin string) error
	HasPIN(phone string) (bool, error)
	RemovePIN(phone string) error
	IsOnboarded() (bool, error)
	CompleteOnboarding() error
	ResetUser(phone string) error
}

// ProfileInput holds the profile fields a client may set.
type ProfileInput struct {
	Name     string
	FullName string
	Gender   string
	Email    string
}

// ProfileServicer defines the contract for the user profile.
type ProfileServicer interface {
	GetProfile(phone string) (*models.UserProfile, error)
	SaveProfile(phone string, input ProfileInput) (*models.UserProfile, error)
	UpdateProfile(phone string, patch models.ProfilePatch) (*models.UserProfile, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(phone string) ([]models.Category, error)
	AddCategory(phone, name string) (*models.Category, bool, error)
	DeleteCategory(phone, name string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Category string
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
}

// TransactionInput holds the fields of a new transaction.
type TransactionInput struct {
	Description string
	Amount      float64
	Category    string
	Date        string
	Recipient   string
	Type        models.TransactionType
}

// CategorySummary aggregates the transactions of one category.
type CategorySummary struct {
	Category         string          `json:"category"`
	TransactionCount int             `json:"transactionCount"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	Net              decimal.Decimal `json:"net"`
}

// TransactionSummary aggregates a filtered transaction list.
type TransactionSummary struct {
	TransactionCount int               `json:"transactionCount"`
	TotalDebit       decimal.Decimal   `json:"totalDebit"`
	TotalCredit      decimal.Decimal   `json:"totalCredit"`
	Net              decimal.Decimal   `json:"net"`
	Categories       []CategorySummary `json:"categories"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(phone string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransaction(phone, id string) (*models.Transaction, error)
	AddTransaction(phone string, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(phone, id string, patch models.TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(phone, id string) error
	Summarize(phone string, filter TransactionFilter) (*TransactionSummary, error)
}

// ExportServicer defines the contract for exports and the download history.
type ExportServicer interface {
	Export(phone string, format models.DownloadFormat, filter TransactionFilter) (*models.DownloadRecord, error)
	ListDownloads(phone string) ([]models.DownloadRecord, error)
	GetDownload(phone, id string) (*models.DownloadRecord, error)
	DeleteDownload(phone, id string) error
	ClearDownloads(phone string) error
}

// AuditServicer defines the contract for activity logging.
type AuditServicer interface {
	Log(phone, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
