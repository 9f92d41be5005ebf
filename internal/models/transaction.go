package models

import "time"

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// Transaction is one entry of a user's transaction collection. Category is
// free text and Date an ISO-8601 string, both exactly as the client stored
// them.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Recipient   string          `json:"recipient,omitempty"`
	Type        TransactionType `json:"type,omitempty"`
}

// dateLayouts are the ISO-8601 shapes accepted for Transaction.Date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or timestamp.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		t, parseErr := time.Parse(layout, s)
		if parseErr == nil {
			return t, nil
		}
		err = parseErr
	}
	return time.Time{}, err
}

// ParseDateBound parses one end of a date range. A bare YYYY-MM-DD upper
// bound covers the whole day.
func ParseDateBound(s string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		if upper {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	return ParseDate(s)
}

// Time returns the parsed transaction date.
func (t Transaction) Time() (time.Time, error) {
	return ParseDate(t.Date)
}

// TransactionPatch carries the transaction fields to overwrite. Nil fields
// are left untouched; the ID is never patched.
type TransactionPatch struct {
	Description *string          `json:"description,omitempty"`
	Amount      *float64         `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Recipient   *string          `json:"recipient,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
}

// Apply merges the patch into t.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Recipient != nil {
		t.Recipient = *p.Recipient
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Category == nil &&
		p.Date == nil && p.Recipient == nil && p.Type == nil
}
