// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of money for a transaction.
type TransactionType string

const (
	// TypeIncome is money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense is money going out.
	TypeExpense TransactionType = "expense"
	// TypeTransfer moves money between accounts; the amount sign gives the direction.
	TypeTransfer TransactionType = "transfer"
)

// OriginalCategoryTagPrefix marks the tag holding the raw category label seen on import.
const OriginalCategoryTagPrefix = "_originalCategory:"

// Validation errors.
var (
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrMissingDate        = errors.New("missing date")
	ErrMissingDescription = errors.New("missing description")
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	default:
		return false
	}
}

// Transaction represents a single financial event.
type Transaction struct {
	Date                 time.Time       `json:"date"`
	CreatedAt            time.Time       `json:"createdAt"`
	Amount               decimal.Decimal `json:"amount"`
	ID                   string          `json:"id"`
	Type                 TransactionType `json:"type"`
	Description          string          `json:"description"`
	StatementDescription string          `json:"statementDescription,omitempty"`
	Category             Category        `json:"category"`
	Account              string          `json:"account,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	Tags                 []string        `json:"tags,omitempty"`
}

// Validate checks the invariants every stored transaction must hold.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrMissingDescription
	}
	if t.Type != TypeTransfer && t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if n := countOriginalCategoryTags(t.Tags); n > 1 {
		return fmt.Errorf("%w: %d original category tags", ErrInvalidCategory, n)
	}
	return nil
}

// OriginalCategory returns the raw category label preserved on import, if any.
func (t *Transaction) OriginalCategory() (string, bool) {
	for _, tag := range t.Tags {
		if name, ok := strings.CutPrefix(tag, OriginalCategoryTagPrefix); ok {
			return name, true
		}
	}
	return "", false
}

// SetOriginalCategory stores raw as the original category tag, replacing any
// previous one. An empty raw label removes the tag.
func (t *Transaction) SetOriginalCategory(raw string) {
	tags := make([]string, 0, len(t.Tags)+1)
	for _, tag := range t.Tags {
		if !strings.HasPrefix(tag, OriginalCategoryTagPrefix) {
			tags = append(tags, tag)
		}
	}
	if raw = strings.TrimSpace(raw); raw != "" {
		tags = append(tags, OriginalCategoryTagPrefix+raw)
	}
	if len(tags) == 0 {
		tags = nil
	}
	t.Tags = tags
}

// DisplayCategory is the label shown to the user: the imported label when one was
// preserved, the normalized category otherwise.
func (t *Transaction) DisplayCategory() string {
	if name, ok := t.OriginalCategory(); ok {
		return name
	}
	return t.Category.String()
}

// UserTags returns the tags without the internal original-category marker.
func (t *Transaction) UserTags() []string {
	var out []string
	for _, tag := range t.Tags {
		if !strings.HasPrefix(tag, OriginalCategoryTagPrefix) {
			out = append(out, tag)
		}
	}
	return out
}

// Hash creates a content hash for duplicate detection on import.
func (t *Transaction) Hash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(t.Description)),
		strings.ToLower(strings.TrimSpace(t.Account)))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// NormalizeDate truncates d to local midnight of its calendar day. The zero
// time stays zero so a missing date is still reported by validation.
func NormalizeDate(d time.Time) time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	y, m, day := d.In(time.Local).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.Local)
}

func countOriginalCategoryTags(tags []string) int {
	n := 0
	for _, tag := range tags {
		if strings.HasPrefix(tag, OriginalCategoryTagPrefix) {
			n++
		}
	}
	return n
}
