// Package importer turns CSV exports into ledger transactions.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/jarvis/internal/category"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/shopspring/decimal"
)

// Column names of the CSV format.
const (
	ColDate                 = "date"
	ColDescription          = "description"
	ColStatementDescription = "statement description"
	ColType                 = "type"
	ColCategory             = "category"
	ColAmount               = "amount"
	ColAccount              = "account"
	ColTags                 = "tags"
	ColNotes                = "notes"
)

// Header is the canonical header row written by Export.
var Header = []string{"Date", "Description", "Statement description", "Type", "Category", "Amount", "Account", "Tags", "Notes"}

// DefaultDescription is used when a row carries neither description.
const DefaultDescription = "Imported transaction"

// Whole-file errors.
var (
	ErrEmptyFile     = errors.New("csv file is empty")
	ErrMissingColumn = errors.New("missing required column")
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// RowError describes one rejected data row.
type RowError struct {
	Reason string
	Row    int
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// ParsedRow is a successfully parsed data row.
type ParsedRow struct {
	Transaction model.Transaction
	Row         int
}

type columns map[string]int

func (c columns) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func readHeader(record []string) (columns, error) {
	cols := make(columns, len(record))
	for i, name := range record {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, required := range []string{ColDate, ColAmount} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	return cols, nil
}

// Parse reads CSV data and returns the parsed rows and one error per rejected
// row. Only a missing or unusable header is returned as an error.
func Parse(r io.Reader) ([]ParsedRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyFile
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := readHeader(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows    []ParsedRow
		rowErrs []RowError
	)
	for n := 1; ; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: n, Reason: "malformed row"})
			continue
		}
		if blank(record) {
			continue
		}

		tx, rowErr := parseRecord(cols, record)
		if rowErr != "" {
			rowErrs = append(rowErrs, RowError{Row: n, Reason: rowErr})
			continue
		}
		rows = append(rows, ParsedRow{Row: n, Transaction: tx})
	}
	return rows, rowErrs, nil
}

func parseRecord(cols columns, record []string) (model.Transaction, string) {
	date, ok := ParseDate(cols.get(record, ColDate))
	if !ok {
		return model.Transaction{}, "invalid date"
	}
	amount, ok := ParseAmount(cols.get(record, ColAmount))
	if !ok {
		return model.Transaction{}, "invalid amount"
	}

	txType := ParseType(cols.get(record, ColType))
	if txType != model.TypeTransfer {
		amount = amount.Abs()
	}

	statement := cols.get(record, ColStatementDescription)
	description := cols.get(record, ColDescription)
	if description == "" {
		description = statement
	}
	if description == "" {
		description = DefaultDescription
	}

	rawCategory := cols.get(record, ColCategory)
	tx := model.Transaction{
		Date:                 date,
		Type:                 txType,
		Amount:               amount,
		Description:          description,
		StatementDescription: statement,
		Category:             category.Normalize(rawCategory),
		Account:              cols.get(record, ColAccount),
		Notes:                cols.get(record, ColNotes),
		Tags:                 splitTags(cols.get(record, ColTags)),
	}
	tx.SetOriginalCategory(rawCategory)
	return tx, ""
}

// ParseDate accepts the supported date layouts and returns local midnight.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return model.NormalizeDate(t), true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a decimal amount, tolerating currency symbols, thousands
// separators and accounting-style parentheses for negatives.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer(
		"$", "", "€", "", "£", "",
		"USD", "", "MXN", "",
		",", "", " ", "",
	).Replace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// ParseType maps a free-form type label to a transaction type, defaulting to expense.
func ParseType(s string) model.TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "credit", "deposit", "refund":
		return model.TypeIncome
	case "transfer":
		return model.TypeTransfer
	default:
		return model.TypeExpense
	}
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	var tags []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.HasPrefix(f, model.OriginalCategoryTagPrefix) {
			continue
		}
		tags = append(tags, f)
	}
	return tags
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
