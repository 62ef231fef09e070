package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTx() Transaction {
	return Transaction{
		ID:          "tx-1",
		Type:        TypeExpense,
		Amount:      decimal.RequireFromString("4.50"),
		Description: "Coffee",
		Category:    CategoryFood,
		Date:        time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*Transaction)
		wantErr error
		name    string
	}{
		{name: "valid", mutate: func(*Transaction) {}},
		{name: "bad type", mutate: func(tx *Transaction) { tx.Type = "gift" }, wantErr: ErrInvalidType},
		{name: "bad category", mutate: func(tx *Transaction) { tx.Category = "pets" }, wantErr: ErrInvalidCategory},
		{name: "no date", mutate: func(tx *Transaction) { tx.Date = time.Time{} }, wantErr: ErrMissingDate},
		{name: "blank description", mutate: func(tx *Transaction) { tx.Description = " " }, wantErr: ErrMissingDescription},
		{name: "negative expense", mutate: func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }, wantErr: ErrNegativeAmount},
		{name: "negative transfer", mutate: func(tx *Transaction) {
			tx.Type = TypeTransfer
			tx.Amount = decimal.NewFromInt(-100)
		}},
		{name: "two original tags", mutate: func(tx *Transaction) {
			tx.Tags = []string{OriginalCategoryTagPrefix + "a", OriginalCategoryTagPrefix + "b"}
		}, wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTx()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_OriginalCategory(t *testing.T) {
	tx := validTx()
	tx.Tags = []string{"work"}

	_, ok := tx.OriginalCategory()
	assert.False(t, ok)
	assert.Equal(t, "food", tx.DisplayCategory())

	tx.SetOriginalCategory("Coffee Shops")
	tx.SetOriginalCategory("Cafés")

	name, ok := tx.OriginalCategory()
	require.True(t, ok)
	assert.Equal(t, "Cafés", name)
	assert.Equal(t, "Cafés", tx.DisplayCategory())
	assert.Equal(t, []string{"work", OriginalCategoryTagPrefix + "Cafés"}, tx.Tags)
	assert.Equal(t, []string{"work"}, tx.UserTags())
	assert.NoError(t, tx.Validate())

	tx.SetOriginalCategory("")
	_, ok = tx.OriginalCategory()
	assert.False(t, ok)
	assert.Equal(t, []string{"work"}, tx.Tags)
}

func TestTransaction_Hash(t *testing.T) {
	a := validTx()
	b := validTx()
	b.ID = "tx-2"
	b.Description = "  COFFEE "
	assert.Equal(t, a.Hash(), b.Hash(), "ids and case do not affect the hash")

	b.Amount = decimal.RequireFromString("4.51")
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Travel ")
	assert.True(t, ok)
	assert.Equal(t, CategoryTravel, c)

	c, ok = ParseCategory("pets")
	assert.False(t, ok)
	assert.Equal(t, CategoryOther, c)
}

func TestNormalizeDate(t *testing.T) {
	in := time.Date(2024, time.March, 9, 17, 45, 3, 0, time.Local)
	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.Local), NormalizeDate(in))
}

func TestNormalizeDate_ZeroStaysZeroWestOfUTC(t *testing.T) {
	previous := time.Local
	time.Local = time.FixedZone("CST", -6*60*60)
	t.Cleanup(func() { time.Local = previous })

	assert.True(t, NormalizeDate(time.Time{}).IsZero())

	tx := Transaction{Type: TypeExpense, Category: CategoryFood, Description: "Tacos", Date: NormalizeDate(time.Time{})}
	assert.ErrorIs(t, tx.Validate(), ErrMissingDate)
}

func TestBudget_Validate(t *testing.T) {
	b := Budget{Limit: decimal.NewFromInt(500), Period: PeriodMonthly}
	assert.NoError(t, b.Validate())

	b.Category = CategoryFood
	assert.NoError(t, b.Validate())

	b.Limit = decimal.Zero
	assert.ErrorIs(t, b.Validate(), ErrInvalidBudget)

	b = Budget{Limit: decimal.NewFromInt(1), Period: "weekly"}
	assert.ErrorIs(t, b.Validate(), ErrInvalidBudget)
}

func TestAccountSnapshot_NetWorth(t *testing.T) {
	s := AccountSnapshot{
		Savings:        decimal.NewFromInt(1000),
		Investments:    decimal.NewFromInt(500),
		Retirement:     decimal.NewFromInt(250),
		Debt:           decimal.NewFromInt(300),
		FlightTraining: decimal.NewFromInt(120),
	}
	assert.True(t, decimal.NewFromInt(1330).Equal(s.NetWorth()))
}
