package flight

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openTestBook(t *testing.T) *Book {
	t.Helper()
	b, err := Open(context.Background(), testutil.SetupTestStorage(t))
	require.NoError(t, err)
	return b
}

func TestBook_HourlyTotals(t *testing.T) {
	b := openTestBook(t)
	ctx := context.Background()

	rec, err := b.Add(ctx, NewHourly(KindCFI, testutil.Date(2024, time.April, 2), "Ground school", dec("80"), dec("1.5")))
	require.NoError(t, err)
	assert.True(t, dec("120").Equal(rec.TotalUSD), rec.TotalUSD.String())
	assert.True(t, dec("2196").Equal(rec.TotalMXN), rec.TotalMXN.String())

	two := dec("2")
	rec, err = b.Update(ctx, rec.ID, Patch{Hours: &two})
	require.NoError(t, err)
	assert.True(t, dec("160").Equal(rec.TotalUSD), rec.TotalUSD.String())
	assert.True(t, dec("2928").Equal(rec.TotalMXN), rec.TotalMXN.String())
}

func TestBook_FlatRecordsIgnoreRate(t *testing.T) {
	b := openTestBook(t)

	rec, err := b.Add(context.Background(), Record{
		Kind:        KindExtras,
		Date:        testutil.Date(2024, time.April, 3),
		Description: "Headset",
		RatePerHour: dec("99"),
		Hours:       dec("3"),
		TotalUSD:    dec("250"),
	})
	require.NoError(t, err)
	assert.True(t, dec("250").Equal(rec.TotalUSD))
	assert.True(t, dec("4575").Equal(rec.TotalMXN))
	assert.True(t, rec.Hours.IsZero())
}

func TestBook_Validation(t *testing.T) {
	b := openTestBook(t)
	ctx := context.Background()

	_, err := b.Add(ctx, NewFlat("glider", testutil.Date(2024, time.April, 3), "x", dec("1")))
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = b.Add(ctx, NewFlat(KindIncome, time.Time{}, "", dec("-1")))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = b.Update(ctx, "missing", Patch{})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, b.Delete(ctx, "missing"), ErrRecordNotFound)
}

func TestBook_PersistsAndSortsNewestFirst(t *testing.T) {
	db := testutil.SetupTestStorage(t)
	ctx := context.Background()

	b, err := Open(ctx, db)
	require.NoError(t, err)
	older, err := b.Add(ctx, NewFlat(KindExtras, testutil.Date(2024, time.January, 1), "Books", dec("60")))
	require.NoError(t, err)
	_, err = b.Add(ctx, NewHourly(KindPlaneRental, testutil.Date(2024, time.February, 1), "C172", dec("150"), dec("1.2")))
	require.NoError(t, err)

	reopened, err := Open(ctx, db)
	require.NoError(t, err)
	list := reopened.List()
	require.Len(t, list, 2)
	assert.Equal(t, KindPlaneRental, list[0].Kind)

	require.NoError(t, reopened.Delete(ctx, older.ID))
	assert.Len(t, reopened.List(), 1)
}

func TestSummarize(t *testing.T) {
	b := openTestBook(t)
	ctx := context.Background()
	day := testutil.Date(2024, time.May, 1)

	for _, r := range []Record{
		NewHourly(KindCFI, day, "Lesson", dec("80"), dec("1.5")),
		NewHourly(KindPlaneRental, day, "C172", dec("150"), dec("1.2")),
		NewFlat(KindExtras, day, "Charts", dec("40")),
		NewFlat(KindIncome, day, "Refund", dec("100")),
	} {
		_, err := b.Add(ctx, r)
		require.NoError(t, err)
	}

	s := Summarize(b.List())
	assert.True(t, dec("120").Equal(s.CFI.USD))
	assert.True(t, dec("180").Equal(s.PlaneRental.USD))
	assert.True(t, dec("40").Equal(s.Extras.USD))
	assert.True(t, dec("100").Equal(s.Income.USD))
	assert.True(t, dec("1.2").Equal(s.FlightHours))

	// 120 + 180 + 40 - 100
	assert.True(t, dec("240").Equal(s.Balance.USD), s.Balance.USD.String())
	assert.True(t, dec("4392").Equal(s.Balance.MXN), s.Balance.MXN.String())
	assert.True(t, s.ByKind(KindIncome).MXN.Equal(dec("1830")))

	empty := Summarize(nil)
	assert.True(t, empty.Balance.USD.IsZero())
}

func TestBook_AddRejectsMissingDateWestOfUTC(t *testing.T) {
	testutil.InZone(t, time.FixedZone("CST", -6*60*60))
	b := openTestBook(t)

	_, err := b.Add(context.Background(), NewHourly(KindCFI, time.Time{}, "Pattern work", dec("80"), dec("1.5")))
	require.ErrorIs(t, err, ErrInvalidRecord)
	assert.Empty(t, b.List())
}
