package health

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

func TestTracker_WeightLifecycle(t *testing.T) {
	db := testutil.SetupTestStorage(t)
	ctx := context.Background()

	tr, err := Open(ctx, db)
	require.NoError(t, err)

	_, err = tr.AddWeight(ctx, testutil.Date(2024, time.March, 5), dec("0"))
	assert.ErrorIs(t, err, ErrInvalidWeight)
	_, err = tr.AddWeight(ctx, time.Time{}, dec("80"))
	assert.ErrorIs(t, err, ErrMissingDate)

	later, err := tr.AddWeight(ctx, time.Date(2024, time.March, 6, 7, 30, 0, 0, time.Local), dec("81.2"))
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2024, time.March, 6), later.Date)
	_, err = tr.AddWeight(ctx, testutil.Date(2024, time.March, 4), dec("82"))
	require.NoError(t, err)

	reopened, err := Open(ctx, db)
	require.NoError(t, err)
	entries := reopened.Entries()
	require.Len(t, entries, 2)
	assert.True(t, dec("82").Equal(entries[0].Kilograms), "sorted oldest first")

	require.NoError(t, reopened.DeleteWeight(ctx, later.ID))
	assert.ErrorIs(t, reopened.DeleteWeight(ctx, later.ID), ErrEntryNotFound)
	assert.Len(t, reopened.Entries(), 1)
}

func TestTracker_Goal(t *testing.T) {
	db := testutil.SetupTestStorage(t)
	ctx := context.Background()

	tr, err := Open(ctx, db)
	require.NoError(t, err)
	assert.False(t, tr.Goal().IsSet())

	assert.ErrorIs(t, tr.SetGoal(ctx, WeightGoal{TargetKilograms: dec("-1")}), ErrInvalidWeight)
	require.NoError(t, tr.SetGoal(ctx, WeightGoal{TargetKilograms: dec("75"), TargetDate: testutil.Date(2024, time.December, 31)}))

	reopened, err := Open(ctx, db)
	require.NoError(t, err)
	assert.True(t, dec("75").Equal(reopened.Goal().TargetKilograms))
}

func TestTracker_Plans(t *testing.T) {
	db := testutil.SetupTestStorage(t)
	ctx := context.Background()

	tr, err := Open(ctx, db)
	require.NoError(t, err)

	require.NoError(t, tr.SetDay(ctx, PlanWorkout, time.Monday, []string{" Squats ", "", "Rows"}))
	require.NoError(t, tr.SetDay(ctx, PlanDiet, time.Monday, []string{"Oats"}))
	assert.ErrorIs(t, tr.SetDay(ctx, "sleep", time.Monday, nil), ErrUnknownPlan)
	assert.ErrorIs(t, tr.SetDay(ctx, PlanDiet, time.Weekday(9), []string{"x"}), ErrInvalidPlan)

	reopened, err := Open(ctx, db)
	require.NoError(t, err)
	workout, err := reopened.Plan(PlanWorkout)
	require.NoError(t, err)
	assert.Equal(t, []string{"Squats", "Rows"}, workout[time.Monday])

	require.NoError(t, reopened.SetDay(ctx, PlanWorkout, time.Monday, nil))
	workout, err = reopened.Plan(PlanWorkout)
	require.NoError(t, err)
	assert.Empty(t, workout)

	diet, err := reopened.Plan(PlanDiet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oats"}, diet[time.Monday])
}

func TestWeeklyOverview(t *testing.T) {
	entry := func(day int, kg string) WeightEntry {
		return WeightEntry{Date: testutil.Date(2024, time.March, day), Kilograms: dec(kg)}
	}
	// March 3 2024 is a Sunday.
	entries := []WeightEntry{
		entry(1, "84"),
		entry(2, "83"),
		entry(6, "82"),
		entry(3, "83"),
		entry(9, "81"),
		entry(10, "80"),
	}

	o := WeeklyOverview(entries, WeightGoal{TargetKilograms: dec("75")}, testutil.Date(2024, time.March, 6))
	assert.Equal(t, testutil.Date(2024, time.March, 3), o.WeekStart)
	require.Len(t, o.Entries, 3)
	assert.True(t, dec("82").Equal(o.Average), o.Average.String())
	assert.True(t, dec("81").Equal(o.Min))
	assert.True(t, dec("83").Equal(o.Max))
	require.NotNil(t, o.Latest)
	assert.True(t, dec("81").Equal(o.Latest.Kilograms))
	require.NotNil(t, o.Change)
	assert.True(t, dec("-1.5").Equal(*o.Change), o.Change.String())
	require.NotNil(t, o.Remaining)
	assert.True(t, dec("6").Equal(*o.Remaining))

	empty := WeeklyOverview(entries, WeightGoal{}, testutil.Date(2024, time.April, 20))
	assert.False(t, empty.HasData())
	assert.Nil(t, empty.Change)
	assert.Nil(t, empty.Remaining)

	first := WeeklyOverview(entries, WeightGoal{}, testutil.Date(2024, time.February, 28))
	assert.True(t, first.HasData())
	assert.Nil(t, first.Change, "no previous week")
	assert.Nil(t, first.Remaining)
}
