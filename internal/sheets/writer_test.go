package sheets

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/jarvis/internal/aggregate"
	"github.com/Veraticus/jarvis/internal/common"
	"github.com/Veraticus/jarvis/internal/model"
	"github.com/Veraticus/jarvis/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func sampleReport() *aggregate.Report {
	day := testutil.Date(2024, time.January, 15)
	groceries := testutil.NewTx(day).Expense("50").Description("Grocery Store").Category(model.CategoryFood).Build()
	groceries.SetOriginalCategory("Groceries")
	txs := []model.Transaction{
		groceries,
		testutil.NewTx(testutil.Date(2024, time.January, 20)).Expense("40").Description("Gas Station").Category(model.CategoryTransportation).Build(),
		testutil.NewTx(testutil.Date(2024, time.January, 1)).Income("1000").Description("Paycheck").Build(),
	}
	r := aggregate.BuildReport(txs, 2024, time.January)
	return &r
}

func findRow(values [][]any, label string) int {
	for i, row := range values {
		if len(row) > 0 && row[0] == label {
			return i
		}
	}
	return -1
}

func TestReportValues(t *testing.T) {
	values := ReportValues(sampleReport())

	assert.Equal(t, []any{"Jarvis Report", "January 2024"}, values[0])

	summary := findRow(values, "Summary")
	require.NotEqual(t, -1, summary)
	assert.Equal(t, []any{"Income", 1000.0}, values[summary+1])
	assert.Equal(t, []any{"Expenses", 90.0}, values[summary+2])
	assert.Equal(t, []any{"Net", 910.0}, values[summary+3])

	breakdown := findRow(values, "Category Breakdown")
	require.NotEqual(t, -1, breakdown)
	assert.Equal(t, []any{"Groceries", 50.0, 1, "55.6%"}, values[breakdown+2])
	assert.Equal(t, "transportation", values[breakdown+3][0])

	calendar := findRow(values, "Calendar")
	require.NotEqual(t, -1, calendar)
	assert.Equal(t, []any{"2024-01-01", 0.0, 1000.0}, values[calendar+2])

	details := findRow(values, "Transactions")
	require.NotEqual(t, -1, details)
	first := values[details+2]
	assert.Equal(t, "2024-01-20", first[0], "newest first")
	assert.Equal(t, 40.0, first[1])
	assert.Equal(t, "Gas Station", first[3])
	assert.Len(t, values, details+3+3)
}

func TestClassifyAPIError(t *testing.T) {
	assert.NoError(t, classifyAPIError(nil))

	plain := errors.New("network down")
	assert.Equal(t, plain, classifyAPIError(plain))

	limited := classifyAPIError(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, limited, common.ErrRateLimit)
	assert.True(t, common.IsRetryable(limited))

	var retryable *common.RetryableError
	forbidden := classifyAPIError(&googleapi.Error{Code: http.StatusForbidden})
	require.ErrorAs(t, forbidden, &retryable)
	assert.False(t, retryable.Retryable)

	server := &googleapi.Error{Code: http.StatusBadGateway}
	assert.Equal(t, error(server), classifyAPIError(server))
}

func TestClassifyAPIError_StopsRetry(t *testing.T) {
	attempts := 0
	err := common.WithRetry(context.Background(), func() error {
		attempts++
		return classifyAPIError(&googleapi.Error{Code: http.StatusNotFound})
	}, common.DefaultRetryOptions())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestTokenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, saveToken(path, token))
	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)

	_, err = LoadToken("")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestAuthenticate_RequiresClientCredentials(t *testing.T) {
	_, err := Authenticate(context.Background(), Config{}, "", nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	report := sampleReport()

	require.NoError(t, m.Write(context.Background(), report))
	m.SetWriteError(errors.New("quota"))
	assert.Error(t, m.Write(context.Background(), report))

	calls := m.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.Same(t, report, m.LastReport)
	assert.NoError(t, calls[0].Error)
	assert.EqualError(t, calls[1].Error, "quota")
}
