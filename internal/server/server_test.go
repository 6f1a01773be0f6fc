package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/auth"
	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
	"budgetplanner/internal/storage/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (http.Handler, *sqlite.Storage) {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		Addr:            ":0",
		DBPath:          ":memory:",
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)

	srv, err := New(testLogger(), cfg, store)
	require.NoError(t, err)

	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = store.Close()
	})

	return srv.Handler(), store
}

func createUser(t *testing.T, store *sqlite.Storage, username, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.CreateUser(context.Background(), user))

	return user
}

func login(t *testing.T, handler http.Handler, username, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func get(handler http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func postForm(handler http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")

	cookies := login(t, handler, "alice", "password123")

	access := cookieByName(cookies, "access_token")
	require.NotNil(t, access)
	assert.NotEmpty(t, access.Value)
	assert.True(t, access.HttpOnly)

	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, refresh)
	assert.NotEmpty(t, refresh.Value)
	assert.True(t, refresh.HttpOnly)
}

func TestLogin_BadCredentials(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "wrong"},
		{name: "unknown user", username: "mallory", password: "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"username": {tt.username}, "password": {tt.password}}
			rec := postForm(handler, "/login", form, nil)

			// Re-rendered login page with a generic error, no cookies.
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid username or password")
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")

	cookies := login(t, handler, "alice", "password123")

	rec := get(handler, "/logout", cookies)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}

	// The refresh cookie alone no longer opens a session.
	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, refresh)
	rec = get(handler, "/", []*http.Cookie{refresh})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestProtectedRoutes_Unauthenticated(t *testing.T) {
	handler, _ := newTestServer(t)

	// Browser paths redirect to the login page.
	rec := get(handler, "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// API paths answer in kind.
	rec = get(handler, "/api/chart-data", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestSession_RefreshCookieRenewsAccess(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")

	cookies := login(t, handler, "alice", "password123")
	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, refresh)

	// Requesting with only the refresh cookie still works and a
	// replacement access cookie comes back.
	rec := get(handler, "/", []*http.Cookie{refresh})
	assert.Equal(t, http.StatusOK, rec.Code)

	renewed := cookieByName(rec.Result().Cookies(), "access_token")
	require.NotNil(t, renewed)
	assert.NotEmpty(t, renewed.Value)
}

func TestDashboard_ShowsLatestEntry(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")

	require.NoError(t, store.CreateBudgetEntry(context.Background(), &models.BudgetEntry{
		UserID:    user.ID,
		Month:     "March",
		Year:      2024,
		Salary:    50000,
		Rent:      15000,
		Sip:       8000,
		CreatedAt: time.Now(),
	}))

	cookies := login(t, handler, "alice", "password123")
	rec := get(handler, "/", cookies)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "March")
	assert.Contains(t, body, "50000.00")
}

func TestBudgetSave_OverwriteConfirmationFlow(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	now := time.Now()
	month := now.Month().String()
	year := now.Year()

	// First save creates the current month's entry.
	rec := postForm(handler, "/budget", url.Values{"salary": {"50000"}, "rent": {"15000"}}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/budget", rec.Header().Get("Location"))

	entry, err := store.GetBudgetEntryByPeriod(ctx, user.ID, month, year)
	require.NoError(t, err)
	assert.InDelta(t, 50000, entry.Salary, 0.001)

	// A second save without confirmation re-renders the page with a
	// warning and leaves the stored entry untouched.
	rec = postForm(handler, "/budget", url.Values{"salary": {"60000"}}, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "confirm_overwrite")

	entry, err = store.GetBudgetEntryByPeriod(ctx, user.ID, month, year)
	require.NoError(t, err)
	assert.InDelta(t, 50000, entry.Salary, 0.001)

	// Confirming replaces the amounts.
	rec = postForm(handler, "/budget", url.Values{"salary": {"60000"}, "confirm_overwrite": {"yes"}}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)

	entry, err = store.GetBudgetEntryByPeriod(ctx, user.ID, month, year)
	require.NoError(t, err)
	assert.InDelta(t, 60000, entry.Salary, 0.001)
	assert.Zero(t, entry.Rent)
}

func TestBudgetUpdate_KeepsPeriod(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	entry := &models.BudgetEntry{
		UserID:    user.ID,
		Month:     "January",
		Year:      2023,
		Salary:    40000,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateBudgetEntry(ctx, entry))

	rec := postForm(handler, fmt.Sprintf("/budget/update/%d", entry.ID), url.Values{"salary": {"45000"}}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)

	updated, err := store.GetBudgetEntry(ctx, user.ID, entry.ID)
	require.NoError(t, err)
	assert.InDelta(t, 45000, updated.Salary, 0.001)
	assert.Equal(t, "January", updated.Month)
	assert.Equal(t, 2023, updated.Year)
}

func TestBudgetDelete(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	entry := &models.BudgetEntry{
		UserID:    user.ID,
		Month:     "January",
		Year:      2023,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateBudgetEntry(ctx, entry))

	rec := postForm(handler, fmt.Sprintf("/budget/delete/%d", entry.ID), url.Values{}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)

	_, err := store.GetBudgetEntry(ctx, user.ID, entry.ID)
	assert.Error(t, err)

	rec = postForm(handler, fmt.Sprintf("/budget/delete/%d", entry.ID), url.Values{}, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVariableExpense_AddAndFinalize(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	now := time.Now()
	month := now.Month().String()
	year := now.Year()

	rec := postForm(handler, "/variable-budget", url.Values{
		"category":    {"food"},
		"description": {"groceries"},
		"amount":      {"300"},
	}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/variable-budget", rec.Header().Get("Location"))

	rec = postForm(handler, "/variable-budget", url.Values{
		"category":    {"travel"},
		"description": {"train tickets"},
		"amount":      {"1000"},
	}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)

	// Finalize folds the drafts into the monthly entry and lands on
	// the budget page.
	rec = postForm(handler, "/variable-budget/finalize", url.Values{}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/budget", rec.Header().Get("Location"))

	entry, err := store.GetBudgetEntryByPeriod(ctx, user.ID, month, year)
	require.NoError(t, err)
	assert.InDelta(t, 300, entry.Food, 0.001)
	assert.InDelta(t, 1000, entry.Travel, 0.001)

	// Finalize with nothing pending stays on the variable page.
	rec = postForm(handler, "/variable-budget/finalize", url.Values{}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/variable-budget", rec.Header().Get("Location"))
}

func TestVariableExpense_RejectsBadInput(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")

	// Unknown category.
	rec := postForm(handler, "/variable-budget", url.Values{
		"category":    {"rent"},
		"description": {"monthly rent"},
		"amount":      {"15000"},
	}, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown category")

	// Missing description.
	rec = postForm(handler, "/variable-budget", url.Values{
		"category": {"food"},
		"amount":   {"300"},
	}, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "description is required")
}

func TestBucketList_Lifecycle(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	rec := postForm(handler, "/bucket-list", url.Values{
		"name":     {"Japan trip"},
		"category": {"Travel"},
		"price":    {"45000"},
		"priority": {"High"},
	}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)

	items, err := store.ListBucketItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Japan trip", items[0].Name)

	rec = postForm(handler, fmt.Sprintf("/bucket-list/complete/%d", items[0].ID), url.Values{}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)

	items, err = store.ListBucketItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Completed)

	rec = postForm(handler, fmt.Sprintf("/bucket-list/delete/%d", items[0].ID), url.Values{}, cookies)
	require.Equal(t, http.StatusFound, rec.Code)

	items, err = store.ListBucketItems(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBucketList_AddRequiresName(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")

	rec := postForm(handler, "/bucket-list", url.Values{"price": {"100"}}, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartDataAPI(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	require.NoError(t, store.CreateBudgetEntry(ctx, &models.BudgetEntry{
		UserID: user.ID, Month: "March", Year: 2024,
		Salary: 50000, Rent: 15000, Sip: 8000,
		CreatedAt: time.Now(),
	}))

	rec := get(handler, "/api/chart-data", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Months []string `json:"months"`
		Income struct {
			Salary []float64 `json:"salary"`
			Total  []float64 `json:"total"`
		} `json:"income"`
		Savings struct {
			Total []float64 `json:"total"`
		} `json:"savings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Months, 1)
	assert.Equal(t, "March 2024", payload.Months[0])
	assert.InDelta(t, 50000, payload.Income.Salary[0], 0.001)
	assert.InDelta(t, 50000, payload.Income.Total[0], 0.001)
	assert.InDelta(t, 8000, payload.Savings.Total[0], 0.001)
}

func TestYearlyChartDataAPI(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	for _, month := range []string{"January", "March"} {
		require.NoError(t, store.CreateBudgetEntry(ctx, &models.BudgetEntry{
			UserID: user.ID, Month: month, Year: 2024,
			Salary: 50000, Rent: 15000,
			CreatedAt: time.Now(),
		}))
	}

	rec := get(handler, "/api/yearly-chart-data/2024", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Year    int `json:"year"`
		Summary struct {
			MonthsWithData int     `json:"months_with_data"`
			TotalIncome    float64 `json:"total_income"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 2024, payload.Year)
	assert.Equal(t, 2, payload.Summary.MonthsWithData)
	assert.InDelta(t, 100000, payload.Summary.TotalIncome, 0.001)

	rec = get(handler, "/api/yearly-chart-data/nope", cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonthlyAnalysisDataAPI(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	require.NoError(t, store.CreateBudgetEntry(ctx, &models.BudgetEntry{
		UserID: user.ID, Month: "March", Year: 2024,
		Salary: 50000, Rent: 15000, Sip: 8000,
		CreatedAt: time.Now(),
	}))

	rec := get(handler, "/api/monthly-analysis-data/2024/March", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Month   string `json:"month"`
		Year    int    `json:"year"`
		Current struct {
			Income struct {
				Total float64 `json:"total"`
			} `json:"income"`
		} `json:"current"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "March", payload.Month)
	assert.Equal(t, 2024, payload.Year)
	assert.InDelta(t, 50000, payload.Current.Income.Total, 0.001)

	// A month without data reports an error payload with a 200 so the
	// page script can render its own empty state.
	rec = get(handler, "/api/monthly-analysis-data/2030/January", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data found for the specified month")

	// A non-month 400s.
	rec = get(handler, "/api/monthly-analysis-data/2024/Smarch", cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadBudgetCSV(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	require.NoError(t, store.CreateBudgetEntry(ctx, &models.BudgetEntry{
		UserID: user.ID, Month: "March", Year: 2024,
		Salary: 50000, Rent: 15000,
		CreatedAt: time.Now(),
	}))

	rec := get(handler, "/download/budget?year=2024", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "budget_data_2024.csv")

	body := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Month,Year,Salary"))
	assert.True(t, strings.HasPrefix(lines[1], "March,2024,50000.00"))
	// Net savings column reflects income minus expenses.
	assert.Contains(t, lines[1], "35000.00")
}

func TestDownloadBudgetCSV_NoData(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")

	rec := get(handler, "/download/budget", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no data found")
}

func TestDownloadBucketListCSV(t *testing.T) {
	handler, store := newTestServer(t)
	user := createUser(t, store, "alice", "password123")
	cookies := login(t, handler, "alice", "password123")
	ctx := context.Background()

	require.NoError(t, store.CreateBucketItem(ctx, &models.BucketItem{
		UserID: user.ID, Name: "Japan trip", Category: "Travel",
		Price: 45000, Priority: "High",
		CreatedAt: time.Now(),
	}))

	rec := get(handler, "/download/bucket-list", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Japan trip,Travel,")
	assert.Contains(t, rec.Body.String(), "Pending")
}

func TestHealthz(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := get(handler, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, "ok", payload.Database)
}

func TestLogin_RateLimited(t *testing.T) {
	handler, store := newTestServer(t)
	createUser(t, store, "alice", "password123")

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}

	var lastCode int
	for i := 0; i < loginRateLimit+1; i++ {
		rec := postForm(handler, "/login", form, nil)
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestUserDataIsolation(t *testing.T) {
	handler, store := newTestServer(t)
	alice := createUser(t, store, "alice", "password123")
	createUser(t, store, "bob", "password456")
	ctx := context.Background()

	entry := &models.BudgetEntry{
		UserID: alice.ID, Month: "March", Year: 2024,
		Salary:    50000,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateBudgetEntry(ctx, entry))

	bobCookies := login(t, handler, "bob", "password456")

	// Bob cannot see or touch Alice's entry.
	rec := get(handler, fmt.Sprintf("/budget/edit/%d", entry.ID), bobCookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postForm(handler, fmt.Sprintf("/budget/delete/%d", entry.ID), url.Values{}, bobCookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := store.GetBudgetEntry(ctx, alice.ID, entry.ID)
	assert.NoError(t, err)
}
