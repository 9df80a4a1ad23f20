package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/loanpath/backend/internal/cache"
	"github.com/loanpath/backend/internal/handler"
	"github.com/loanpath/backend/internal/model"
	"github.com/loanpath/backend/internal/repository"
	"github.com/loanpath/backend/internal/service"
)

// ============ In-Memory Tracker Repository ============

type fakeTrackerRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]model.TrackerEntry
}

func newFakeTrackerRepo() *fakeTrackerRepo {
	return &fakeTrackerRepo{entries: make(map[uuid.UUID]model.TrackerEntry)}
}

func (f *fakeTrackerRepo) Create(_ context.Context, entry *model.TrackerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeTrackerRepo) GetByID(_ context.Context, id uuid.UUID) (*model.TrackerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil, repository.ErrTrackerEntryNotFound
	}
	return &entry, nil
}

func (f *fakeTrackerRepo) List(_ context.Context, userID uuid.UUID) ([]model.TrackerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []model.TrackerEntry
	for _, entry := range f.entries {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UpdatedAt.After(entries[j].UpdatedAt) })
	return entries, nil
}

func (f *fakeTrackerRepo) Update(_ context.Context, entry *model.TrackerEntry) error {
	return f.store(entry)
}

func (f *fakeTrackerRepo) UpdateStage(_ context.Context, entry *model.TrackerEntry) error {
	return f.store(entry)
}

func (f *fakeTrackerRepo) store(entry *model.TrackerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return repository.ErrTrackerEntryNotFound
	}
	entry.UpdatedAt = time.Now()
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeTrackerRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return repository.ErrTrackerEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

// ============ Stub Offer Feed ============

type stubFetcher struct {
	offers []model.ExternalOffer
}

func (s *stubFetcher) FetchOffers(_ context.Context, _ string) ([]model.ExternalOffer, error) {
	return s.offers, nil
}

// ============ Test Server Setup ============

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	fetcher := &stubFetcher{offers: []model.ExternalOffer{
		{Company: "HDFC Bank", LoanType: "Personal Loan", InterestRate: "10.5% - 16%", Tenure: "12-60 months"},
		{Company: "ICICI Bank", LoanType: "Personal Loan", InterestRate: "11% - 17%", Tenure: "12-60 months"},
	}}

	offerService := service.NewOfferService(fetcher, cache.NewMemoryCache(time.Minute))
	affordabilityService := service.NewAffordabilityService(offerService, 12, 60)
	trackerService := service.NewTrackerService(newFakeTrackerRepo())

	affordabilityHandler := handler.NewAffordabilityHandler(affordabilityService)
	offerHandler := handler.NewOfferHandler(offerService)
	trackerHandler := handler.NewTrackerHandler(trackerService)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/loans/calculator", affordabilityHandler.Calculator)
	r.Get("/api/loans/suggestions", affordabilityHandler.Suggestions)
	r.Get("/api/loans/offers", offerHandler.List)
	r.Get("/api/loans/offers/compare", affordabilityHandler.CompareOffers)

	r.Group(func(r chi.Router) {
		r.Use(handler.AuthMiddleware)

		r.Get("/api/tracker", trackerHandler.List)
		r.Post("/api/tracker", trackerHandler.Create)
		r.Get("/api/tracker/{id}", trackerHandler.Get)
		r.Put("/api/tracker/{id}", trackerHandler.Update)
		r.Delete("/api/tracker/{id}", trackerHandler.Delete)
		r.Post("/api/tracker/{id}/stage", trackerHandler.AdvanceStage)
		r.Get("/api/tracker/{id}/progress", trackerHandler.GetProgression)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

// ============ API Integration Tests ============

func TestAPI_HealthCheck(t *testing.T) {
	server := setupTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	_ = json.Unmarshal(body, &payload)
	assert.Equal(t, "ok", payload["status"])
}

func TestAPI_Calculator(t *testing.T) {
	server := setupTestServer(t)

	resp, body := doJSON(t, http.MethodGet,
		server.URL+"/api/loans/calculator?principal=500000&annualRate=12&termMonths=60", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var inst model.Installment
	assert.NoError(t, json.Unmarshal(body, &inst))
	assert.InDelta(t, 11122.22, inst.MonthlyPayment.InexactFloat64(), 0.01)
	assert.InDelta(t, 167333.43, inst.TotalInterest.InexactFloat64(), 0.01)
}

func TestAPI_Calculator_BadInput(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := doJSON(t, http.MethodGet,
		server.URL+"/api/loans/calculator?principal=-5&annualRate=12&termMonths=60", "", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Suggestions(t *testing.T) {
	server := setupTestServer(t)

	resp, body := doJSON(t, http.MethodGet,
		server.URL+"/api/loans/suggestions?principal=500000&annualRate=12&termMonths=60", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var candidates []model.SuggestionCandidate
	assert.NoError(t, json.Unmarshal(body, &candidates))
	assert.Len(t, candidates, 3)
	for i := 1; i < len(candidates); i++ {
		assert.True(t, candidates[i-1].MonthlyPayment.LessThanOrEqual(candidates[i].MonthlyPayment))
	}
}

func TestAPI_CompareOffers(t *testing.T) {
	server := setupTestServer(t)

	resp, body := doJSON(t, http.MethodGet,
		server.URL+"/api/loans/offers/compare?loanType=Personal+Loan&principal=500000", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var comparisons []model.OfferComparison
	assert.NoError(t, json.Unmarshal(body, &comparisons))
	assert.Len(t, comparisons, 2)
	assert.Equal(t, "HDFC Bank", comparisons[0].Offer.Company)
	// 10.5-16 midpoint beats 11-17 midpoint over the same term
	assert.True(t, comparisons[0].MonthlyPayment.LessThan(comparisons[1].MonthlyPayment))
}

func TestAPI_Tracker_RequiresAuth(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/tracker", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_Tracker_Lifecycle(t *testing.T) {
	server := setupTestServer(t)

	userID := uuid.New()
	token, err := service.GenerateToken(userID)
	assert.NoError(t, err)

	// Create
	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/tracker", token, map[string]interface{}{
		"applicationId": "APP-2025-001",
		"loanType":      "Personal Loan",
		"amount":        500000,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.TrackerEntry
	assert.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, model.StageSubmitted, created.CurrentStage)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Equal(t, 0, created.Progress)

	// List
	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/tracker", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []struct {
		model.TrackerEntry
		AmountFormatted string `json:"amountFormatted"`
		UpdatedAgo      string `json:"updatedAgo"`
	}
	assert.NoError(t, json.Unmarshal(body, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "₹5,00,000", rows[0].AmountFormatted)
	assert.Equal(t, "Just now", rows[0].UpdatedAgo)

	// Advance stage
	resp, body = doJSON(t, http.MethodPost, server.URL+"/api/tracker/"+created.ID.String()+"/stage", token, map[string]interface{}{
		"stage":    "approval",
		"nextStep": "Sign the loan agreement",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var advanced model.TrackerEntry
	assert.NoError(t, json.Unmarshal(body, &advanced))
	assert.Equal(t, model.StageApproval, advanced.CurrentStage)
	assert.Equal(t, model.StatusApproved, advanced.Status)
	assert.Equal(t, 60, advanced.Progress)

	// Progression
	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/tracker/"+created.ID.String()+"/progress", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var steps []model.StageStep
	assert.NoError(t, json.Unmarshal(body, &steps))
	assert.Len(t, steps, 6)
	assert.True(t, steps[3].Current)
	assert.True(t, steps[2].Complete)
	assert.False(t, steps[4].Complete)
	assert.NotNil(t, steps[3].NextStep)

	// Unknown stage rejected
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/tracker/"+created.ID.String()+"/stage", token, map[string]interface{}{
		"stage": "underwriting",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Another user cannot see the entry
	otherToken, err := service.GenerateToken(uuid.New())
	assert.NoError(t, err)
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/tracker/"+created.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete
	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/tracker/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/tracker/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Tracker_SearchAndSort(t *testing.T) {
	server := setupTestServer(t)

	userID := uuid.New()
	token, err := service.GenerateToken(userID)
	assert.NoError(t, err)

	for _, e := range []map[string]interface{}{
		{"applicationId": "APP-2025-001", "loanType": "Personal Loan", "amount": 500000},
		{"applicationId": "APP-2025-002", "loanType": "Home Loan", "amount": 2500000},
		{"applicationId": "APP-2025-003", "loanType": "Car Loan", "amount": 800000},
	} {
		resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/tracker", token, e)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Search
	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/tracker?search=car", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []model.TrackerEntry
	assert.NoError(t, json.Unmarshal(body, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "APP-2025-003", rows[0].ApplicationID)

	// Sort by amount descending
	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/tracker?sortBy=amount&order=desc", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rows = nil
	assert.NoError(t, json.Unmarshal(body, &rows))
	assert.Len(t, rows, 3)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(2500000)))
	assert.True(t, rows[2].Amount.Equal(decimal.NewFromInt(500000)))
}
