package e2e

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotelbookings/internal/config"
	"hotelbookings/internal/database"
	"hotelbookings/internal/dataset"
	"hotelbookings/internal/middleware"
	"hotelbookings/internal/modules/analysis"
	"hotelbookings/internal/modules/auth"
	"hotelbookings/internal/modules/booking"
	"hotelbookings/internal/modules/stats"
	jwtsvc "hotelbookings/internal/pkg/jwt"
	"hotelbookings/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCSV = `hotel,is_canceled,lead_time,arrival_date_year,arrival_date_month,arrival_date_day_of_month,stays_in_weekend_nights,stays_in_week_nights,adults,children,babies,meal,country,is_repeated_guest,adr,name,email,phone-number
Resort Hotel,0,10,2015,July,1,1,2,2,0,0,BB,PRT,0,75.5,Ann Smith,ann@mail.com,669-792-1661
City Hotel,0,5,2016,July,4,0,1,1,0,0,BB,PRT,1,50,Bob Jones,bob@mail.com,858-637-6955
City Hotel,1,30,2016,August,15,0,3,2,0,0,HB,GBR,0,80,Carol White,carol@mail.com,652-885-2745
Resort Hotel,0,2,2016,July,8,1,1,3,0,0,SC,ESP,1,120,Dan Brown,dan@mail.com,364-656-8427
`

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	csvPath := filepath.Join(t.TempDir(), "bookings.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))
	loader := dataset.NewLoader(csvPath)

	admin, err := config.NewAdminCredentials("admin", "secret123")
	require.NoError(t, err)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	bookingRepo := repository.NewBookingRepository(db)
	authHandler := auth.NewHandler(admin, jwtService)
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, loader))
	statsHandler := stats.NewHandler(loader)
	analysisHandler := analysis.NewHandler(loader)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorLogger())

	root := r.Group("")
	authHandler.RegisterRoutes(root)
	bookingHandler.RegisterRoutes(root, middleware.RequireAdmin(admin, jwtService))
	statsHandler.RegisterRoutes(root)
	analysisHandler.RegisterRoutes(root)

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestBookingLifecycle(t *testing.T) {
	s := setupTestSuite(t)

	// Empty store, then create and list it back.
	w := s.makeRequest(http.MethodGet, "/bookings?limit=1&offset=0", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	w = s.makeRequest(http.MethodPost, "/bookings", map[string]any{
		"booking_date":   "2022-05-01",
		"length_of_stay": 3,
		"guest_name":     "Ann Turner",
		"daily_rate":     99.5,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.makeRequest(http.MethodGet, "/bookings?limit=1&offset=0", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Ann Turner", listed[0]["guest_name"])
	assert.Equal(t, "2022-05-01", listed[0]["booking_date"])
	assert.Equal(t, created["id"], listed[0]["id"])

	id := int64(created["id"].(float64))

	w = s.makeRequest(http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.makeRequest(http.MethodGet, "/bookings/search?guest_name=%25Turner&daily_rate=99.5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	w = s.makeRequest(http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.makeRequest(http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeededImportKeepsRawDates(t *testing.T) {
	s := setupTestSuite(t)

	rows, err := dataset.NewLoader(filepath.Join(t.TempDir(), "missing.csv")).Load()
	assert.Error(t, err)
	assert.Nil(t, rows)

	tbl, err := dataset.Read(bytes.NewReader([]byte(testCSV)))
	require.NoError(t, err)
	require.NoError(t, repository.NewBookingRepository(s.db).BulkImport(context.Background(), tbl))

	w := s.makeRequest(http.MethodGet, "/bookings/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var b map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, "2015-July-1", b["booking_date"])
	assert.Equal(t, "Ann Smith", b["guest_name"])
	assert.Equal(t, float64(3), b["length_of_stay"])
	assert.Equal(t, 75.5, b["daily_rate"])
}

func TestPublicAnalytics(t *testing.T) {
	s := setupTestSuite(t)

	w := s.makeRequest(http.MethodGet, "/bookings/popular_meal_package", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"popular_meal_package":"BB"}`, w.Body.String())

	w = s.makeRequest(http.MethodGet, "/bookings/total_guests_by_year", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var guests map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &guests))
	// Canceled Carol is excluded; Ann booked in 2015 via her lead time.
	assert.Equal(t, map[string]int{"2015": 2, "2016": 4}, guests)

	w = s.makeRequest(http.MethodGet, "/bookings/stats/total_number_of_bookings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_number_of_bookings":4}`, w.Body.String())

	w = s.makeRequest(http.MethodGet, "/bookings/analysis/total_bookings_by_arrival_month", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var byMonth map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byMonth))
	assert.Equal(t, map[string]int{"July": 3, "August": 1}, byMonth)
}

func TestGatedAnalyticsAuth(t *testing.T) {
	s := setupTestSuite(t)

	// No credentials.
	w := s.makeRequest(http.MethodGet, "/bookings/count_by_hotel_meal", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong password.
	w = s.makeRequest(http.MethodGet, "/bookings/count_by_hotel_meal", nil, basicAuth("admin", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Basic auth with the real credentials.
	w = s.makeRequest(http.MethodGet, "/bookings/count_by_hotel_meal", nil, basicAuth("admin", "secret123"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var counts map[string]map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, 2, counts["City Hotel"]["BB"]+counts["City Hotel"]["HB"])

	// Token exchange, then bearer auth.
	w = s.makeRequest(http.MethodPost, "/auth/token", map[string]string{
		"username": "admin", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	w = s.makeRequest(http.MethodGet, "/bookings/avg_daily_rate_resort", nil, "Bearer "+tok.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var adr map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adr))
	assert.InDelta(t, 97.75, adr["July"], 1e-9)

	// Bad credentials get no token.
	w = s.makeRequest(http.MethodPost, "/auth/token", map[string]string{
		"username": "admin", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDatasetUnavailable(t *testing.T) {
	s := setupTestSuite(t)

	// Point a fresh stats handler at a missing file.
	broken := stats.NewHandler(dataset.NewLoader(filepath.Join(t.TempDir(), "gone.csv")))
	r := gin.New()
	broken.RegisterRoutes(r.Group(""))

	req := httptest.NewRequest(http.MethodGet, "/bookings/stats/avg_daily_rate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The main suite still serves fine afterwards.
	w2 := s.makeRequest(http.MethodGet, "/bookings/stats/avg_daily_rate", nil, "")
	assert.Equal(t, http.StatusOK, w2.Code)
}
