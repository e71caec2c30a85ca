package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/config"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/email"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/kafka"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/report"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/auth"
	checkinService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/checkin"
	dayOffService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/dayoff"
	employeeService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/payroll"
	rfidService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/rfid"
	roomService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/room"
	workHourService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/workhour"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password123"

var jakarta = time.FixedZone("WIB", 7*60*60)

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
}

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func newTestServer(t *testing.T, now time.Time) *testServer {
	t.Helper()

	store := memory.NewStore(clock.New(time.UTC))
	clk := clock.Fixed{At: now}
	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", time.Hour, 24*time.Hour)
	mailer, err := email.NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	employeeSvc := employeeService.NewEmployeeService(store, store.Employees(), store.Rooms(), store.Cards(), store.Checkins())
	workHourSvc := workHourService.NewWorkHourService(store.Employees(), store.Checkins(), store.DaysOff(), workhour.DefaultSchedule(), clk)
	hub := sse.NewHub()
	payrollSvc := payrollService.NewPayrollService(store.Employees(), workHourSvc, mailer, kafka.NewNoopPublisher(), clk)

	handlers := Handlers{
		Auth:     NewAuthHandler(jwtSvc, authService.NewAuthService(store.Employees(), store.RefreshTokens(), jwtSvc, clk)),
		Employee: NewEmployeeHandler(employeeSvc),
		WorkHour: NewWorkHourHandler(workHourSvc, employeeSvc),
		Room:     NewRoomHandler(roomService.NewRoomService(store.Rooms(), store.Employees(), store.Machines())),
		RFID:     NewRFIDHandler(rfidService.NewMachineService(store.Machines()), rfidService.NewCardService(store.Cards())),
		Checkin:  NewCheckinHandler(checkinService.NewCheckinService(store.Checkins(), store.Cards(), store.Machines(), store.Rooms(), sse.NewCheckinFeed(hub), clk), hub),
		DayOff:   NewDayOffHandler(dayOffService.NewDayOffService(store, store.DaysOff(), store.Employees(), mailer, clk)),
		Payroll:  NewPayrollHandler(payrollSvc, clk),
	}

	router := NewRouter(jwtSvc, handlers, RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		CheckinLimiter: middleware.NewRateLimiter(100, 100),
	})

	s := &testServer{t: t, handler: router, store: store}
	s.seedEmployee("mgr-1", "boss", employee.RoleManager)
	s.seedEmployee("emp-1", "alice", employee.RoleEmployee)
	s.seedEmployee("emp-2", "bob", employee.RoleEmployee)
	return s
}

func (s *testServer) seedEmployee(id, username string, role employee.Role) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(s.t, err)
	_, err = s.store.Employees().Create(context.Background(), employee.Employee{
		ID:           id,
		Username:     username,
		FirstName:    username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: string(hash),
		HourlyRate:   decimal.NewFromInt(50000),
	})
	require.NoError(s.t, err)
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": testPassword})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(s.t, rec, &tokens)
	return tokens.AccessToken
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if v != nil {
		require.NoError(t, json.Unmarshal(env.Data, v))
	}
	return env
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t, time.Now())
	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Test Login - wrong password and refresh/logout round trip
func TestAuthHandler_LoginRefreshLogout(t *testing.T) {
	s := newTestServer(t, time.Now())

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "", "password": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": testPassword})
	require.Equal(t, http.StatusCreated, rec.Code)

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeData(t, rec, &tokens)
	assert.NotEmpty(t, tokens.AccessToken)

	var cookieSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" && c.Value == tokens.RefreshToken {
			cookieSet = true
		}
	}
	assert.True(t, cookieSet)

	rec = s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/logout", "", map[string]string{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t, time.Now())

	for _, path := range []string{"/api/v1/employees", "/api/v1/rooms", "/api/v1/days-off", "/api/v1/checkins"} {
		rec := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_ManagerOnlyRoutes(t *testing.T) {
	s := newTestServer(t, time.Now())
	employeeToken := s.login("alice")
	managerToken := s.login("boss")

	rec := s.do(http.MethodPost, "/api/v1/rooms", employeeToken, map[string]string{"name": "Lab"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/rooms", managerToken, map[string]string{"name": "Lab"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/rooms", managerToken, map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/rooms", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeData(t, rec, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.TotalItems)
}

func TestEmployeeHandler_CreateAndDelete(t *testing.T) {
	s := newTestServer(t, time.Now())
	managerToken := s.login("boss")

	rec := s.do(http.MethodPost, "/api/v1/employees", managerToken, map[string]interface{}{
		"username":    "carol",
		"first_name":  "Carol",
		"email":       "carol@example.com",
		"password":    "supersecret",
		"hourly_rate": "42000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created employee.EmployeeResponse
	decodeData(t, rec, &created)
	assert.Equal(t, employee.RoleEmployee, created.Role)

	rec = s.do(http.MethodPost, "/api/v1/employees", managerToken, map[string]interface{}{
		"username":   "carol",
		"first_name": "Carol",
		"email":      "other@example.com",
		"password":   "supersecret",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/employees/mgr-1", managerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/employees/"+created.ID, managerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/employees/"+created.ID, managerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckinHandler_RecordWithoutToken(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, jakarta)
	s := newTestServer(t, now)
	ctx := context.Background()

	_, err := s.store.Machines().Create(ctx, rfid.Machine{ID: "machine-1", AllowCheckin: true})
	require.NoError(t, err)
	emp := "emp-1"
	_, err = s.store.Cards().Create(ctx, rfid.Card{ID: "CARD0001", EmployeeID: &emp})
	require.NoError(t, err)

	rec := s.do(http.MethodPost, "/api/v1/checkins", "", map[string]string{"card_id": "CARD0001", "rfid_machine_id": "machine-1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var event checkin.CheckinResponse
	decodeData(t, rec, &event)
	assert.Equal(t, "emp-1", event.EmployeeID)
	assert.True(t, now.Equal(event.CreatedAt))

	rec = s.do(http.MethodPost, "/api/v1/checkins", "", map[string]string{"card_id": "NOPE0000", "rfid_machine_id": "machine-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDayOffHandler_Ownership(t *testing.T) {
	s := newTestServer(t, time.Date(2024, 1, 5, 10, 0, 0, 0, jakarta))
	aliceToken := s.login("alice")
	bobToken := s.login("bob")
	managerToken := s.login("boss")

	body := map[string]string{"start_date": "2024-01-08", "end_date": "2024-01-09", "reason": "trip", "type": "paid"}
	rec := s.do(http.MethodPost, "/api/v1/days-off", aliceToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var d struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employee_id"`
		Approved   bool   `json:"approved"`
	}
	decodeData(t, rec, &d)
	assert.Equal(t, "emp-1", d.EmployeeID)

	// Overlapping request for the same employee.
	rec = s.do(http.MethodPost, "/api/v1/days-off", aliceToken, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Bob cannot file for Alice, edit or cancel her record.
	onBehalf := map[string]string{"employee_id": "emp-1", "start_date": "2024-02-01", "end_date": "2024-02-01", "reason": "x", "type": "paid"}
	rec = s.do(http.MethodPost, "/api/v1/days-off", bobToken, onBehalf)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodPut, "/api/v1/days-off/"+d.ID, bobToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodDelete, "/api/v1/days-off/"+d.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Only managers approve.
	rec = s.do(http.MethodPost, "/api/v1/days-off/"+d.ID+"/approve", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/days-off/"+d.ID+"/approve", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &d)
	assert.True(t, d.Approved)

	rec = s.do(http.MethodGet, "/api/v1/days-off?approved=true", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeData(t, rec, nil)
	assert.Equal(t, 1, env.Meta.TotalItems)

	rec = s.do(http.MethodGet, "/api/v1/days-off?approved=maybe", bobToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/days-off/"+d.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWorkHourHandler_WorkDaysAndExport(t *testing.T) {
	s := newTestServer(t, time.Date(2024, 1, 31, 18, 0, 0, 0, jakarta))
	ctx := context.Background()
	for i, at := range []time.Time{
		time.Date(2024, 1, 8, 9, 0, 0, 0, jakarta),
		time.Date(2024, 1, 8, 17, 0, 0, 0, jakarta),
	} {
		_, err := s.store.Checkins().Create(ctx, checkin.Event{
			ID:         string(rune('a' + i)),
			EmployeeID: "emp-1",
			CardID:     "CARD0001",
			MachineID:  "machine-1",
			CreatedAt:  at,
		})
		require.NoError(t, err)
	}
	token := s.login("alice")

	rec := s.do(http.MethodGet, "/api/v1/employees/emp-1/work-days?start_date=2024-01-08&end_date=2024-01-08", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var days workhour.WorkDaysResponse
	decodeData(t, rec, &days)
	require.Len(t, days.WorkDays, 1)
	assert.Equal(t, 7.0, days.TotalHours)
	assert.True(t, decimal.NewFromInt(350000).Equal(days.PaidAmount))

	rec = s.do(http.MethodGet, "/api/v1/employees/emp-1/work-days?start_date=08-01-2024", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/employees/emp-1/work-days/export?start_date=2024-01-08&end_date=2024-01-08", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rec.Body.Len())
}

func TestPayrollHandler_SalaryEmail(t *testing.T) {
	s := newTestServer(t, time.Date(2024, 2, 1, 8, 0, 0, 0, jakarta))
	managerToken := s.login("boss")
	employeeToken := s.login("alice")

	rec := s.do(http.MethodPost, "/api/v1/employees/emp-1/salary-email", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/employees/emp-1/salary-email", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var payslip struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	decodeData(t, rec, &payslip)
	assert.Equal(t, "2024-01-01", payslip.StartDate)
	assert.Equal(t, "2024-01-31", payslip.EndDate)

	rec = s.do(http.MethodPost, "/api/v1/payroll/salary-emails?start_date=2024-01-31&end_date=2024-01-01", managerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/payroll/salary-emails", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var batch struct {
		Sent    int `json:"sent"`
		Skipped int `json:"skipped"`
	}
	decodeData(t, rec, &batch)
	assert.Equal(t, 0, batch.Sent)
	assert.Equal(t, 3, batch.Skipped)
}

func TestCheckinHandler_Stream(t *testing.T) {
	s := newTestServer(t, time.Date(2024, 1, 8, 9, 0, 0, 0, jakarta))
	ctx := context.Background()
	_, err := s.store.Machines().Create(ctx, rfid.Machine{ID: "machine-1", AllowCheckin: true})
	require.NoError(t, err)
	emp := "emp-1"
	_, err = s.store.Cards().Create(ctx, rfid.Card{ID: "CARD0001", EmployeeID: &emp})
	require.NoError(t, err)

	server := httptest.NewServer(s.handler)
	defer server.Close()

	rec := s.do(http.MethodGet, "/api/v1/checkins/stream?jwt="+s.login("alice"), "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	streamCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, server.URL+"/api/v1/checkins/stream?jwt="+s.login("boss"), nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	readEvent := func() (string, string) {
		var name, data string
		for lines.Scan() {
			line := lines.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "" && name != "":
				return name, data
			}
		}
		return name, data
	}

	name, _ := readEvent()
	require.Equal(t, "connected", name)

	rec = s.do(http.MethodPost, "/api/v1/checkins", "", map[string]string{"card_id": "CARD0001", "rfid_machine_id": "machine-1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	name, data := readEvent()
	assert.Equal(t, sse.CheckinEventName, name)
	var event checkin.CheckinResponse
	require.NoError(t, json.Unmarshal([]byte(data), &event))
	assert.Equal(t, "emp-1", event.EmployeeID)
}
