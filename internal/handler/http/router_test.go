package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-payroll-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-payroll-go/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-payroll-go/internal/service/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	router     http.Handler
	jwtService jwt.Service
	alice      employee.Employee
	bob        employee.Employee
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	employees := memory.NewEmployeeRepository()
	attendances := memory.NewAttendanceRepository()
	leaves := memory.NewLeaveRequestRepository()
	payrolls := memory.NewPayrollRepository(employees)

	alice, err := employees.Create(ctx, employee.Employee{
		EmployeeCode: "EMP-001",
		FullName:     "Alice",
		Status:       employee.EmploymentStatusActive,
		AnnualSalary: decimal.NewFromInt(1200000),
	})
	require.NoError(t, err)
	bob, err := employees.Create(ctx, employee.Employee{
		EmployeeCode: "EMP-002",
		FullName:     "Bob",
		Status:       employee.EmploymentStatusActive,
		AnnualSalary: decimal.NewFromInt(600000),
	})
	require.NoError(t, err)

	attendancePolicy := policy.NewDefaultPolicy()
	attendancePolicy.Loc = time.UTC
	clock := &policy.FixedClock{T: time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC)}

	reports := reportService.NewReportService(attendances, leaves, employees, attendancePolicy)
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")

	router := NewRouter(RouterOptions{
		JWTService:     jwtService,
		AllowedOrigins: []string{"http://localhost:3000"},
		Attendance:     NewAttendanceHandler(attendanceService.NewAttendanceService(attendances, employees, attendancePolicy, clock)),
		Leave:          NewLeaveHandler(leaveService.NewLeaveService(leaves, employees, clock)),
		Payroll:        NewPayrollHandler(payrollService.NewPayrollService(payrolls, employees, reports, clock)),
		Report:         NewReportHandler(reports),
		Dashboard:      NewDashboardHandler(dashboardService.NewDashboardService(employees, attendances, leaves, attendancePolicy, clock)),
	})

	return &testServer{router: router, jwtService: jwtService, alice: alice, bob: bob}
}

func (s *testServer) token(t *testing.T, employeeID *string, role string) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken("user-"+role, employeeID, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) employeeToken(t *testing.T, emp employee.Employee) string {
	return s.token(t, &emp.ID, jwt.RoleEmployee)
}

func (s *testServer) adminToken(t *testing.T) string {
	return s.token(t, nil, jwt.RoleAdmin)
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/today", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CheckInTwice(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, s.alice)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_CHECKED_IN", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"can_check_out":true`)
}

func TestRouter_EmployeeCannotActForOthers(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, s.alice)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]string{"employee_id": s.bob.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/summary?month=5&year=2024&employee_id="+s.bob.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/run", token, map[string]interface{}{"employee_id": s.alice.ID, "month": 5, "year": 2024})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminChecksInForEmployee(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", s.adminToken(t), map[string]string{"employee_id": s.bob.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// admin tokens carry no employee of their own
	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", s.adminToken(t), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_EmployeeCannotChooseTimestamp(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, s.alice)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, map[string]string{"timestamp": "2024-04-01T08:00:00Z"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/summary?month=4&year=2024", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"present_days":0`)

	// a clock-stamped check-in still works; the check-out time cannot be picked either
	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"date":"2024-05-02"`)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, map[string]string{"timestamp": "2024-05-02T23:00:00Z"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"hours_worked":0`)
}

func TestRouter_AdminSetsTimestamp(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", admin, map[string]string{
		"employee_id": s.bob.ID,
		"timestamp":   "2024-04-01T08:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"date":"2024-04-01"`)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", admin, map[string]string{
		"employee_id": s.bob.ID,
		"timestamp":   "2024-04-01T17:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"hours_worked":9`)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/summary?employee_id="+s.bob.ID+"&month=4&year=2024", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"present_days":1`)
}

func TestRouter_MonthlySummary(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, s.alice)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance/summary?month=5&year=2024", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total_days":31`)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/summary?month=13&year=2024", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PERIOD", errorCode(t, rec))
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.employeeToken(t, s.alice)

	rec := s.do(t, http.MethodPost, "/api/v1/leaves", token, map[string]string{
		"leave_type": "annual",
		"start_date": "2024-05-06",
		"end_date":   "2024-05-07",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = s.do(t, http.MethodPost, "/api/v1/leaves/"+created.Data.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/leaves/"+created.Data.ID+"/approve", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/leaves/"+created.Data.ID+"/reject", s.adminToken(t), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "LEAVE_ALREADY_PROCESSED", errorCode(t, rec))

	rec = s.do(t, http.MethodDelete, "/api/v1/leaves/"+created.Data.ID, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/leaves/"+created.Data.ID, s.employeeToken(t, s.bob), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_PayrollRunAndPayslip(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	rec := s.do(t, http.MethodPost, "/api/v1/payroll/run", admin, map[string]interface{}{
		"employee_id": s.alice.ID,
		"month":       5,
		"year":        2024,
		"mode":        "flat",
		"bonus":       "50",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var run struct {
		Data struct {
			ID          string          `json:"id"`
			TotalSalary decimal.Decimal `json:"total_salary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.True(t, run.Data.TotalSalary.Equal(decimal.NewFromInt(100050)), run.Data.TotalSalary.String())

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/"+run.Data.ID+"/payslip.pdf", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/run", admin, map[string]interface{}{
		"employee_id": s.alice.ID,
		"month":       5,
		"year":        2024,
		"mode":        "hourly",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PAYROLL_MODE", errorCode(t, rec))

	rec = s.do(t, http.MethodPut, "/api/v1/payroll/"+run.Data.ID, admin, map[string]interface{}{"status": "paid"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/run", admin, map[string]interface{}{
		"employee_id": s.alice.ID,
		"month":       5,
		"year":        2024,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "PAYROLL_ALREADY_PAID", errorCode(t, rec))
}

func TestRouter_StatisticsAndExport(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", s.employeeToken(t, s.alice), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/statistics?date=2024-05-02", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"present":1`)
	assert.Contains(t, rec.Body.String(), `"not_applied":1`)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/statistics?date=2024-05-02", s.employeeToken(t, s.alice), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/monthly.xlsx?month=5&year=2024", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-2024-05.xlsx")
}
