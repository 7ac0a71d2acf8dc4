package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Create implements LeaveHandler.
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("Failed to decode leave request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.EmployeeID, err = claims.ResolveEmployeeID(req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// List implements LeaveHandler. Non-admins only see their own requests.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	filter := leave.LeaveRequestFilter{}

	employeeID := query.Get("employee_id")
	if !claims.IsAdmin() {
		if employeeID, err = claims.ResolveEmployeeID(employeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	if employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if leaveType := query.Get("leave_type"); leaveType != "" {
		filter.LeaveType = &leaveType
	}
	filter.Page, filter.Limit = parsePagination(r)

	results, err := h.leaveService.ListLeaveRequest(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ownedRequest loads the request and checks the caller may touch it.
func (h *leaveHandlerImpl) ownedRequest(r *http.Request) (leave.LeaveRequestResponse, error) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	result, err := h.leaveService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !claims.CanAccessEmployee(result.EmployeeID) {
		return leave.LeaveRequestResponse{}, auth.ErrForbiddenEmployee
	}
	return result, nil
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.ownedRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements LeaveHandler.
func (h *leaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.ownedRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.DeleteLeaveRequest(r.Context(), result.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.leaveService.ApproveLeaveRequest, "Leave request approved")
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.leaveService.RejectLeaveRequest, "Leave request rejected")
}

type resolveFunc func(ctx context.Context, req leave.ResolveLeaveRequest) (leave.LeaveRequestResponse, error)

func (h *leaveHandlerImpl) resolve(w http.ResponseWriter, r *http.Request, fn resolveFunc, message string) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ResolveLeaveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ApprovedBy = claims.UserID

	result, err := fn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}
