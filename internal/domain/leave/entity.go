package leave

import "time"

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
	LeaveTypeUnpaid    LeaveType = "unpaid"
	LeaveTypeOther     LeaveType = "other"
)

var ValidLeaveTypes = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeSick),
	string(LeaveTypeCasual),
	string(LeaveTypeMaternity),
	string(LeaveTypePaternity),
	string(LeaveTypeUnpaid),
	string(LeaveTypeOther),
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

var ValidStatuses = []string{
	string(LeaveRequestStatusPending),
	string(LeaveRequestStatusApproved),
	string(LeaveRequestStatusRejected),
}

// LeaveRequest entity. StartDate and EndDate are inclusive calendar dates.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType

	StartDate time.Time
	EndDate   time.Time
	Days      int

	Reason string

	Status     LeaveRequestStatus // 'pending', 'approved', 'rejected'
	ApprovedBy *string
	ApprovedAt *time.Time
	Comments   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

func (l LeaveRequest) IsPending() bool {
	return l.Status == LeaveRequestStatusPending
}
