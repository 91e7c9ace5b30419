package api

// Hospital is one selectable hospital from the registration lookup
type Hospital struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cleaner is one assignable cleaner in the manager's hospital
type Cleaner struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Task is a cleaning assignment as shown on the cleaner dashboard
type Task struct {
	RoomID         string `json:"room_id"`
	Status         string `json:"status"` // "Pending" or "Completed"
	AssignmentDate string `json:"assignment_date"`
	Notes          string `json:"notes"`
}

// ApprovalRecord is a submitted cleaning awaiting a manager decision
type ApprovalRecord struct {
	ID                int    `json:"id"`
	RoomID            string `json:"room_id"`
	CleanerID         string `json:"cleaner_id"`
	CleanlinessStatus string `json:"cleanliness_status"` // "Clean", "Partially Clean", "Dirty"
	AIRemarks         string `json:"ai_remarks"`
}

// DecisionStatus is the outcome a manager assigns to an approval record
type DecisionStatus string

const (
	DecisionApproved DecisionStatus = "Approved"
	DecisionRework   DecisionStatus = "Rework"
)

// RegisterRequest carries the registration form fields
type RegisterRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	HospitalID string `json:"hospital_id,omitempty"`
}

// AssignTaskRequest carries the manager's task assignment fields
type AssignTaskRequest struct {
	RoomID         string `json:"room_id"`
	CleanerID      string `json:"cleaner_id"`
	AssignedByID   string `json:"assigned_by_id"`
	AssignmentDate string `json:"assignment_date"`
	Notes          string `json:"notes"`
}

// RemoteError is a failure reported by the API itself (success:false or an
// error body). Its message is fit for direct display to the user.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}
