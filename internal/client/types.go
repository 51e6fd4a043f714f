package client

import "time"

// Team roles carried by a membership. The server defaults to RoleMember.
const (
	RoleMember = "member"
	RoleLeader = "leader"
)

// Team represents a team as returned by the portal API. ID and Status are
// server-assigned and absent until the team is persisted.
type Team struct {
	ID          int        `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Department  string     `json:"department,omitempty"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// TeamInput carries the user-editable team fields for create and update
// calls. All three fields are always sent so an update can clear a value.
type TeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Department  string `json:"department"`
}

// MemberInput is the embedded member payload sent with a create-team call
type MemberInput struct {
	EmployeeID int    `json:"employee_id"`
	Role       string `json:"role,omitempty"`
}

// TeamMember is a persisted association between a team and an employee.
// Employee is denormalized by the server for display and may be nil.
type TeamMember struct {
	ID         int        `json:"id"`
	TeamID     int        `json:"team_id"`
	EmployeeID int        `json:"employee_id"`
	Role       string     `json:"role,omitempty"`
	JoinedAt   *time.Time `json:"joined_at,omitempty"`
	Employee   *Employee  `json:"employee,omitempty"`
}

// TeamWithMembers is a team plus its member list as returned by GetTeam
type TeamWithMembers struct {
	Team
	Members []TeamMember `json:"members,omitempty"`
}

// MemberEmployeeIDs returns the set of employee ids currently on the team
func (t *TeamWithMembers) MemberEmployeeIDs() map[int]bool {
	ids := make(map[int]bool, len(t.Members))
	for _, m := range t.Members {
		ids[m.EmployeeID] = true
	}
	return ids
}

// Employee is read-only from this client's perspective; it is owned by the
// employee-management subsystem.
type Employee struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	HireDate   string `json:"hire_date,omitempty"`
	Status     string `json:"status,omitempty"`
}

// FullName returns the employee's display name
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeInput carries the editable employee fields for update calls
type EmployeeInput struct {
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Status     string `json:"status,omitempty"`
}

// User is the authenticated account returned by login and profile calls
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Attendance is one day's check-in/check-out record for an employee
type Attendance struct {
	ID         int        `json:"id"`
	EmployeeID int        `json:"employee_id"`
	CheckIn    time.Time  `json:"check_in"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Status     string     `json:"status,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// LoginResult bundles the issued token with the authenticated user
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// AttendanceStatus reports today's attendance state for the current user
type AttendanceStatus struct {
	CheckedIn  bool        `json:"checked_in"`
	CheckedOut bool        `json:"checked_out"`
	Attendance *Attendance `json:"attendance,omitempty"`
}

// WorkSchedule is an employee's expected working window for one weekday
// (0=Monday .. 6=Sunday)
type WorkSchedule struct {
	ID         int    `json:"id"`
	EmployeeID int    `json:"employee_id"`
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ScheduleInput carries the fields for adding a schedule entry
type ScheduleInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AttendancePage is one page of an employee's attendance history
type AttendancePage struct {
	EmployeeID   int          `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Records      []Attendance `json:"attendance_records"`
	Total        int          `json:"total"`
	Pages        int          `json:"pages"`
	CurrentPage  int          `json:"current_page"`
}

// AttendanceQuery filters and paginates an attendance history request.
// Zero values mean the server defaults (page 1, ten records, no date bound).
type AttendanceQuery struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Page      int
	PerPage   int
}

// TodayEntry is one employee's line in the daily attendance overview.
// Absent employees carry status "absent" and nil times.
type TodayEntry struct {
	EmployeeID   int        `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Department   string     `json:"department"`
	Position     string     `json:"position"`
	Present      bool       `json:"present"`
	CheckIn      *time.Time `json:"check_in,omitempty"`
	CheckOut     *time.Time `json:"check_out,omitempty"`
	Status       string     `json:"status"`
}

// TodayOverview is the admin dashboard's daily attendance summary
type TodayOverview struct {
	Date           string       `json:"date"`
	TotalEmployees int          `json:"total_employees"`
	Present        int          `json:"present"`
	Absent         int          `json:"absent"`
	Attendance     []TodayEntry `json:"attendance"`
}

// AttendanceInput carries a partial correction to an attendance record.
// Nil fields are left untouched.
type AttendanceInput struct {
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// EmployeeTeam is one of an employee's team memberships: the team plus the
// role held on it
type EmployeeTeam struct {
	Team
	Role string `json:"role"`
}
