package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CheckIn records today's arrival for the authenticated user's employee.
// A second check-in on the same day fails with a 409 APIError.
func (c *Client) CheckIn(ctx context.Context) (*Attendance, error) {
	var resp struct {
		Attendance Attendance `json:"attendance"`
	}
	if err := c.do(ctx, http.MethodPost, "/attendance/check-in", nil, &resp, "failed to check in"); err != nil {
		return nil, err
	}
	return &resp.Attendance, nil
}

// CheckOut records today's departure for the authenticated user's employee
func (c *Client) CheckOut(ctx context.Context) (*Attendance, error) {
	var resp struct {
		Attendance Attendance `json:"attendance"`
	}
	if err := c.do(ctx, http.MethodPost, "/attendance/check-out", nil, &resp, "failed to check out"); err != nil {
		return nil, err
	}
	return &resp.Attendance, nil
}

// MyStatus reports today's attendance state for the authenticated user
func (c *Client) MyStatus(ctx context.Context) (*AttendanceStatus, error) {
	var resp AttendanceStatus
	if err := c.do(ctx, http.MethodGet, "/attendance/my-status", nil, &resp, "failed to load attendance status"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EmployeeAttendance fetches one page of an employee's attendance history
func (c *Client) EmployeeAttendance(ctx context.Context, employeeID int, query AttendanceQuery) (*AttendancePage, error) {
	params := url.Values{}
	if query.StartDate != "" {
		params.Set("start_date", query.StartDate)
	}
	if query.EndDate != "" {
		params.Set("end_date", query.EndDate)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(query.PerPage))
	}

	path := fmt.Sprintf("/attendance/employee/%d", employeeID)
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp AttendancePage
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, "failed to load attendance history"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TodayAttendance fetches the daily overview across all active employees;
// requires an admin token
func (c *Client) TodayAttendance(ctx context.Context) (*TodayOverview, error) {
	var resp TodayOverview
	if err := c.do(ctx, http.MethodGet, "/attendance/today", nil, &resp, "failed to load today's attendance"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateAttendance applies a partial correction to one attendance record;
// requires an admin token
func (c *Client) UpdateAttendance(ctx context.Context, id int, input AttendanceInput) (*Attendance, error) {
	var resp struct {
		Attendance Attendance `json:"attendance"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/attendance/%d", id), input, &resp, "failed to update attendance"); err != nil {
		return nil, err
	}
	return &resp.Attendance, nil
}
