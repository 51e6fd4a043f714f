package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListEmployeeSchedules fetches an employee's weekly working windows
func (c *Client) ListEmployeeSchedules(ctx context.Context, employeeID int) ([]WorkSchedule, error) {
	var resp struct {
		Schedules []WorkSchedule `json:"schedules"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d/schedules", employeeID), nil, &resp, "failed to load schedules"); err != nil {
		return nil, err
	}
	return resp.Schedules, nil
}

// AddEmployeeSchedule adds one weekday window to an employee's schedule
func (c *Client) AddEmployeeSchedule(ctx context.Context, employeeID int, input ScheduleInput) (*WorkSchedule, error) {
	var resp struct {
		Schedule WorkSchedule `json:"schedule"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/employees/%d/schedules", employeeID), input, &resp, "failed to save schedule"); err != nil {
		return nil, err
	}
	return &resp.Schedule, nil
}

// DeleteEmployeeSchedule removes one schedule entry from an employee
func (c *Client) DeleteEmployeeSchedule(ctx context.Context, employeeID, scheduleID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d/schedules/%d", employeeID, scheduleID), nil, nil, "failed to delete schedule")
}
