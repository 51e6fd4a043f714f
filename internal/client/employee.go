package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListEmployees fetches the full employee directory, used to populate the
// add-member pickers
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var resp struct {
		Employees []Employee `json:"employees"`
	}
	if err := c.do(ctx, http.MethodGet, "/employees/", nil, &resp, "failed to load employees"); err != nil {
		return nil, err
	}
	return resp.Employees, nil
}

// GetEmployee fetches one employee by id
func (c *Client) GetEmployee(ctx context.Context, id int) (*Employee, error) {
	var resp struct {
		Employee Employee `json:"employee"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, &resp, "failed to load employee"); err != nil {
		return nil, err
	}
	return &resp.Employee, nil
}

// UpdateEmployee applies a partial update to an employee record
func (c *Client) UpdateEmployee(ctx context.Context, id int, input EmployeeInput) (*Employee, error) {
	var resp struct {
		Employee Employee `json:"employee"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d", id), input, &resp, "failed to save employee"); err != nil {
		return nil, err
	}
	return &resp.Employee, nil
}

// DeleteEmployee removes an employee record
func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d", id), nil, nil, "failed to delete employee")
}
