package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"employee-portal/internal/client"
)

func newEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Browse the employee directory",
	}
	cmd.AddCommand(
		newEmployeesListCmd(),
		newEmployeesSchedulesCmd(),
	)
	return cmd
}

func newEmployeesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			employees, err := c.ListEmployees(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDEPARTMENT\tPOSITION\tSTATUS")
			for _, e := range employees {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.FullName(), e.Email, e.Department, e.Position, e.Status)
			}
			return w.Flush()
		},
	}
}

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func newEmployeesSchedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "Manage an employee's weekly work schedule",
	}
	cmd.AddCommand(
		newSchedulesListCmd(),
		newSchedulesAddCmd(),
		newSchedulesRemoveCmd(),
	)
	return cmd
}

func newSchedulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <employee-id>",
		Short: "List an employee's schedule entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid employee id %q", args[0])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			schedules, err := c.ListEmployeeSchedules(cmd.Context(), id)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDAY\tSTART\tEND")
			for _, s := range schedules {
				day := strconv.Itoa(s.DayOfWeek)
				if s.DayOfWeek >= 0 && s.DayOfWeek < len(weekdays) {
					day = weekdays[s.DayOfWeek]
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, day, s.StartTime, s.EndTime)
			}
			return w.Flush()
		},
	}
}

func newSchedulesAddCmd() *cobra.Command {
	var day int
	var start, end string

	cmd := &cobra.Command{
		Use:   "add <employee-id>",
		Short: "Add a schedule entry (day 0=Monday .. 6=Sunday)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid employee id %q", args[0])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			schedule, err := c.AddEmployeeSchedule(cmd.Context(), id, client.ScheduleInput{
				DayOfWeek: day,
				StartTime: start,
				EndTime:   end,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added schedule %d: day %d, %s-%s\n",
				schedule.ID, schedule.DayOfWeek, schedule.StartTime, schedule.EndTime)
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "weekday, 0=Monday .. 6=Sunday")
	cmd.Flags().StringVar(&start, "start", "", "start time, HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "end time, HH:MM")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newSchedulesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <employee-id> <schedule-id>",
		Short: "Remove a schedule entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid employee id %q", args[0])
			}
			scheduleID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[1])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			if err := c.DeleteEmployeeSchedule(cmd.Context(), employeeID, scheduleID); err != nil {
				return err
			}
			fmt.Printf("Removed schedule %d from employee %d\n", scheduleID, employeeID)
			return nil
		},
	}
}
