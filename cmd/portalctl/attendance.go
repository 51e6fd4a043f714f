package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Record and inspect your attendance",
	}
	cmd.AddCommand(
		newCheckInCmd(),
		newCheckOutCmd(),
		newAttendanceStatusCmd(),
		newAttendanceTodayCmd(),
	)
	return cmd
}

func newCheckInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-in",
		Short: "Record today's arrival",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			record, err := c.CheckIn(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Checked in at %s (%s)\n", record.CheckIn.Format("15:04"), record.Status)
			return nil
		},
	}
}

func newCheckOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-out",
		Short: "Record today's departure",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			record, err := c.CheckOut(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Checked out at %s\n", record.CheckOut.Format("15:04"))
			if record.Notes != "" {
				fmt.Println(record.Notes)
			}
			return nil
		},
	}
}

func newAttendanceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's attendance state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			status, err := c.MyStatus(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case !status.CheckedIn:
				fmt.Println("Not checked in today")
			case status.CheckedOut:
				fmt.Printf("Checked in at %s, checked out at %s\n",
					status.Attendance.CheckIn.Format("15:04"),
					status.Attendance.CheckOut.Format("15:04"))
			default:
				fmt.Printf("Checked in at %s\n", status.Attendance.CheckIn.Format("15:04"))
			}
			return nil
		},
	}
}

func newAttendanceTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's attendance across all active employees (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			overview, err := c.TodayAttendance(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s: %d present, %d absent of %d\n",
				overview.Date, overview.Present, overview.Absent, overview.TotalEmployees)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tSTATUS\tIN\tOUT")
			for _, entry := range overview.Attendance {
				in, out := "-", "-"
				if entry.CheckIn != nil {
					in = entry.CheckIn.Format("15:04")
				}
				if entry.CheckOut != nil {
					out = entry.CheckOut.Format("15:04")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					entry.EmployeeID, entry.EmployeeName, entry.Department, entry.Status, in, out)
			}
			return w.Flush()
		},
	}
}
