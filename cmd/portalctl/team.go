package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"employee-portal/internal/client"
)

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage teams and their members",
	}
	cmd.AddCommand(
		newTeamsListCmd(),
		newTeamsShowCmd(),
		newTeamsCreateCmd(),
		newTeamsUpdateCmd(),
		newTeamsDeleteCmd(),
		newTeamMembersCmd(),
	)
	return cmd
}

func newTeamsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			teams, err := c.ListTeams(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tSTATUS\tDESCRIPTION")
			for _, t := range teams {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Department, t.Status, t.Description)
			}
			return w.Flush()
		},
	}
}

func newTeamsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <team-id>",
		Short: "Show one team with its member list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			team, err := c.GetTeam(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("Team %d: %s\n", team.ID, team.Name)
			if team.Department != "" {
				fmt.Printf("Department: %s\n", team.Department)
			}
			if team.Description != "" {
				fmt.Printf("Description: %s\n", team.Description)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MEMBER ID\tEMPLOYEE\tROLE")
			for _, m := range team.Members {
				name := fmt.Sprintf("employee %d", m.EmployeeID)
				if m.Employee != nil {
					name = m.Employee.FullName()
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, name, m.Role)
			}
			return w.Flush()
		},
	}
}

func newTeamsCreateCmd() *cobra.Command {
	var description, department string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			team, err := c.CreateTeam(cmd.Context(), client.TeamInput{
				Name:        args[0],
				Description: description,
				Department:  department,
			}, nil)
			if err != nil {
				return err
			}
			fmt.Printf("Created team %d: %s\n", team.ID, team.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "team description")
	cmd.Flags().StringVar(&department, "department", "", "owning department")
	return cmd
}

func newTeamsUpdateCmd() *cobra.Command {
	var name, description, department string

	cmd := &cobra.Command{
		Use:   "update <team-id>",
		Short: "Update a team's name, description or department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}

			// unchanged fields keep their current values
			current, err := c.GetTeam(cmd.Context(), id)
			if err != nil {
				return err
			}
			input := client.TeamInput{
				Name:        current.Name,
				Description: current.Description,
				Department:  current.Department,
			}
			if cmd.Flags().Changed("name") {
				input.Name = name
			}
			if cmd.Flags().Changed("description") {
				input.Description = description
			}
			if cmd.Flags().Changed("department") {
				input.Department = department
			}

			team, err := c.UpdateTeam(cmd.Context(), id, input)
			if err != nil {
				return err
			}
			fmt.Printf("Updated team %d: %s\n", team.ID, team.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new team name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&department, "department", "", "new department")
	return cmd
}

func newTeamsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <team-id>",
		Short: "Delete a team and its memberships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			if !yes {
				return fmt.Errorf("refusing to delete team %d without --yes", id)
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			if err := c.DeleteTeam(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted team %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func newTeamMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage team memberships",
	}
	cmd.AddCommand(
		newMembersAddCmd(),
		newMembersRemoveCmd(),
		newMembersSetRoleCmd(),
	)
	return cmd
}

func newMembersAddCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "add <team-id> <employee-id>",
		Short: "Add an employee to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			employeeID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid employee id %q", args[1])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			member, err := c.AddTeamMember(cmd.Context(), teamID, employeeID, role)
			if err != nil {
				return err
			}
			fmt.Printf("Added member %d to team %d as %s\n", member.ID, teamID, member.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", client.RoleMember, "member role (member or leader)")
	return cmd
}

func newMembersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <team-id> <member-id>",
		Short: "Remove a membership from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			memberID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[1])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			if err := c.RemoveTeamMember(cmd.Context(), teamID, memberID); err != nil {
				return err
			}
			fmt.Printf("Removed member %d from team %d\n", memberID, teamID)
			return nil
		},
	}
}

func newMembersSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <team-id> <member-id> <role>",
		Short: "Change a membership's role",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team id %q", args[0])
			}
			memberID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[1])
			}
			c, err := newPortalClient()
			if err != nil {
				return err
			}
			member, err := c.UpdateTeamMemberRole(cmd.Context(), teamID, memberID, args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Member %d is now %s\n", member.ID, member.Role)
			return nil
		},
	}
}
