package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "projects",
		GroupID: "board",
		Short:   "List your projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			projects, err := c.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(a.out, "No projects")
				return nil
			}
			fmt.Fprint(a.out, renderProjects(projects))
			return nil
		},
	}
}

func (a *app) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		GroupID: "board",
		Short:   "Create or delete projects",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			p, err := c.CreateProject(cmd.Context(), strings.Join(args, " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created project %d %q\n", p.ID, p.Name)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "project description")

	rm := &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project with all its lists and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			p, err := c.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !a.confirm(fmt.Sprintf("Delete project %q and everything on it?", p.Name)) {
				return nil
			}
			if err := c.DeleteProject(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted project %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(create, rm)
	return cmd
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}
