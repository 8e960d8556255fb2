package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liteboard/internal/board"
)

// confirm asks on stdin unless --yes was given. Anything but y/yes declines.
func (a *app) confirm(prompt string) bool {
	if a.assumeYes {
		return true
	}
	fmt.Fprintf(a.errOut, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(a.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// withBoard loads the --project board, runs fn and prints the board as it
// stands afterwards, reloaded or not.
func (a *app) withBoard(ctx context.Context, fn func(b *board.Board) error) error {
	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}
	fnErr := fn(b)
	fmt.Fprint(a.out, renderBoard(b.Project(), b.Lists()))
	return fnErr
}

func (a *app) boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		GroupID: "board",
		Short:   "Show the board of --project",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBoard(cmd.Context(), func(*board.Board) error { return nil })
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "board",
		Short:   "Add, rename or remove lists on the board",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <title>",
			Short: "Append a list to the board",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withBoard(cmd.Context(), func(b *board.Board) error {
					return b.CreateList(cmd.Context(), strings.Join(args, " "))
				})
			},
		},
		&cobra.Command{
			Use:   "rename <list-id> <title>",
			Short: "Rename a list (an empty title changes nothing)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("list", args[0])
				if err != nil {
					return err
				}
				return a.withBoard(cmd.Context(), func(b *board.Board) error {
					return b.RenameList(cmd.Context(), id, strings.Join(args[1:], " "))
				})
			},
		},
		&cobra.Command{
			Use:   "rm <list-id>",
			Short: "Delete a list; its cards stay in the project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("list", args[0])
				if err != nil {
					return err
				}
				return a.withBoard(cmd.Context(), func(b *board.Board) error {
					return b.DeleteList(cmd.Context(), id)
				})
			},
		},
	)
	return cmd
}

func (a *app) cardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "card",
		GroupID: "board",
		Short:   "Add, edit or remove cards",
	}

	var content string
	add := &cobra.Command{
		Use:   "add <list-id> <title>",
		Short: "Append a card to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("list", args[0])
			if err != nil {
				return err
			}
			return a.withBoard(cmd.Context(), func(b *board.Board) error {
				return b.CreateEntry(cmd.Context(), id, strings.Join(args[1:], " "), content)
			})
		},
	}
	add.Flags().StringVarP(&content, "content", "c", "", "card body (defaults to the title)")

	var editContent string
	edit := &cobra.Command{
		Use:   "edit <card-id> <title>",
		Short: "Change a card's title and body",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("card", args[0])
			if err != nil {
				return err
			}
			return a.withBoard(cmd.Context(), func(b *board.Board) error {
				return b.UpdateEntry(cmd.Context(), id, strings.Join(args[1:], " "), editContent)
			})
		},
	}
	edit.Flags().StringVarP(&editContent, "content", "c", "", "card body (defaults to the title)")

	rm := &cobra.Command{
		Use:   "rm <list-id> <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID("list", args[0])
			if err != nil {
				return err
			}
			cardID, err := parseID("card", args[1])
			if err != nil {
				return err
			}
			return a.withBoard(cmd.Context(), func(b *board.Board) error {
				return b.DeleteEntry(cmd.Context(), listID, cardID)
			})
		},
	}

	cmd.AddCommand(add, edit, rm)
	return cmd
}

func (a *app) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "move <card-id> <from-list-id> <to-list-id>",
		GroupID: "board",
		Short:   "Drag a card onto another list",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 3)
			for i, kind := range []string{"card", "list", "list"} {
				id, err := parseID(kind, args[i])
				if err != nil {
					return err
				}
				ids[i] = id
			}
			return a.withBoard(cmd.Context(), func(b *board.Board) error {
				return b.Move(cmd.Context(), ids[1], ids[0], ids[2])
			})
		},
	}
}
