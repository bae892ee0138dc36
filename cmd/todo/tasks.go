package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/todoapi/todo"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			tasks, err := c.GetAllTasks(cmd.Context())
			if err != nil {
				return err
			}

			return printTasks(a.stdout, tasks, a.jsonOutput)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			task, err := c.GetTaskByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printTask(a.stdout, task, a.jsonOutput)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var (
		userID    string
		title     string
		completed bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			task, err := c.AddTaskToUser(cmd.Context(), userID, title, completed)
			if err != nil {
				return err
			}

			return printTask(a.stdout, task, a.jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "Owning user id")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Task title")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the task as completed")
	markRequired(cmd, "user", "title")

	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var task todo.Task

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a task",
		Long:  `Replace every field of a task. Fields not given are sent empty.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			task.ID = args[0]
			updated, err := c.UpdateTask(cmd.Context(), task)
			if err != nil {
				return err
			}

			return printTask(a.stdout, updated, a.jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&task.UserID, "user", "u", "", "Owning user id")
	cmd.Flags().StringVarP(&task.Title, "title", "t", "", "Task title")
	cmd.Flags().BoolVar(&task.Completed, "completed", false, "Mark the task as completed")
	markRequired(cmd, "user", "title")

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			if err := c.DeleteTaskByID(cmd.Context(), args[0]); err != nil {
				return err
			}

			return printDeleted(a.stdout, args[0], a.jsonOutput)
		},
	}
}

// markRequired marks local flags as required. Naming a flag that does not
// exist is a programming error.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("marking %s flag %q required: %v", cmd.Name(), name, err))
		}
	}
}
