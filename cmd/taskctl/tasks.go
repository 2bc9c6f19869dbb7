package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sainneha/Asana/client"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := newStore(cmd)
			if err != nil {
				return err
			}
			if err := requireUser(cfg); err != nil {
				return err
			}
			if err := s.FetchTasks(cmd.Context(), cfg.UserID); err != nil {
				return err
			}

			onlyOpen, _ := cmd.Flags().GetBool("open")
			onlyDone, _ := cmd.Flags().GetBool("done")
			byTitle, _ := cmd.Flags().GetBool("sort-title")

			tasks := s.Tasks()
			filtered := make([]client.Task, 0, len(tasks))
			for _, t := range tasks {
				if onlyOpen && t.Completed {
					continue
				}
				if onlyDone && !t.Completed {
					continue
				}
				filtered = append(filtered, t)
			}
			if byTitle {
				sort.Slice(filtered, func(i, j int) bool {
					return strings.ToLower(filtered[i].Title) < strings.ToLower(filtered[j].Title)
				})
			}

			for _, t := range filtered {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				line := fmt.Sprintf("[%s] %s  %s", mark, t.ID, t.Title)
				if t.Description != "" {
					line += "  (" + t.Description + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().Bool("open", false, "Show only open tasks")
	cmd.Flags().Bool("done", false, "Show only completed tasks")
	cmd.Flags().Bool("sort-title", false, "Sort by title instead of creation order")
	return cmd
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := newStore(cmd)
			if err != nil {
				return err
			}
			if err := requireUser(cfg); err != nil {
				return err
			}
			desc, _ := cmd.Flags().GetString("desc")

			created, err := s.AddTask(cmd.Context(), client.NewTask{
				Title:       args[0],
				Description: desc,
			})
			if err != nil {
				return err
			}
			fmt.Println("Added", created.ID)
			return nil
		},
	}
	cmd.Flags().StringP("desc", "d", "", "Task description")
	return cmd
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newStore(cmd)
			if err != nil {
				return err
			}

			patch := client.Patch{}
			if cmd.Flags().Changed("title") {
				v, _ := cmd.Flags().GetString("title")
				patch.Title = &v
			}
			if cmd.Flags().Changed("desc") {
				v, _ := cmd.Flags().GetString("desc")
				patch.Description = &v
			}
			if patch.Title == nil && patch.Description == nil {
				return fmt.Errorf("nothing to change: pass --title or --desc")
			}
			if cmd.Flags().Changed("if-version") {
				v, _ := cmd.Flags().GetInt("if-version")
				patch.Version = &v
			}

			updated, err := s.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (version %d)\n", updated.ID, updated.Version)
			return nil
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().StringP("desc", "d", "", "New description")
	cmd.Flags().Int("if-version", 0, "Only apply if the task is still at this version")
	return cmd
}

func doneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newStore(cmd)
			if err != nil {
				return err
			}

			completed := true
			patch := client.Patch{Completed: &completed}
			if cmd.Flags().Changed("if-version") {
				v, _ := cmd.Flags().GetInt("if-version")
				patch.Version = &v
			}

			updated, err := s.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Println("Done:", updated.Title)
			return nil
		},
	}
	cmd.Flags().Int("if-version", 0, "Only apply if the task is still at this version")
	return cmd
}

func rmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newStore(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("if-version") {
				v, _ := cmd.Flags().GetInt("if-version")
				if err := s.DeleteTaskIfVersion(cmd.Context(), args[0], v); err != nil {
					return err
				}
			} else if err := s.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
	cmd.Flags().Int("if-version", 0, "Only delete if the task is still at this version")
	return cmd
}
