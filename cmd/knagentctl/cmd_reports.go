package main

import (
	"fmt"
	"io"
	"strings"

	"knagent-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkLeavesCmd = &cobra.Command{
	Use:   "check-leaves",
	Short: "List every leave request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadContainer()
		if err != nil {
			return err
		}
		leaves, err := c.OpsService.ListLeaves(cmd.Context())
		if err != nil {
			return err
		}
		printLeaves(cmd.OutOrStdout(), leaves)
		return nil
	},
}

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List questions the agent could not answer, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadContainer()
		if err != nil {
			return err
		}
		gaps, err := c.OpsService.ListGaps(cmd.Context())
		if err != nil {
			return err
		}
		printGaps(cmd.OutOrStdout(), gaps)
		return nil
	},
}

var (
	label     = color.New(color.FgCyan).SprintFunc()
	statusFmt = map[string]func(a ...interface{}) string{
		"Pending":  color.New(color.FgYellow).SprintFunc(),
		"Approved": color.New(color.FgGreen).SprintFunc(),
		"Rejected": color.New(color.FgRed).SprintFunc(),
	}
)

func printLeaves(w io.Writer, leaves []*dto.LeaveRecord) {
	if len(leaves) == 0 {
		fmt.Fprintln(w, "No leave requests found.")
		return
	}
	for _, l := range leaves {
		status := l.Status
		if f, ok := statusFmt[status]; ok {
			status = f(status)
		}
		fmt.Fprintf(w, "%s %s\n", label("User:  "), l.UserId)
		fmt.Fprintf(w, "%s %s -> %s\n", label("Dates: "), l.StartDate, l.EndDate)
		fmt.Fprintf(w, "%s %s\n", label("Reason:"), l.Reason)
		fmt.Fprintf(w, "%s %s\n", label("Status:"), status)
		fmt.Fprintln(w, strings.Repeat("-", 30))
	}
}

func printGaps(w io.Writer, gaps []*dto.GapRecord) {
	if len(gaps) == 0 {
		fmt.Fprintln(w, "No unanswered queries recorded.")
		return
	}
	for _, g := range gaps {
		fmt.Fprintf(w, "%s [%s] %s (%s): %s\n",
			g.Timestamp.Format("2006-01-02 15:04"), g.UserRole, g.UserId, g.SessionId, g.Question)
	}
}
