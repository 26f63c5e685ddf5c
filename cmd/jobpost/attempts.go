package main

import (
	"fmt"

	"github.com/mwalto/jobpost"
)

// Run executes the attempts command.
func (c *AttemptsCmd) Run(deps *Dependencies) error {
	if _, err := deps.Postings.FindPostingByID(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobpost.ErrorMessage(err))
		return err
	}

	attempts, err := deps.Attempts.FindAttemptsByPosting(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobpost.ErrorMessage(err))
		return err
	}

	if len(attempts) == 0 {
		fmt.Fprintln(deps.Stdout, "No attempts recorded.")
		return nil
	}

	for _, a := range attempts {
		outcome := "failed"
		if a.Success {
			outcome = "ok"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %-6s  %4dms", a.CreatedAt.Format("2006-01-02 15:04:05"), a.Method, outcome, a.DurationMS)
		if a.ResponseCode != 0 {
			fmt.Fprintf(deps.Stdout, "  http=%d", a.ResponseCode)
		}
		if a.Note != "" {
			fmt.Fprintf(deps.Stdout, "  %s", a.Note)
		}
		if a.Error != "" {
			fmt.Fprintf(deps.Stdout, "  error=%q", a.Error)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
