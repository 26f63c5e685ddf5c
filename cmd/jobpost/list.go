package main

import (
	"fmt"

	"github.com/mwalto/jobpost"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := jobpost.PostingFilter{Limit: c.Limit}
	if c.Status != "" {
		status := jobpost.Status(c.Status)
		filter.Status = &status
	}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}

	postings, err := deps.Postings.FindPostings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobpost.ErrorMessage(err))
		return err
	}

	if len(postings) == 0 {
		fmt.Fprintln(deps.Stdout, "No postings found. Use 'jobpost add' to submit one.")
		return nil
	}

	for _, p := range postings {
		title := p.Title
		if title == "" {
			title = p.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %s\n", p.ID, p.Status, title)
	}
	return nil
}
