package main

import (
	"fmt"

	"github.com/mwalto/jobpost"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	posting, err := deps.Postings.FindPostingByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobpost.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:          %s\n", posting.ID)
	fmt.Fprintf(deps.Stdout, "Status:      %s\n", posting.Status)
	if posting.SourceURL != "" {
		fmt.Fprintf(deps.Stdout, "URL:         %s\n", posting.SourceURL)
		fmt.Fprintf(deps.Stdout, "Domain:      %s\n", posting.Domain)
	}
	if posting.Source != "" {
		fmt.Fprintf(deps.Stdout, "Source:      %s\n", posting.Source)
	}
	if posting.Title != "" {
		fmt.Fprintf(deps.Stdout, "Title:       %s\n", posting.Title)
	}
	if posting.Company != "" {
		fmt.Fprintf(deps.Stdout, "Company:     %s\n", posting.Company)
	}
	if p := posting.Provenance; p != nil {
		fmt.Fprintf(deps.Stdout, "Provenance:  %s/%s (confidence %.2f)\n", p.Method, p.Extractor, p.Confidence)
		if p.Excerpt != "" {
			fmt.Fprintf(deps.Stdout, "Excerpt:     %s\n", p.Excerpt)
		}
		for _, sel := range p.Selectors {
			fmt.Fprintf(deps.Stdout, "Selector:    %s %s %q\n", sel.Field, sel.Type, sel.Value)
		}
	}
	if posting.Description != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", posting.Description)
	}
	return nil
}
