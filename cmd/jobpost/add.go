package main

import (
	"fmt"

	"github.com/mwalto/jobpost"
)

// Run executes the add command: it creates one pending posting per URL,
// enqueues each for background extraction, waits for the runs to finish
// and prints the terminal state.
func (c *AddCmd) Run(deps *Dependencies) error {
	var ids []string
	for _, url := range c.URLs {
		posting := &jobpost.JobPosting{
			SourceURL: url,
			Source:    c.Source,
		}
		if err := deps.Postings.CreatePosting(deps.Ctx, posting); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jobpost.ErrorMessage(err))
			return err
		}

		if !deps.Queue.Enqueue(posting.ID, posting.SourceURL) {
			fmt.Fprintf(deps.Stdout, "Skipped duplicate URL %s\n", url)
			continue
		}
		fmt.Fprintf(deps.Stdout, "Queued %s (%s)\n", url, posting.ID)
		ids = append(ids, posting.ID)
	}

	deps.Queue.Wait()

	for _, id := range ids {
		posting, err := deps.Postings.FindPostingByID(deps.Ctx, id)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jobpost.ErrorMessage(err))
			return err
		}
		printPostingLine(deps, posting)
	}
	return nil
}

func printPostingLine(deps *Dependencies, p *jobpost.JobPosting) {
	switch p.Status {
	case jobpost.StatusComplete:
		fmt.Fprintf(deps.Stdout, "%s  %s  %q at %q (%s, confidence %.2f)\n",
			p.ID, p.Status, p.Title, p.Company, p.Provenance.Method, p.Provenance.Confidence)
	case jobpost.StatusFailed:
		reason := ""
		if p.Provenance != nil {
			reason = p.Provenance.Excerpt
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.ID, p.Status, reason)
	default:
		fmt.Fprintf(deps.Stdout, "%s  %s\n", p.ID, p.Status)
	}
}
