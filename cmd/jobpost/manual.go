package main

import (
	"fmt"

	"github.com/mwalto/jobpost"
)

// Run executes the manual command. Manual postings bypass the pipeline
// entirely and are created directly in the manual terminal state.
func (c *ManualCmd) Run(deps *Dependencies) error {
	posting := &jobpost.JobPosting{
		Title:       c.Title,
		Company:     c.Company,
		Description: c.Description,
		Source:      c.Source,
		Status:      jobpost.StatusManual,
		Provenance: &jobpost.Provenance{
			Method:     jobpost.MethodManual,
			Extractor:  "manual",
			Confidence: 1.0,
		},
	}

	if err := deps.Postings.CreatePosting(deps.Ctx, posting); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobpost.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created manual posting %q at %q (%s)\n", c.Title, c.Company, posting.ID)
	return nil
}
