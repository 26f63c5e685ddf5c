package main

import (
	"context"
	"io"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/pipeline"
	"github.com/mwalto/jobpost/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Postings  jobpost.PostingService
	Attempts  jobpost.AttemptService
	Selectors jobpost.SelectorService
	Queue     *pipeline.Queue
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Add      AddCmd      `cmd:"" help:"Submit a job posting URL for extraction"`
	Manual   ManualCmd   `cmd:"" help:"Enter a job posting by hand"`
	Show     ShowCmd     `cmd:"" help:"Show a posting's extracted fields and provenance"`
	Attempts AttemptsCmd `cmd:"" help:"Show a posting's extraction audit trail"`
	List     ListCmd     `cmd:"" help:"List postings"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URLs        []string `arg:"" help:"Job posting URLs"`
	Source      string   `short:"s" default:"cli" help:"Source tag recorded on the posting"`
	LLM         bool     `help:"Enable the LLM selector-discovery stage"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent pipeline runs"`
}

// ManualCmd is the "manual" subcommand.
type ManualCmd struct {
	Title       string `arg:"" help:"Job title"`
	Company     string `arg:"" help:"Company name"`
	Description string `arg:"" help:"Job description"`
	Source      string `short:"s" default:"manual" help:"Source tag recorded on the posting"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Posting ID"`
}

// AttemptsCmd is the "attempts" subcommand.
type AttemptsCmd struct {
	ID string `arg:"" help:"Posting ID"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Status string `help:"Filter by status (pending, fetching, failed, manual, complete)"`
	Domain string `help:"Filter by domain"`
	Limit  int    `default:"50" help:"Maximum postings to list"`
}
