// Package jobpost provides a job-posting extraction pipeline. Given an
// employer-posted job URL it recovers a normalized (title, company,
// description) triple through a multi-stage fallback chain: structured
// schema.org markup first, then DOM heuristics, then LLM-assisted CSS
// selector discovery. Every stage attempt is audited and previously
// successful selectors are cached per domain.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, gemini/).
package jobpost
