package build

import (
	"log/slog"
	"time"
)

// Outcome is the typed enumeration of final build result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// IssueCode enumerates machine-parseable issue identifiers. Stable contract;
// only append, never reuse.
type IssueCode string

const (
	IssueConfiguration    IssueCode = "CONFIGURATION"
	IssueDiscoveryFailure IssueCode = "DISCOVERY_FAILURE"
	IssueRenderFailure    IssueCode = "RENDER_FAILURE"
	IssueCopyFailure      IssueCode = "COPY_FAILURE"
	IssueSitemapFailure   IssueCode = "SITEMAP_FAILURE"
	IssueAllFilesFailed   IssueCode = "ALL_FILES_FAILED"
	IssueManifestFailure  IssueCode = "MANIFEST_FAILURE"
	IssueCanceled         IssueCode = "BUILD_CANCELED"
)

// Severity represents normalized severity levels.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a structured entry describing a discrete problem encountered
// during the build. Message is human-friendly; Code + Stage allow automated
// handling.
type Issue struct {
	Code     IssueCode `json:"code"`
	Stage    StageName `json:"stage"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// ProjectStats aggregates per-project publish counts for the build summary.
type ProjectStats struct {
	Discovered int
	Published  int
	Failed     int
}

// Report captures high-level metrics about one build run.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	StageDurations map[StageName]time.Duration
	Projects       map[string]*ProjectStats
	Issues         []Issue
	Outcome        Outcome
}

// NewReport returns an empty report for the given build ID.
func NewReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: map[StageName]time.Duration{},
		Projects:       map[string]*ProjectStats{},
	}
}

// AddIssue appends a structured issue.
func (r *Report) AddIssue(code IssueCode, stage StageName, severity Severity, msg string) {
	r.Issues = append(r.Issues, Issue{Code: code, Stage: stage, Severity: severity, Message: msg})
}

// Stats returns (allocating if needed) the counters for a project.
func (r *Report) Stats(project string) *ProjectStats {
	st, ok := r.Projects[project]
	if !ok {
		st = &ProjectStats{}
		r.Projects[project] = st
	}
	return st
}

// DeriveOutcome computes the overall outcome from collected issues. An
// already-set canceled outcome is preserved.
func (r *Report) DeriveOutcome() {
	if r.Outcome == OutcomeCanceled {
		return
	}
	r.Outcome = OutcomeSuccess
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			r.Outcome = OutcomeFailed
			return
		case SeverityWarning:
			r.Outcome = OutcomeWarning
		}
	}
}

// Finish stamps the end time.
func (r *Report) Finish() {
	r.End = time.Now()
}

// Duration returns the total build wall time.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// LogSummary emits the per-project counts and final outcome.
func (r *Report) LogSummary() {
	for name, st := range r.Projects {
		slog.Info("Project summary",
			slog.String("project", name),
			slog.Int("discovered", st.Discovered),
			slog.Int("published", st.Published),
			slog.Int("failed", st.Failed))
	}
	slog.Info("Build finished",
		slog.String("build_id", r.BuildID),
		slog.String("outcome", string(r.Outcome)),
		slog.Duration("duration", r.Duration()),
		slog.Int("issues", len(r.Issues)))
}
