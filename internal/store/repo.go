package store

import (
	"context"
	"time"

	"github.com/morepeace/manyora/internal/profile"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProfileRepo manages learner profile records. Profiles are stored whole:
// callers load, mutate in memory, and save back.
type ProfileRepo interface {
	// Save persists the profile and marks it as the active one.
	Save(ctx context.Context, p *profile.Profile) error

	// Load returns the named profile, or ErrProfileNotFound.
	Load(ctx context.Context, name string) (*profile.Profile, error)

	// LoadActive returns the active profile, or ErrProfileNotFound
	// when no profile exists yet.
	LoadActive(ctx context.Context) (*profile.Profile, error)

	// SetActive points the active marker at the named profile, which
	// must exist. Save sets the marker implicitly; SetActive covers
	// picking an existing learner without writing their record.
	SetActive(ctx context.Context, name string) error

	// List returns all stored profile names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the named profile. Deleting the active profile
	// clears the active pointer.
	Delete(ctx context.Context, name string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// SessionEventData captures a learner-session transition for the journal.
type SessionEventData struct {
	Profile string
	Subject string
	Action  string
	Score   int
	Detail  string
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMPurposeUsage aggregates token usage for one purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the event journal.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates call counts, tokens, and latency per
	// purpose label, most calls first.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates call counts and tokens per model, most
	// calls first.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendSessionEvent records a learner-session transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)
}
