package filterscope

import (
	"fmt"
	"log/slog"

	"github.com/sharedindex/filterscope/filter"
)

// Parser parses filter text into an expression tree.
// The filter language grammar lives outside this module; implementations
// typically wrap the query-language parser owned by the search layer.
type Parser interface {
	Parse(text string) (filter.Expression, error)
}

// DefaultMetaFields are the shared top-level fields of the multiplexed
// index. They are available on every object type without an attributes
// segment and are maintained alongside the index template, not derived from
// per-type mappings.
var DefaultMetaFields = []string{
	"type",
	"namespace",
	"namespaces",
	"references",
	"updated_at",
	"created_at",
	"origin_id",
}

// Config contains configuration for a Rewriter.
type Config struct {
	// Parser converts filter text into expression trees.
	// OPTIONAL: Required only by ConvertText and ConvertAll; Validate and
	// Convert accept pre-built trees without it.
	Parser Parser

	// MetaFields is the set of reserved metadata field names.
	// OPTIONAL: Uses DefaultMetaFields if nil. Entries MUST be non-empty.
	// Duplicates are harmless.
	MetaFields []string

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Rewriter validates filters against a shared-index mapping and rewrites
// them to storage-level field names. Safe for concurrent use.
type Rewriter struct {
	parser Parser
	meta   map[string]struct{}
	logger *slog.Logger
}

// New creates a Rewriter from cfg.
// Returns ErrInvalidConfig (wrapped) if a meta field entry is empty.
func New(cfg Config) (*Rewriter, error) {
	metaFields := cfg.MetaFields
	if metaFields == nil {
		metaFields = DefaultMetaFields
	}

	meta := make(map[string]struct{}, len(metaFields))
	for _, name := range metaFields {
		if name == "" {
			return nil, fmt.Errorf("%w: empty meta field name", ErrInvalidConfig)
		}
		meta[name] = struct{}{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Rewriter{
		parser: cfg.Parser,
		meta:   meta,
		logger: logger,
	}, nil
}
