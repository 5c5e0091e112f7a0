package observability

// Metric name prefixes
const (
	MetricPrefix = "coinbot"
)

// Metric names
const (
	// Discord metrics
	CommandsTotal = MetricPrefix + ".commands.total"

	// Economy metrics
	RewardClaimsTotal        = MetricPrefix + ".rewards.claims_total"
	RewardCoinsTotal         = MetricPrefix + ".rewards.coins_total"
	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Database metrics
	DatabaseQueriesTotal  = MetricPrefix + ".database.queries_total"
	DatabaseQueryDuration = MetricPrefix + ".database.query_duration"
)

// Label keys
const (
	// Common labels
	LabelType      = "type"
	LabelEventType = "event_type"

	// Command labels
	LabelCommand = "command"
	LabelSource  = "source"
	LabelOutcome = "outcome"

	// Reward labels
	LabelKind = "kind"

	// Database labels
	LabelRepository = "repository"
	LabelMethod     = "method"
)

// Command sources
const (
	SourcePrefix      = "prefix"
	SourceSlash       = "slash"
	SourceComponent   = "component"
	SourceModalSubmit = "modal"
)

// Command outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeUserError   = "user_error"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
)
