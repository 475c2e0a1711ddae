package observability

// Metric name prefixes
const (
	MetricPrefix = "ladder"
)

// Metric names
const (
	// Report metrics
	ReportsInterpretedTotal = MetricPrefix + ".reports.interpreted_total"

	// Match metrics
	MatchesRecordedTotal = MetricPrefix + ".matches.recorded_total"
	RankSwapsTotal       = MetricPrefix + ".matches.rank_swaps_total"

	// Player metrics
	PlayersJoinedTotal = MetricPrefix + ".players.joined_total"

	// Discord metrics
	CommandsHandledTotal = MetricPrefix + ".discord.commands_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelOutcome   = "outcome"
	LabelGameType  = "game_type"
	LabelCommand   = "command"
	LabelEventType = "event_type"
)

// Game types
const (
	GameTypeLadder   = "ladder"
	GameTypeFriendly = "friendly"
)

// Report outcomes
const (
	OutcomeOK               = "ok"
	OutcomeMalformed        = "malformed_input"
	OutcomeAmbiguous        = "ambiguous_outcome"
	OutcomeOpponentNotFound = "opponent_not_found"
	OutcomeUnknownPlayer    = "unknown_player"
	OutcomeError            = "error"
)
