package constant

// FallbackAnswer is returned with HTTP 200 when the reasoning loop cannot complete.
const FallbackAnswer = "I apologize, but I am currently unable to access my tools. Please try again later."

const (
	PipelineAgent          = "agent"
	PipelineRetrievalChain = "retrieval_chain"
)

// History roles as exposed by GET /history.
const (
	HistoryRoleHuman = "human"
	HistoryRoleAI    = "ai"
)

const TokenTypeBearer = "bearer"
