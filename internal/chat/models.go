package chat

import "nurture/internal/milestone/models"

// State is the conversational step a reply belongs to. It is re-derived from
// every message; nothing is stored between turns.
type State string

const (
	StateNeedAge     State = "need_age"
	StateNeedConcern State = "need_concern"
	StateRespond     State = "respond"
)

// ResponseType tags the severity of a reply.
type ResponseType string

const (
	ResponseNormal  ResponseType = "normal"
	ResponseConcern ResponseType = "concern"
	ResponseRedFlag ResponseType = "red_flag"
)

// Request is one chat turn. AgeMonths, when set, takes priority over any age
// mentioned in Message. A non-empty Completed switches the reply to a full
// evaluation.
type Request struct {
	Message   string
	AgeMonths *int
	Completed []string
}

// Reply is the answer to one turn. ReferralNeeded is true exactly when Type is
// ResponseRedFlag.
type Reply struct {
	State          State
	Type           ResponseType
	Text           string
	Activities     []string
	ReferralNeeded bool

	// Resolved inputs, for logging and metrics.
	AgeMonths int
	AgeKnown  bool
	Topic     string
	Domain    models.Domain
}
