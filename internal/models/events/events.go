package events

import "time"

// Topics, one per event type. The Kafka publisher writes each event to its
// own topic; in-process sinks just record the pair.
const (
	TopicCreated      = "token_created"
	TopicTransfer     = "token_transfer"
	TopicApproval     = "token_approval"
	TopicTransferFrom = "token_transfer_from"
	TopicBurn         = "token_burn"
	TopicIssue        = "token_issue"
)

// Meta carries the fields every notification shares. Account identities are
// hex strings and amounts are base-10 strings so consumers do not need the
// ledger's binary types.
type Meta struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Created is emitted once, when the ledger is constructed.
type Created struct {
	Meta
	From        string `json:"from"`
	TotalSupply string `json:"total_supply"`
}

// Transfer is emitted when tokens move directly between two balances.
type Transfer struct {
	Meta
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// Approval is emitted when an owner reserves balance into an allowance.
type Approval struct {
	Meta
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Value   string `json:"value"`
}

// TransferFrom is emitted when a spender draws down an owner's allowance.
// From is the spender that made the call.
type TransferFrom struct {
	Meta
	From  string `json:"from"`
	Owner string `json:"owner"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// Burn is emitted when tokens are destroyed out of a balance.
type Burn struct {
	Meta
	From  string `json:"from"`
	Value string `json:"value"`
}

// Issue is emitted when the issuer mints new tokens to itself.
type Issue struct {
	Meta
	Issuer string `json:"issuer"`
	Value  string `json:"value"`
}
