// Package token implements the fungible-token ledger: balances, delegated
// allowances and total supply, mutated through a fixed set of operations.
//
// The ledger is a synchronous state machine. It does no locking of its own;
// the hosting environment must serialize mutating calls. Caller identity is
// an explicit argument on every mutation, supplied by the host, so the core
// stays a pure function of (state, caller, args).
package token

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models/events"
)

// Ledger holds the token state. The issuer is fixed at construction and is
// the only account allowed to mint. Absent balance or allowance entries
// read as zero.
//
// Note the unconventional approve semantics: Approve debits the owner's
// balance into the (owner, spender) allowance, and TransferFrom pays the
// recipient out of that allowance without touching the owner's balance
// again. Approving reserves funds rather than setting a spend ceiling, and
// repeated approvals add up. Total supply therefore equals the sum of all
// balances plus all outstanding allowances.
type Ledger struct {
	issuer      models.AccountID
	totalSupply models.Amount
	balances    map[models.AccountID]models.Amount
	allowances  map[models.AllowanceKey]models.Amount
	events      interfaces.EventPublisher
}

// New creates a ledger with the full initial supply credited to the
// creator, who becomes the issuer. Emits a Created event.
func New(initialSupply *models.Amount, creator models.AccountID, publisher interfaces.EventPublisher) (*Ledger, error) {
	l := &Ledger{
		issuer:     creator,
		balances:   make(map[models.AccountID]models.Amount),
		allowances: make(map[models.AllowanceKey]models.Amount),
		events:     publisher,
	}
	err := l.publish(events.TopicCreated, events.Created{
		Meta:        newMeta(),
		From:        creator.String(),
		TotalSupply: initialSupply.Dec(),
	})
	if err != nil {
		return nil, err
	}

	l.totalSupply.Set(initialSupply)
	l.balances[creator] = l.totalSupply
	return l, nil
}

// Restore rebuilds a ledger from a persisted snapshot. No event is emitted;
// restoring is not a state transition.
func Restore(snapshot models.Snapshot, publisher interfaces.EventPublisher) *Ledger {
	snapshot = snapshot.Clone()
	return &Ledger{
		issuer:      snapshot.Issuer,
		totalSupply: snapshot.TotalSupply,
		balances:    snapshot.Balances,
		allowances:  snapshot.Allowances,
		events:      publisher,
	}
}

// Issuer returns the account fixed at construction as the minting authority.
func (l *Ledger) Issuer() models.AccountID {
	return l.issuer
}

// TotalSupply returns the current total token supply.
func (l *Ledger) TotalSupply() models.Amount {
	return l.totalSupply
}

// BalanceOf returns the spendable balance of an account, zero if the
// account has never been credited.
func (l *Ledger) BalanceOf(account models.AccountID) models.Amount {
	return l.balances[account]
}

// Allowance returns what spender may still draw from owner's reserved
// funds, zero if nothing was approved.
func (l *Ledger) Allowance(owner, spender models.AccountID) models.Amount {
	return l.allowances[models.AllowanceKey{Owner: owner, Spender: spender}]
}

// Transfer moves value from the caller's balance to the recipient's.
func (l *Ledger) Transfer(caller, to models.AccountID, value *models.Amount) error {
	fromBalance := l.balances[caller]
	if fromBalance.Lt(value) {
		return ErrInsufficientBalance
	}

	err := l.publish(events.TopicTransfer, events.Transfer{
		Meta:  newMeta(),
		From:  caller.String(),
		To:    to.String(),
		Value: value.Dec(),
	})
	if err != nil {
		return err
	}

	l.balances[caller] = models.SubAmount(&fromBalance, value)
	toBalance := l.balances[to]
	l.balances[to] = models.AddAmount(&toBalance, value)
	return nil
}

// Approve debits value from the caller's balance into the (caller, spender)
// allowance. Calling it again adds to whatever allowance is already there.
func (l *Ledger) Approve(caller, spender models.AccountID, value *models.Amount) error {
	ownerBalance := l.balances[caller]
	if ownerBalance.Lt(value) {
		return ErrInsufficientBalance
	}

	err := l.publish(events.TopicApproval, events.Approval{
		Meta:    newMeta(),
		Owner:   caller.String(),
		Spender: spender.String(),
		Value:   value.Dec(),
	})
	if err != nil {
		return err
	}

	key := models.AllowanceKey{Owner: caller, Spender: spender}
	l.balances[caller] = models.SubAmount(&ownerBalance, value)
	allowance := l.allowances[key]
	l.allowances[key] = models.AddAmount(&allowance, value)
	return nil
}

// TransferFrom pays value to the recipient out of the allowance that owner
// has reserved for the caller. The owner's balance is not touched; the
// funds already left it when the allowance was approved.
func (l *Ledger) TransferFrom(caller, owner, to models.AccountID, value *models.Amount) error {
	key := models.AllowanceKey{Owner: owner, Spender: caller}
	allowance := l.allowances[key]
	if allowance.Lt(value) {
		return ErrInsufficientAllowance
	}

	err := l.publish(events.TopicTransferFrom, events.TransferFrom{
		Meta:  newMeta(),
		From:  caller.String(),
		Owner: owner.String(),
		To:    to.String(),
		Value: value.Dec(),
	})
	if err != nil {
		return err
	}

	l.allowances[key] = models.SubAmount(&allowance, value)
	toBalance := l.balances[to]
	l.balances[to] = models.AddAmount(&toBalance, value)
	return nil
}

// Burn destroys value out of the caller's balance, shrinking total supply.
func (l *Ledger) Burn(caller models.AccountID, value *models.Amount) error {
	fromBalance := l.balances[caller]
	if fromBalance.Lt(value) {
		return ErrInsufficientBalance
	}

	err := l.publish(events.TopicBurn, events.Burn{
		Meta:  newMeta(),
		From:  caller.String(),
		Value: value.Dec(),
	})
	if err != nil {
		return err
	}

	l.balances[caller] = models.SubAmount(&fromBalance, value)
	l.totalSupply = models.SubAmount(&l.totalSupply, value)
	return nil
}

// Issue mints value to the caller's balance, growing total supply. Only the
// issuer may call it.
func (l *Ledger) Issue(caller models.AccountID, value *models.Amount) error {
	if caller != l.issuer {
		return ErrNotIssuer
	}

	err := l.publish(events.TopicIssue, events.Issue{
		Meta:   newMeta(),
		Issuer: caller.String(),
		Value:  value.Dec(),
	})
	if err != nil {
		return err
	}

	balance := l.balances[caller]
	l.balances[caller] = models.AddAmount(&balance, value)
	l.totalSupply = models.AddAmount(&l.totalSupply, value)
	return nil
}

// Snapshot returns a deep copy of the ledger state for persistence.
func (l *Ledger) Snapshot() models.Snapshot {
	return models.Snapshot{
		Issuer:      l.issuer,
		TotalSupply: l.totalSupply,
		Balances:    l.balances,
		Allowances:  l.allowances,
	}.Clone()
}

// publish hands the event to the sink. Operations call it after their
// precondition check but before touching any state: the mutation cannot
// fail once the precondition holds, so a sink error leaves the ledger
// exactly as it was.
func (l *Ledger) publish(topic string, event any) error {
	if err := l.events.Publish(topic, event); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func newMeta() events.Meta {
	return events.Meta{
		EventID:    uuid.New().String(),
		OccurredAt: time.Now().UTC(),
	}
}
