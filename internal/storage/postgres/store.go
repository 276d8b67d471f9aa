package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// PostgresLedgerStore persists ledger snapshots in three tables: a
// single-row meta table (issuer, total supply) plus one row per balance and
// per allowance. Amounts are stored as NUMERIC, wide enough for 256-bit
// values.
type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

// EnsureSchema creates the ledger tables if they do not exist yet.
func (p *PostgresLedgerStore) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS ledger_meta (
		id           int PRIMARY KEY CHECK (id = 1),
		issuer       text NOT NULL,
		total_supply numeric NOT NULL
	);
	CREATE TABLE IF NOT EXISTS ledger_balances (
		account text PRIMARY KEY,
		amount  numeric NOT NULL
	);
	CREATE TABLE IF NOT EXISTS ledger_allowances (
		owner   text NOT NULL,
		spender text NOT NULL,
		amount  numeric NOT NULL,
		PRIMARY KEY (owner, spender)
	)`

	_, err := p.db.ExecContext(ctx, schema)
	return err
}

// Save writes the whole snapshot in one SQL transaction, so a failure
// leaves the previously stored state untouched.
func (p *PostgresLedgerStore) Save(ctx context.Context, snapshot models.Snapshot) error {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	const metaQuery = `INSERT INTO ledger_meta (id, issuer, total_supply) VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE SET issuer = $1, total_supply = $2`

	_, err = dbTx.ExecContext(ctx, metaQuery, snapshot.Issuer.String(), amountToNumeric(snapshot.TotalSupply))
	if err != nil {
		return err
	}

	if _, err = dbTx.ExecContext(ctx, `DELETE FROM ledger_balances`); err != nil {
		return err
	}
	const balanceQuery = `INSERT INTO ledger_balances (account, amount) VALUES ($1, $2)`
	for account, amount := range snapshot.Balances {
		if _, err = dbTx.ExecContext(ctx, balanceQuery, account.String(), amountToNumeric(amount)); err != nil {
			return err
		}
	}

	if _, err = dbTx.ExecContext(ctx, `DELETE FROM ledger_allowances`); err != nil {
		return err
	}
	const allowanceQuery = `INSERT INTO ledger_allowances (owner, spender, amount) VALUES ($1, $2, $3)`
	for key, amount := range snapshot.Allowances {
		if _, err = dbTx.ExecContext(ctx, allowanceQuery, key.Owner.String(), key.Spender.String(), amountToNumeric(amount)); err != nil {
			return err
		}
	}

	return dbTx.Commit()
}

// Load reads the stored snapshot. ok=false means the ledger was never
// saved, which tells the host to bootstrap a fresh one.
func (p *PostgresLedgerStore) Load(ctx context.Context) (models.Snapshot, bool, error) {
	snapshot := models.Snapshot{
		Balances:   make(map[models.AccountID]models.Amount),
		Allowances: make(map[models.AllowanceKey]models.Amount),
	}

	const metaQuery = `SELECT issuer, total_supply FROM ledger_meta WHERE id = 1`

	var issuer string
	var supply decimal.Decimal
	err := p.db.QueryRowContext(ctx, metaQuery).Scan(&issuer, &supply)
	if err == sql.ErrNoRows {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, err
	}

	if snapshot.Issuer, err = models.ParseAccountID(issuer); err != nil {
		return models.Snapshot{}, false, err
	}
	if snapshot.TotalSupply, err = numericToAmount(supply); err != nil {
		return models.Snapshot{}, false, err
	}

	const balanceQuery = `SELECT account, amount FROM ledger_balances`

	rows, err := p.db.QueryContext(ctx, balanceQuery)
	if err != nil {
		return models.Snapshot{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var acct string
		var amt decimal.Decimal
		if err := rows.Scan(&acct, &amt); err != nil {
			return models.Snapshot{}, false, err
		}
		account, err := models.ParseAccountID(acct)
		if err != nil {
			return models.Snapshot{}, false, err
		}
		amount, err := numericToAmount(amt)
		if err != nil {
			return models.Snapshot{}, false, err
		}
		snapshot.Balances[account] = amount
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, false, err
	}

	const allowanceQuery = `SELECT owner, spender, amount FROM ledger_allowances`

	allowRows, err := p.db.QueryContext(ctx, allowanceQuery)
	if err != nil {
		return models.Snapshot{}, false, err
	}
	defer allowRows.Close()

	for allowRows.Next() {
		var owner, spender string
		var amt decimal.Decimal
		if err := allowRows.Scan(&owner, &spender, &amt); err != nil {
			return models.Snapshot{}, false, err
		}
		key := models.AllowanceKey{}
		if key.Owner, err = models.ParseAccountID(owner); err != nil {
			return models.Snapshot{}, false, err
		}
		if key.Spender, err = models.ParseAccountID(spender); err != nil {
			return models.Snapshot{}, false, err
		}
		amount, err := numericToAmount(amt)
		if err != nil {
			return models.Snapshot{}, false, err
		}
		snapshot.Allowances[key] = amount
	}
	if err := allowRows.Err(); err != nil {
		return models.Snapshot{}, false, err
	}

	return snapshot, true, nil
}

// amountToNumeric converts a ledger amount into a decimal for a NUMERIC
// column.
func amountToNumeric(a models.Amount) decimal.Decimal {
	return decimal.NewFromBigInt(a.ToBig(), 0)
}

// numericToAmount converts a NUMERIC column value back into an amount.
// Negative or fractional values mean the table was tampered with.
func numericToAmount(d decimal.Decimal) (models.Amount, error) {
	if d.IsNegative() || !d.IsInteger() {
		return models.Amount{}, fmt.Errorf("invalid stored amount %s", d)
	}
	v, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return models.Amount{}, fmt.Errorf("stored amount %s exceeds 256 bits", d)
	}
	return *v, nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
