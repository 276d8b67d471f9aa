package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/events/logging"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/storage/postgres"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/token"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := context.Background()

	store, err := buildStore(ctx, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("storage setup failed")
	}

	var publisher interfaces.EventPublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		kafkaPublisher := kafka.NewPublisher(strings.Split(brokers, ","), logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		publisher = logging.NewPublisher(logger)
	}

	ledgerService, err := bootstrapLedger(ctx, store, publisher)
	if err != nil {
		logger.Fatal().Err(err).Msg("ledger bootstrap failed")
	}

	addr := os.Getenv("LEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Info().Str("addr", addr).Str("issuer", ledgerService.Issuer().String()).Msg("starting server")
	if err := http.ListenAndServe(addr, newServer(ledgerService, store, logger)); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func buildStore(ctx context.Context, logger zerolog.Logger) (interfaces.LedgerStore, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory storage")
		return memory.NewMemoryLedgerStore(), nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := postgres.NewPostgresLedgerStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// bootstrapLedger restores the persisted ledger, or creates a fresh one
// from LEDGER_ISSUER and LEDGER_INITIAL_SUPPLY on first run.
func bootstrapLedger(ctx context.Context, store interfaces.LedgerStore, publisher interfaces.EventPublisher) (*token.Ledger, error) {
	snapshot, ok, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return token.Restore(snapshot, publisher), nil
	}

	issuer, err := models.ParseAccountID(os.Getenv("LEDGER_ISSUER"))
	if err != nil {
		return nil, err
	}
	supplyEnv := os.Getenv("LEDGER_INITIAL_SUPPLY")
	if supplyEnv == "" {
		supplyEnv = "0"
	}
	supply, err := models.ParseAmount(supplyEnv)
	if err != nil {
		return nil, err
	}

	ledgerService, err := token.New(supply, issuer, publisher)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, ledgerService.Snapshot()); err != nil {
		return nil, err
	}
	return ledgerService, nil
}
