// Carga inicial do Record Store: dataset de outubro/2025 usado na primeira
// implantação, com saldos e custos recalculados antes da gravação.
package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/ledger"
	"github.com/logmam/logmam-api/internal/domain/repository"
	"github.com/logmam/logmam-api/internal/infrastructure/jsonstore"
	"github.com/logmam/logmam-api/internal/infrastructure/postgres"
	"github.com/logmam/logmam-api/pkg/config"
	"github.com/logmam/logmam-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()

	var store repository.CollectionStore
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
		}
		defer pool.Close()
		store, err = postgres.NewStore(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar tabela de coleções")
		}
	default:
		fileStore, err := jsonstore.New(cfg.Store.FilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir arquivo de dados")
		}
		store = fileStore
	}

	transactions := ledger.Recompute(seedTransactions())

	seedCollection(ctx, log, store, repository.KeyTransactions, "movimentações de filme stretch",
		transactions, func() bool {
			var existing []entity.Transaction
			_ = store.Load(ctx, repository.KeyTransactions, &existing)
			return len(existing) > 0
		})
	seedCollection(ctx, log, store, repository.KeyPalletTransactions, "movimentações de paletes",
		[]entity.PalletTransaction{}, func() bool {
			var existing []entity.PalletTransaction
			_ = store.Load(ctx, repository.KeyPalletTransactions, &existing)
			return len(existing) > 0
		})
	seedCollection(ctx, log, store, repository.KeyOcorrencias, "ocorrências",
		seedOcorrencias(), func() bool {
			var existing []entity.Ocorrencia
			_ = store.Load(ctx, repository.KeyOcorrencias, &existing)
			return len(existing) > 0
		})
	seedCollection(ctx, log, store, repository.KeyUsers, "usuários",
		seedUsers(log), func() bool {
			var existing []entity.User
			_ = store.Load(ctx, repository.KeyUsers, &existing)
			return len(existing) > 0
		})

	log.Info().
		Int("transactions", len(transactions)).
		Str("store", cfg.Store.Driver).
		Msg("carga inicial concluída")
}

// seedCollection grava a coleção apenas se o store ainda não tiver dados nela.
func seedCollection(ctx context.Context, log *logger.Logger, store repository.CollectionStore, key, label string, data any, hasData func() bool) {
	if hasData() {
		log.Info().Str("collection", key).Msg("coleção já possui dados, pulando")
		return
	}
	if err := store.Save(ctx, key, data); err != nil {
		log.Fatal().Err(err).Msg("gravar " + label)
	}
	log.Info().Str("collection", key).Msg("coleção gravada")
}

func seedTransactions() []entity.Transaction {
	type row struct {
		date, invoice, operation, conferente, obs string
		input, output, value                      int64
	}
	rows := []row{
		{date: "2025-10-22", input: 30, invoice: "25459", value: 1920, operation: entity.OperationEntrada, conferente: "EDUARDO"},
		{date: "2025-10-22", output: 6, operation: entity.OperationSaida, conferente: "ALEX", obs: "PAGAMENTO - TP"},
		{date: "2025-10-22", output: 1, operation: entity.OperationDevolucao, conferente: "CRISTIANO", obs: "DEVOLUÇÃO VIANA 37#. 4 PALETES RETRABALHANDOS DEVOLUÇÃO VIANA"},
		{date: "2025-10-22", output: 1, operation: entity.OperationDevolucao, conferente: "CRISTIANO", obs: "DEVOLUÇÃO VIANA 37#. 15 PALETES RETRABALHANDOS DEVOLUÇÃO VIANA"},
		{date: "2025-10-22", output: 1, operation: entity.OperationDevolucao, conferente: "CRISTIANO", obs: "DEVOLUÇÃO VIANA 37#. 9 PALETES RETRABALHANDOS DEVOLUÇÃO VIANA"},
		{date: "2025-10-22", output: 1, operation: entity.OperationSaida, conferente: "LEONARDO", obs: "Cliente: MONDELEZ"},
		{date: "2025-10-23", output: 1, operation: entity.OperationSaida, conferente: "CRISTIANO", obs: "Cliente: MONDELEZ"},
		{date: "2025-10-23", output: 1, operation: entity.OperationSaida, conferente: "ISAQUE", obs: "Cliente: MONDELEZ"},
		{date: "2025-10-24", output: 1, operation: entity.OperationSaida, conferente: "CRISTIANO", obs: "Cliente: MONDELEZ"},
		{date: "2025-10-24", output: 1, operation: entity.OperationSaida, conferente: "JEFFERSON", obs: "Cliente: MONDELEZ"},
		{date: "2025-10-25", output: 1, operation: entity.OperationSaida, conferente: "CRISTIANO", obs: "Cliente: JOHNSON"},
		{date: "2025-10-25", output: 1, operation: entity.OperationSaida, conferente: "JEFFERSON", obs: "Cliente: MONDELEZ. 20 PALETES RETRABALHADO PARA DEVOLUÇÃO 37#"},
		{date: "2025-10-27", output: 1, operation: entity.OperationSaida, conferente: "CRISTIANO", obs: "Cliente: MONDELEZ"},
		{date: "2025-10-27", output: 1, operation: entity.OperationSaida, conferente: "LUIZ", obs: "Cliente: JOHNSON. 01 PALETES RETRABALHADO PARA DEVOLUÇÃO 37#"},
		{date: "2025-10-28", output: 1, operation: entity.OperationSaida, conferente: "CRISTIANO", obs: "Cliente: JOHNSON"},
	}

	out := make([]entity.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.Transaction{
			ID:           uuid.NewString(),
			Date:         r.date,
			Input:        decimal.NewFromInt(r.input),
			Output:       decimal.NewFromInt(r.output),
			Invoice:      r.invoice,
			Value:        decimal.NewFromInt(r.value),
			Operation:    r.operation,
			Conferente:   r.conferente,
			Observations: r.obs,
		})
	}
	return out
}

func seedOcorrencias() []entity.Ocorrencia {
	return []entity.Ocorrencia{
		{
			ID:                uuid.NewString(),
			Date:              "2025-10-29",
			Plate:             "RST-4E55",
			Driver:            "JOÃO SILVA",
			Client:            "MONDELEZ",
			CTE:               []string{"987456"},
			Invoice:           []string{"458722"},
			DevolutionInvoice: []string{"145872"},
			Quantity:          decimal.NewFromInt(24),
			VolumeType:        "CX",
			MonitoringReason:  "AVARIA DETECTADA NA ROTA",
			WarehouseReason:   "EMBALAGEM VIOLADA",
			WarehouseAnalysis: "CONFERIDO PARCIAL",
			Receiver:          "LUCAS",
			Responsibility:    "TRANSPORTADORA",
			Operation:         entity.OcorrenciaOpDevolucao,
			Status:            entity.OcorrenciaStatusConcluida,
			Photos:            []string{},
		},
		{
			ID:                uuid.NewString(),
			Date:              "2025-10-29",
			Plate:             "RFE-7T32",
			Driver:            "MARCOS ALVES",
			Client:            "SC JOHNSON",
			CTE:               []string{"995421"},
			Invoice:           []string{"456331"},
			DevolutionInvoice: []string{},
			Quantity:          decimal.NewFromInt(18),
			VolumeType:        "CX",
			MonitoringReason:  "DIVERGÊNCIA DE QUANTIDADE",
			WarehouseReason:   "QUANTIDADE MENOR",
			WarehouseAnalysis: "AJUSTE EFETUADO",
			Receiver:          "ANA",
			Responsibility:    "ARMAZÉM",
			Operation:         entity.OcorrenciaOpEntrega,
			Status:            entity.OcorrenciaStatusAberta,
			Photos:            []string{},
		},
	}
}

func seedUsers(log *logger.Logger) []entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("30732090"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("gerar hash de senha")
	}
	return []entity.User{
		{
			ID:             uuid.NewString(),
			Name:           "Eduardo",
			Role:           "Admin",
			PasswordHash:   string(hash),
			ProfilePicture: "https://i.pravatar.cc/40?u=eduardo",
		},
	}
}
