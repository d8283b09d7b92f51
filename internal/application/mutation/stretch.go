package mutation

import (
	"context"
	"fmt"
	"strings"

	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/ledger"
	"github.com/logmam/logmam-api/internal/domain/repository"
	"github.com/logmam/logmam-api/internal/domain/view"
)

// CreateTransaction valida e insere uma movimentação de filme stretch.
// Saldo e custo unitário do pedido são ignorados: o razão inteiro é refeito.
func (s *Service) CreateTransaction(ctx context.Context, actor Actor, t entity.Transaction) (entity.Transaction, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.Transaction{}, Result{}, err
	}
	if err := validateTransaction(t); err != nil {
		return entity.Transaction{}, Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.newID()
	s.transactions = ledger.Recompute(append(s.transactions, t))
	persisted := s.persist(ctx, repository.KeyTransactions, s.transactions)

	created, _ := findTransaction(s.transactions, t.ID)
	res := s.notify("Movimentação adicionada com sucesso!", view.History, persisted)
	return created, res, nil
}

// UpdateTransaction substitui uma movimentação existente, preservando o ID.
func (s *Service) UpdateTransaction(ctx context.Context, actor Actor, id string, t entity.Transaction) (entity.Transaction, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.Transaction{}, Result{}, err
	}
	if err := validateTransaction(t); err != nil {
		return entity.Transaction{}, Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findTransaction(s.transactions, id); !ok {
		return entity.Transaction{}, Result{}, domain.ErrNotFound
	}
	t.ID = id
	next := make([]entity.Transaction, 0, len(s.transactions))
	for _, cur := range s.transactions {
		if cur.ID == id {
			next = append(next, t)
		} else {
			next = append(next, cur)
		}
	}
	s.transactions = ledger.Recompute(next)
	persisted := s.persist(ctx, repository.KeyTransactions, s.transactions)

	updated, _ := findTransaction(s.transactions, id)
	res := s.notify("Movimentação atualizada com sucesso!", view.History, persisted)
	return updated, res, nil
}

// DeleteTransaction remove uma movimentação. Exige confirmação explícita.
func (s *Service) DeleteTransaction(ctx context.Context, actor Actor, id string, confirm bool) (Result, error) {
	if err := s.guard(actor, true, confirm); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findTransaction(s.transactions, id); !ok {
		return Result{}, domain.ErrNotFound
	}
	next := make([]entity.Transaction, 0, len(s.transactions)-1)
	for _, cur := range s.transactions {
		if cur.ID != id {
			next = append(next, cur)
		}
	}
	s.transactions = ledger.Recompute(next)
	persisted := s.persist(ctx, repository.KeyTransactions, s.transactions)

	return s.notify("Movimentação excluída.", view.History, persisted), nil
}

// ClearTransactions apaga o razão inteiro. Exige confirmação explícita.
func (s *Service) ClearTransactions(ctx context.Context, actor Actor, confirm bool) (Result, error) {
	if err := s.guard(actor, true, confirm); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = []entity.Transaction{}
	persisted := s.persist(ctx, repository.KeyTransactions, s.transactions)

	return s.notify("Todos os dados de filme stretch foram apagados.", view.History, persisted), nil
}

// FindTransactionByRef localiza uma movimentação por nota fiscal ou por
// data+operação (resolução usada pelo assistente para exclusões).
func (s *Service) FindTransactionByRef(invoice, date, operation string) (entity.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if invoice != "" {
		for _, t := range s.transactions {
			if strings.EqualFold(t.Invoice, invoice) {
				return t, true
			}
		}
	}
	if date != "" && operation != "" {
		for _, t := range s.transactions {
			if t.Date == date && t.Operation == operation {
				return t, true
			}
		}
	}
	return entity.Transaction{}, false
}

func validateTransaction(t entity.Transaction) error {
	if t.Date == "" {
		return fmt.Errorf("%w: data obrigatória", domain.ErrInvalidInput)
	}
	if !entity.ValidOperation(t.Operation) {
		return fmt.Errorf("%w: operação desconhecida %q", domain.ErrInvalidInput, t.Operation)
	}
	// AJUSTE é a única operação com quantidade assinada.
	if t.Operation != entity.OperationAjuste && t.Input.IsNegative() {
		return fmt.Errorf("%w: entrada negativa", domain.ErrInvalidInput)
	}
	if t.Output.IsNegative() {
		return fmt.Errorf("%w: saída negativa", domain.ErrInvalidInput)
	}
	if t.Value.IsNegative() {
		return fmt.Errorf("%w: valor negativo", domain.ErrInvalidInput)
	}
	return nil
}

func findTransaction(list []entity.Transaction, id string) (entity.Transaction, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return entity.Transaction{}, false
}
