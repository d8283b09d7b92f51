package mutation

import (
	"context"
	"fmt"
	"strings"

	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/pallet"
	"github.com/logmam/logmam-api/internal/domain/repository"
	"github.com/logmam/logmam-api/internal/domain/view"
)

// CreatePallet valida e insere uma movimentação de paletes. O rótulo de mês e
// a duração são derivados aqui, uma única vez; edições posteriores não os
// regeneram. Bônus preenchido sem identificador ganha um ID próprio.
func (s *Service) CreatePallet(ctx context.Context, actor Actor, t entity.PalletTransaction) (entity.PalletTransaction, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.PalletTransaction{}, Result{}, err
	}
	if err := validatePallet(t); err != nil {
		return entity.PalletTransaction{}, Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.newID()
	t.Month = pallet.MonthLabel(t.Date)
	t.Duration = pallet.Duration(t.StartTime, t.EndTime)
	if t.Bonus != "" && t.BonusID == "" {
		t.BonusID = s.newID()
	}
	s.pallets = append(s.pallets, t)
	persisted := s.persist(ctx, repository.KeyPalletTransactions, s.pallets)

	res := s.notify("Movimentação de paletes adicionada com sucesso!", view.PalletHistory, persisted)
	return t, res, nil
}

// UpdatePallet substitui uma movimentação existente, preservando ID, mês e
// duração originais (campos derivados apenas na criação).
func (s *Service) UpdatePallet(ctx context.Context, actor Actor, id string, t entity.PalletTransaction) (entity.PalletTransaction, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.PalletTransaction{}, Result{}, err
	}
	if err := validatePallet(t); err != nil {
		return entity.PalletTransaction{}, Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.pallets {
		if cur.ID != id {
			continue
		}
		t.ID = cur.ID
		t.Month = cur.Month
		t.Duration = cur.Duration
		s.pallets[i] = t
		persisted := s.persist(ctx, repository.KeyPalletTransactions, s.pallets)
		res := s.notify("Movimentação de paletes atualizada com sucesso!", view.PalletHistory, persisted)
		return t, res, nil
	}
	return entity.PalletTransaction{}, Result{}, domain.ErrNotFound
}

// DeletePallet remove uma movimentação de paletes. Exige confirmação.
func (s *Service) DeletePallet(ctx context.Context, actor Actor, id string, confirm bool) (Result, error) {
	if err := s.guard(actor, true, confirm); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]entity.PalletTransaction, 0, len(s.pallets))
	found := false
	for _, cur := range s.pallets {
		if cur.ID == id {
			found = true
			continue
		}
		next = append(next, cur)
	}
	if !found {
		return Result{}, domain.ErrNotFound
	}
	s.pallets = next
	persisted := s.persist(ctx, repository.KeyPalletTransactions, s.pallets)

	return s.notify("Movimentação de paletes excluída.", view.PalletHistory, persisted), nil
}

// ClearPallets apaga todas as movimentações de paletes. Exige confirmação.
func (s *Service) ClearPallets(ctx context.Context, actor Actor, confirm bool) (Result, error) {
	if err := s.guard(actor, true, confirm); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pallets = []entity.PalletTransaction{}
	persisted := s.persist(ctx, repository.KeyPalletTransactions, s.pallets)

	return s.notify("Todos os dados de paletes foram apagados.", view.PalletHistory, persisted), nil
}

// FindPalletByRef localiza uma movimentação de paletes por CTE, nota fiscal
// ou data+operação (resolução do assistente).
func (s *Service) FindPalletByRef(cte, invoice, date, operation string) (entity.PalletTransaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cte != "" {
		for _, t := range s.pallets {
			if strings.EqualFold(t.CTE, cte) {
				return t, true
			}
		}
	}
	if invoice != "" {
		for _, t := range s.pallets {
			if strings.EqualFold(t.Invoice, invoice) {
				return t, true
			}
		}
	}
	if date != "" && operation != "" {
		for _, t := range s.pallets {
			if t.Date == date && t.Operation == operation {
				return t, true
			}
		}
	}
	return entity.PalletTransaction{}, false
}

func validatePallet(t entity.PalletTransaction) error {
	if t.Date == "" {
		return fmt.Errorf("%w: data obrigatória", domain.ErrInvalidInput)
	}
	if !entity.ValidPalletOperation(t.Operation) {
		return fmt.Errorf("%w: operação desconhecida %q", domain.ErrInvalidInput, t.Operation)
	}
	if t.Profile != "" && !entity.ValidPalletProfile(t.Profile) {
		return fmt.Errorf("%w: perfil desconhecido %q", domain.ErrInvalidInput, t.Profile)
	}
	for name, v := range map[string]bool{
		"pbrInput":   t.PbrInput.IsNegative(),
		"oneWay":     t.OneWay.IsNegative(),
		"pbrBroken":  t.PbrBroken.IsNegative(),
		"chepInput":  t.ChepInput.IsNegative(),
		"chepBroken": t.ChepBroken.IsNegative(),
		"output":     t.Output.IsNegative(),
		"returned":   t.Returned.IsNegative(),
	} {
		if v {
			return fmt.Errorf("%w: %s negativo", domain.ErrInvalidInput, name)
		}
	}
	return nil
}
