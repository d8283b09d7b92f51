package mutation

import (
	"context"
	"fmt"

	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/repository"
	"github.com/logmam/logmam-api/internal/domain/view"
)

// CreateOcorrencia valida e insere uma ocorrência. Status vazio entra ABERTA.
func (s *Service) CreateOcorrencia(ctx context.Context, actor Actor, o entity.Ocorrencia) (entity.Ocorrencia, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.Ocorrencia{}, Result{}, err
	}
	if o.Status == "" {
		o.Status = entity.OcorrenciaStatusAberta
	}
	if err := validateOcorrencia(o); err != nil {
		return entity.Ocorrencia{}, Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.newID()
	s.ocorrencias = append(s.ocorrencias, o)
	persisted := s.persist(ctx, repository.KeyOcorrencias, s.ocorrencias)

	res := s.notify("Ocorrência registrada com sucesso!", view.OcorrenciaHistory, persisted)
	return o, res, nil
}

// UpdateOcorrencia substitui uma ocorrência existente, preservando o ID.
func (s *Service) UpdateOcorrencia(ctx context.Context, actor Actor, id string, o entity.Ocorrencia) (entity.Ocorrencia, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.Ocorrencia{}, Result{}, err
	}
	if err := validateOcorrencia(o); err != nil {
		return entity.Ocorrencia{}, Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.ocorrencias {
		if cur.ID != id {
			continue
		}
		o.ID = cur.ID
		s.ocorrencias[i] = o
		persisted := s.persist(ctx, repository.KeyOcorrencias, s.ocorrencias)
		res := s.notify("Ocorrência atualizada com sucesso!", view.OcorrenciaHistory, persisted)
		return o, res, nil
	}
	return entity.Ocorrencia{}, Result{}, domain.ErrNotFound
}

// DeleteOcorrencia remove uma ocorrência. Exige confirmação.
func (s *Service) DeleteOcorrencia(ctx context.Context, actor Actor, id string, confirm bool) (Result, error) {
	if err := s.guard(actor, true, confirm); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]entity.Ocorrencia, 0, len(s.ocorrencias))
	found := false
	for _, cur := range s.ocorrencias {
		if cur.ID == id {
			found = true
			continue
		}
		next = append(next, cur)
	}
	if !found {
		return Result{}, domain.ErrNotFound
	}
	s.ocorrencias = next
	persisted := s.persist(ctx, repository.KeyOcorrencias, s.ocorrencias)

	return s.notify("Ocorrência excluída.", view.OcorrenciaHistory, persisted), nil
}

func validateOcorrencia(o entity.Ocorrencia) error {
	if o.Date == "" {
		return fmt.Errorf("%w: data obrigatória", domain.ErrInvalidInput)
	}
	if !entity.ValidOcorrenciaOperation(o.Operation) {
		return fmt.Errorf("%w: operação desconhecida %q", domain.ErrInvalidInput, o.Operation)
	}
	if !entity.ValidOcorrenciaStatus(o.Status) {
		return fmt.Errorf("%w: status desconhecido %q", domain.ErrInvalidInput, o.Status)
	}
	if o.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantidade negativa", domain.ErrInvalidInput)
	}
	for name, n := range map[string]int{
		"cte":               len(o.CTE),
		"invoice":           len(o.Invoice),
		"devolutionInvoice": len(o.DevolutionInvoice),
	} {
		if n > entity.MaxOcorrenciaDocs {
			return fmt.Errorf("%w: %s excede %d itens", domain.ErrInvalidInput, name, entity.MaxOcorrenciaDocs)
		}
	}
	if len(o.Photos) > entity.MaxOcorrenciaPhotos {
		return fmt.Errorf("%w: photos excede %d itens", domain.ErrInvalidInput, entity.MaxOcorrenciaPhotos)
	}
	return nil
}
