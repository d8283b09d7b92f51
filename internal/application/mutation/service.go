// Package mutation concentra todas as escritas do painel. Existe um único
// Service por processo: ele é o dono das quatro coleções em memória e
// serializa as mutações com um mutex, preservando a semântica de escritor
// único do modelo de dados (coleção inteira substituída a cada operação).
//
// A persistência é explícita mas não bloqueante: a mutação vale assim que
// aplicada em memória; a falha de gravação é logada e reportada no Result
// (Persisted=false), nunca desfaz a operação.
package mutation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/ledger"
	"github.com/logmam/logmam-api/internal/domain/repository"
	"github.com/logmam/logmam-api/pkg/logger"
)

// Actor identifica quem pede a mutação. Guest vem do claim do JWT de
// compartilhamento e bloqueia qualquer escrita.
type Actor struct {
	UserID string
	Name   string
	Guest  bool
}

// Result resume o desfecho de uma mutação bem-sucedida.
type Result struct {
	// Message texto de notificação exibido ao usuário (pt-BR).
	Message string `json:"message"`
	// NextView sugestão de navegação pós-mutação (vazio mantém a tela).
	NextView string `json:"nextView,omitempty"`
	// Persisted indica se a gravação no Record Store também ocorreu.
	Persisted bool `json:"persisted"`
}

// maxNotifications tamanho do ticker de notificações recentes.
const maxNotifications = 20

// Service dono das coleções e das mutações.
type Service struct {
	mu            sync.Mutex
	transactions  []entity.Transaction // sempre em ordem cronológica (saída de Recompute)
	pallets       []entity.PalletTransaction
	ocorrencias   []entity.Ocorrencia
	users         []entity.User
	notifications []string

	store repository.CollectionStore
	log   *logger.Logger
	newID func() string
}

// NewService carrega as quatro coleções do Record Store e constrói o serviço.
// Blob corrupto é logado e substituído pelo default vazio; a inicialização
// nunca aborta por dado ruim.
func NewService(ctx context.Context, store repository.CollectionStore, log *logger.Logger) *Service {
	s := &Service{
		store: store,
		log:   log,
		newID: uuid.NewString,
	}

	load := func(key string, dest any) {
		if err := store.Load(ctx, key, dest); err != nil {
			log.Warn().Err(err).Str("colecao", key).Msg("coleção ilegível, usando default vazio")
		}
	}
	load(repository.KeyTransactions, &s.transactions)
	load(repository.KeyPalletTransactions, &s.pallets)
	load(repository.KeyOcorrencias, &s.ocorrencias)
	load(repository.KeyUsers, &s.users)

	// Saldos e custos gravados são descartáveis: o razão é refeito na carga.
	s.transactions = ledger.Recompute(s.transactions)
	return s
}

// persist grava a coleção indicada e devolve se a gravação valeu.
// Chamado com o mutex tomado.
func (s *Service) persist(ctx context.Context, key string, src any) bool {
	if err := s.store.Save(ctx, key, src); err != nil {
		s.log.Error().Err(err).Str("colecao", key).Msg("falha ao persistir coleção")
		return false
	}
	return true
}

// notify empilha a mensagem no ticker (mais recente primeiro) e devolve o
// Result da mutação. Chamado com o mutex tomado.
func (s *Service) notify(message, nextView string, persisted bool) Result {
	s.notifications = append([]string{message}, s.notifications...)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[:maxNotifications]
	}
	return Result{Message: message, NextView: nextView, Persisted: persisted}
}

// guard valida ator e confirmação antes de qualquer escrita.
func (s *Service) guard(actor Actor, destructive, confirm bool) error {
	if actor.Guest {
		return domain.ErrGuestReadOnly
	}
	if destructive && !confirm {
		return domain.ErrConfirmRequired
	}
	return nil
}

// Notifications devolve o ticker de notificações, mais recente primeiro.
func (s *Service) Notifications() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Transactions devolve o razão em ordem cronológica.
func (s *Service) Transactions() []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Pallets devolve as movimentações de paletes na ordem de inserção.
func (s *Service) Pallets() []entity.PalletTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.PalletTransaction, len(s.pallets))
	copy(out, s.pallets)
	return out
}

// Ocorrencias devolve as ocorrências na ordem de inserção.
func (s *Service) Ocorrencias() []entity.Ocorrencia {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Ocorrencia, len(s.ocorrencias))
	copy(out, s.ocorrencias)
	return out
}

// Users devolve as contas cadastradas.
func (s *Service) Users() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.User, len(s.users))
	copy(out, s.users)
	return out
}
