// Package auth cobre login por nome de usuário e o modo de visualização por
// link de compartilhamento (sessão de convidado somente leitura).
package auth

import (
	"crypto/subtle"
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"

	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/filter"
	"github.com/logmam/logmam-api/internal/domain/view"
	"github.com/logmam/logmam-api/pkg/config"
	"github.com/logmam/logmam-api/pkg/jwt"
)

// UserFinder resolve contas por nome (implementado pelo serviço de mutação).
type UserFinder interface {
	FindUserByName(name string) (entity.User, bool)
}

// Session resultado de uma autenticação bem-sucedida.
type Session struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// Service casos de uso de autenticação e compartilhamento.
type Service struct {
	users UserFinder
	jwt   config.JWTConfig
	share config.ShareConfig
	base  string // URL pública para montagem de links
}

// NewService constrói o serviço de autenticação.
func NewService(users UserFinder, jwtCfg config.JWTConfig, shareCfg config.ShareConfig, baseURL string) *Service {
	return &Service{users: users, jwt: jwtCfg, share: shareCfg, base: baseURL}
}

// Login autentica por nome (case-insensitive) e senha. Nome inexistente e
// senha errada devolvem o mesmo erro, sem distinguir os casos.
func (s *Service) Login(name, password string) (Session, error) {
	u, ok := s.users.FindUserByName(name)
	if !ok {
		// Custo de bcrypt mesmo sem usuário, para não vazar existência por timing.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4TKh7vPvG5uW3PHVmQ7p9mUq9yW"), []byte(password))
		return Session{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(s.jwt.Secret, u.ID, u.Name, u.Role, false, s.jwt.Issuer, s.jwt.Expiration)
	if err != nil {
		return Session{}, fmt.Errorf("gerar token: %w", err)
	}
	u.PasswordHash = ""
	return Session{Token: token, User: u}, nil
}

// BuildShareLink monta a URL de visualização de uma tela com os filtros
// ativos. O link carrega o token estático de compartilhamento e a tela de
// destino; filtros só entram nas duas telas de histórico, e apenas quando não
// vazios e diferentes de "ALL".
func (s *Service) BuildShareLink(viewName string, tf filter.TransactionFilters, pf filter.PalletFilters) string {
	q := url.Values{}
	q.Set("share_id", s.share.Token)
	q.Set("view", viewName)
	switch viewName {
	case view.History:
		setIfActive(q, "startDate", tf.StartDate)
		setIfActive(q, "endDate", tf.EndDate)
		setIfActive(q, "operation", tf.Operation)
		setIfActive(q, "conferente", tf.Conferente)
	case view.PalletHistory:
		setIfActive(q, "startDate", pf.StartDate)
		setIfActive(q, "endDate", pf.EndDate)
		setIfActive(q, "operation", pf.Operation)
		setIfActive(q, "client", pf.Client)
		setIfActive(q, "profile", pf.Profile)
	}
	return s.base + "/?" + q.Encode()
}

// ShareEntry sessão de convidado aberta por link, com a tela e os filtros
// semeados pelos parâmetros do próprio link.
type ShareEntry struct {
	Token        string                    `json:"token"`
	User         entity.User               `json:"user"`
	View         string                    `json:"view"`
	Transactions filter.TransactionFilters `json:"transactionFilters"`
	Pallets      filter.PalletFilters      `json:"palletFilters"`
}

// EnterShare valida o token estático (comparação em tempo constante) e abre
// uma sessão de convidado, ecoando a tela e os filtros do link. Tela
// desconhecida, ausente ou fora do conjunto visível a convidados cai em home;
// os filtros só são semeados na tela de histórico correspondente, com as
// enumerações vazias normalizadas para "ALL".
func (s *Service) EnterShare(shareToken, viewName string, tf filter.TransactionFilters, pf filter.PalletFilters) (ShareEntry, error) {
	if subtle.ConstantTimeCompare([]byte(shareToken), []byte(s.share.Token)) != 1 {
		return ShareEntry{}, domain.ErrInvalidShare
	}

	if !view.GuestVisible(viewName) {
		viewName = view.Home
	}
	switch viewName {
	case view.History:
		pf = filter.PalletFilters{}
		if tf.Operation == "" {
			tf.Operation = filter.All
		}
	case view.PalletHistory:
		tf = filter.TransactionFilters{}
		if pf.Operation == "" {
			pf.Operation = filter.All
		}
		if pf.Profile == "" {
			pf.Profile = filter.All
		}
	default:
		tf = filter.TransactionFilters{}
		pf = filter.PalletFilters{}
	}

	g := entity.GuestUser()
	token, err := jwt.Generate(s.jwt.Secret, g.ID, g.Name, g.Role, true, s.jwt.Issuer, s.jwt.Expiration)
	if err != nil {
		return ShareEntry{}, fmt.Errorf("gerar token de convidado: %w", err)
	}
	return ShareEntry{Token: token, User: g, View: viewName, Transactions: tf, Pallets: pf}, nil
}

func setIfActive(q url.Values, key, value string) {
	if value != "" && value != filter.All {
		q.Set(key, value)
	}
}
