package auth_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/logmam/logmam-api/internal/application/auth"
	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/filter"
	"github.com/logmam/logmam-api/internal/domain/view"
	"github.com/logmam/logmam-api/pkg/config"
	"github.com/logmam/logmam-api/pkg/jwt"
)

type fakeUsers struct{ users []entity.User }

func (f fakeUsers) FindUserByName(name string) (entity.User, bool) {
	for _, u := range f.users {
		if strings.EqualFold(u.Name, name) {
			return u, true
		}
	}
	return entity.User{}, false
}

func newService(users ...entity.User) *auth.Service {
	return auth.NewService(
		fakeUsers{users: users},
		config.JWTConfig{Secret: "segredo-de-teste", Expiration: 60, Issuer: "logmam-api"},
		config.ShareConfig{Token: "logmam-transport-view-only-access-2024"},
		"http://localhost:8080",
	)
}

func eduardo(t *testing.T) entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("log123"), bcrypt.MinCost)
	require.NoError(t, err)
	return entity.User{ID: "u1", Name: "Eduardo", Role: "Admin", PasswordHash: string(hash)}
}

func TestLogin(t *testing.T) {
	s := newService(eduardo(t))

	sess, err := s.Login("eduardo", "log123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "Eduardo", sess.User.Name)
	// O hash nunca sai na resposta.
	assert.Empty(t, sess.User.PasswordHash)

	claims, err := jwt.Parse("segredo-de-teste", sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.False(t, claims.Guest)
}

// Usuário inexistente e senha errada são indistinguíveis para o cliente.
func TestLogin_Recusas(t *testing.T) {
	s := newService(eduardo(t))

	_, err := s.Login("Eduardo", "errada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.Login("Ninguem", "log123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEnterShare(t *testing.T) {
	s := newService()

	entry, err := s.EnterShare("logmam-transport-view-only-access-2024", view.History,
		filter.TransactionFilters{StartDate: "2025-01-01", Conferente: "BRENDON"},
		filter.PalletFilters{})
	require.NoError(t, err)
	assert.Equal(t, entity.GuestUserID, entry.User.ID)

	claims, err := jwt.Parse("segredo-de-teste", entry.Token)
	require.NoError(t, err)
	assert.True(t, claims.Guest)

	// A tela e os filtros do link voltam semeados; a enumeração vazia
	// normaliza para o curinga.
	assert.Equal(t, view.History, entry.View)
	assert.Equal(t, "2025-01-01", entry.Transactions.StartDate)
	assert.Equal(t, "BRENDON", entry.Transactions.Conferente)
	assert.Equal(t, filter.All, entry.Transactions.Operation)
	assert.True(t, entry.Pallets.IsZero())

	_, err = s.EnterShare("token-errado", view.History, filter.TransactionFilters{}, filter.PalletFilters{})
	assert.ErrorIs(t, err, domain.ErrInvalidShare)
}

func TestEnterShare_Telas(t *testing.T) {
	s := newService()

	// Tela desconhecida ou ausente cai em home, sem filtros.
	entry, err := s.EnterShare("logmam-transport-view-only-access-2024", "painelSecreto",
		filter.TransactionFilters{StartDate: "2025-01-01"}, filter.PalletFilters{Client: "MONDELEZ"})
	require.NoError(t, err)
	assert.Equal(t, view.Home, entry.View)
	assert.True(t, entry.Transactions.IsZero())
	assert.True(t, entry.Pallets.IsZero())

	entry, err = s.EnterShare("logmam-transport-view-only-access-2024", "",
		filter.TransactionFilters{}, filter.PalletFilters{})
	require.NoError(t, err)
	assert.Equal(t, view.Home, entry.View)

	// Histórico de paletes semeia só os filtros de paletes, com curingas.
	entry, err = s.EnterShare("logmam-transport-view-only-access-2024", view.PalletHistory,
		filter.TransactionFilters{Conferente: "BRENDON"}, filter.PalletFilters{Client: "MONDELEZ"})
	require.NoError(t, err)
	assert.Equal(t, view.PalletHistory, entry.View)
	assert.True(t, entry.Transactions.IsZero())
	assert.Equal(t, "MONDELEZ", entry.Pallets.Client)
	assert.Equal(t, filter.All, entry.Pallets.Operation)
	assert.Equal(t, filter.All, entry.Pallets.Profile)

	// Dashboards são visíveis a convidado mas não carregam filtros.
	entry, err = s.EnterShare("logmam-transport-view-only-access-2024", view.GeneralDashboard,
		filter.TransactionFilters{StartDate: "2025-01-01"}, filter.PalletFilters{})
	require.NoError(t, err)
	assert.Equal(t, view.GeneralDashboard, entry.View)
	assert.True(t, entry.Transactions.IsZero())
}

func TestBuildShareLink(t *testing.T) {
	s := newService()

	link := s.BuildShareLink(view.History, filter.TransactionFilters{
		StartDate: "2025-01-01",
		Operation: filter.All, // curinga não entra no link
	}, filter.PalletFilters{})
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "logmam-transport-view-only-access-2024", q.Get("share_id"))
	assert.Equal(t, view.History, q.Get("view"))
	assert.Equal(t, "2025-01-01", q.Get("startDate"))
	assert.False(t, q.Has("operation"))
	assert.False(t, q.Has("endDate"))
	assert.False(t, q.Has("conferente"))
}

func TestBuildShareLink_Paletes(t *testing.T) {
	s := newService()

	link := s.BuildShareLink(view.PalletHistory, filter.TransactionFilters{},
		filter.PalletFilters{Client: "MONDELEZ", Profile: filter.All, Operation: "SAÍDA"})
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, view.PalletHistory, q.Get("view"))
	assert.Equal(t, "MONDELEZ", q.Get("client"))
	assert.Equal(t, "SAÍDA", q.Get("operation"))
	assert.False(t, q.Has("profile"))
	assert.False(t, q.Has("conferente"))
}

// Fora das telas de histórico o link carrega só token e tela.
func TestBuildShareLink_SemFiltros(t *testing.T) {
	s := newService()

	link := s.BuildShareLink(view.GeneralDashboard,
		filter.TransactionFilters{StartDate: "2025-01-01"},
		filter.PalletFilters{Client: "MONDELEZ"})
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, view.GeneralDashboard, q.Get("view"))
	assert.False(t, q.Has("startDate"))
	assert.False(t, q.Has("client"))
}
