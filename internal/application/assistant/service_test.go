package assistant_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmam/logmam-api/internal/application/assistant"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/application/ports"
	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/pkg/logger"
)

// scriptedLLM devolve respostas pré-programadas em sequência e grava as
// requisições recebidas.
type scriptedLLM struct {
	replies  []*ports.ChatReply
	requests []ports.ChatRequest
}

func (f *scriptedLLM) Chat(_ context.Context, req ports.ChatRequest) (*ports.ChatReply, error) {
	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return &ports.ChatReply{Text: "ok"}, nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *scriptedLLM) GenerateText(_ context.Context, prompt string) (string, error) {
	return "texto criativo sobre " + prompt, nil
}

type memStore struct{ blobs map[string][]byte }

func (m *memStore) Load(_ context.Context, key string, dest any) error {
	if raw, ok := m.blobs[key]; ok {
		return json.Unmarshal(raw, dest)
	}
	return nil
}

func (m *memStore) Save(_ context.Context, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	m.blobs[key] = raw
	return nil
}

var admin = mutation.Actor{UserID: "u1", Name: "Eduardo"}

func newFixture(t *testing.T, llm *scriptedLLM) (*assistant.Service, *mutation.Service) {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	muts := mutation.NewService(context.Background(), &memStore{blobs: map[string][]byte{}}, log)
	return assistant.NewService(muts, llm, log), muts
}

func TestChat_CriaMovimentacaoStretch(t *testing.T) {
	llm := &scriptedLLM{replies: []*ports.ChatReply{
		{Calls: []ports.FunctionCall{{
			Name: "createStretchFilmMovement",
			Args: map[string]any{"operation": "ENTRADA", "quantity": float64(150), "invoice": "NF-10"},
		}}},
		{Text: "Pronto! Registrei a entrada de 150 kg."},
	}}
	svc, muts := newFixture(t, llm)

	ans, err := svc.Chat(context.Background(), admin, "registra entrada de 150 kg, nota 10")
	require.NoError(t, err)
	assert.Equal(t, "Pronto! Registrei a entrada de 150 kg.", ans.Reply)
	require.Len(t, ans.Actions, 1)

	list := muts.Transactions()
	require.Len(t, list, 1)
	assert.Equal(t, entity.OperationEntrada, list[0].Operation)
	assert.Equal(t, "150", list[0].Input.String())
	assert.Equal(t, "Verônica AI", list[0].Conferente)

	// A segunda rodada leva o resultado da ferramenta de volta ao modelo.
	require.Len(t, llm.requests, 2)
	second := llm.requests[1].Messages
	require.Len(t, second, 3)
	assert.NotNil(t, second[1].Call)
	assert.NotNil(t, second[2].Response)
}

func TestChat_ApagaPorNotaFiscal(t *testing.T) {
	llm := &scriptedLLM{replies: []*ports.ChatReply{
		{Calls: []ports.FunctionCall{{
			Name: "deleteStretchFilmMovement",
			Args: map[string]any{"invoice": "NF-10"},
		}}},
		{Text: "Apagado."},
	}}
	svc, muts := newFixture(t, llm)

	seed := entity.Transaction{Date: "2025-01-01", Operation: entity.OperationEntrada, Invoice: "NF-10"}
	_, _, err := muts.CreateTransaction(context.Background(), admin, seed)
	require.NoError(t, err)

	ans, err := svc.Chat(context.Background(), admin, "apaga a nota 10")
	require.NoError(t, err)
	assert.Equal(t, "Apagado.", ans.Reply)
	assert.Empty(t, muts.Transactions())
}

func TestChat_PaleteSemQuantidadeNaoRegistra(t *testing.T) {
	llm := &scriptedLLM{replies: []*ports.ChatReply{
		{Calls: []ports.FunctionCall{{
			Name: "createPalletMovement",
			Args: map[string]any{"operation": "SAÍDA"},
		}}},
		{Text: "Preciso das quantidades."},
	}}
	svc, muts := newFixture(t, llm)

	ans, err := svc.Chat(context.Background(), admin, "registra saída de paletes")
	require.NoError(t, err)
	require.Len(t, ans.Actions, 1)
	assert.Contains(t, ans.Actions[0], "Nenhuma quantidade de palete")
	assert.Empty(t, muts.Pallets())
}

func TestChat_ConvidadoBloqueado(t *testing.T) {
	svc, _ := newFixture(t, &scriptedLLM{})

	_, err := svc.Chat(context.Background(), mutation.Actor{UserID: "guest", Guest: true}, "oi")
	assert.ErrorIs(t, err, domain.ErrGuestReadOnly)
}

func TestChat_TextoCriativo(t *testing.T) {
	llm := &scriptedLLM{replies: []*ports.ChatReply{
		{Calls: []ports.FunctionCall{{
			Name: "generateCreativeText",
			Args: map[string]any{"prompt": "logística", "type": "poema"},
		}}},
		{Text: "Aqui está seu poema."},
	}}
	svc, _ := newFixture(t, llm)

	ans, err := svc.Chat(context.Background(), admin, "faz um poema sobre logística")
	require.NoError(t, err)
	require.Len(t, ans.Actions, 1)
	assert.Contains(t, ans.Actions[0], "texto criativo sobre")
}

func TestChat_AdicionaEApagaUsuario(t *testing.T) {
	llm := &scriptedLLM{replies: []*ports.ChatReply{
		{Calls: []ports.FunctionCall{{
			Name: "addUser",
			Args: map[string]any{"name": "Maria", "role": "Operador", "password": "seg123"},
		}}},
		{Calls: []ports.FunctionCall{{
			Name: "addUser",
			Args: map[string]any{"name": "José", "role": "Operador", "password": "seg456"},
		}}},
		{Calls: []ports.FunctionCall{{
			Name: "deleteUser",
			Args: map[string]any{"userName": "maria"},
		}}},
		{Text: "Feito."},
	}}
	svc, muts := newFixture(t, llm)

	ans, err := svc.Chat(context.Background(), admin, "cadastra a Maria e o José, depois remove a Maria")
	require.NoError(t, err)
	assert.Equal(t, "Feito.", ans.Reply)

	users := muts.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "José", users[0].Name)
}
