package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmam/logmam-api/internal/domain/repository"
	"github.com/logmam/logmam-api/internal/infrastructure/jsonstore"
)

func TestStore_SaveELoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dados", "logmam.json")
	store, err := jsonstore.New(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, repository.KeyUsers, []string{"a", "b"}))

	var got []string
	require.NoError(t, store.Load(ctx, repository.KeyUsers, &got))
	assert.Equal(t, []string{"a", "b"}, got)
}

// Chave ausente não toca no destino: o caller fica com o default tipado.
func TestStore_ChaveAusente(t *testing.T) {
	store, err := jsonstore.New(filepath.Join(t.TempDir(), "logmam.json"))
	require.NoError(t, err)

	got := []string{"default"}
	require.NoError(t, store.Load(context.Background(), "inexistente", &got))
	assert.Equal(t, []string{"default"}, got)
}

func TestStore_BlobCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logmam.json")
	require.NoError(t, os.WriteFile(path, []byte("{nao é json"), 0o644))

	store, err := jsonstore.New(path)
	require.NoError(t, err)

	var got []string
	assert.Error(t, store.Load(context.Background(), repository.KeyUsers, &got))

	// Save sobre arquivo corrompido recomeça do zero em vez de falhar.
	require.NoError(t, store.Save(context.Background(), repository.KeyUsers, []string{"x"}))
	require.NoError(t, store.Load(context.Background(), repository.KeyUsers, &got))
	assert.Equal(t, []string{"x"}, got)
}

func TestStore_ColecoesIndependentes(t *testing.T) {
	store, err := jsonstore.New(filepath.Join(t.TempDir(), "logmam.json"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, repository.KeyTransactions, []int{1, 2}))
	require.NoError(t, store.Save(ctx, repository.KeyOcorrencias, []int{3}))

	var txs, ocs []int
	require.NoError(t, store.Load(ctx, repository.KeyTransactions, &txs))
	require.NoError(t, store.Load(ctx, repository.KeyOcorrencias, &ocs))
	assert.Equal(t, []int{1, 2}, txs)
	assert.Equal(t, []int{3}, ocs)
}
