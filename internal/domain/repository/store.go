// Package repository define os ports de persistência do Record Store.
package repository

import "context"

// Chaves das quatro coleções persistidas (layout herdado do armazenamento
// original; cada chave guarda um array JSON de registros).
const (
	KeyTransactions       = "logmam_transactions"
	KeyPalletTransactions = "logmam_pallet_transactions"
	KeyOcorrencias        = "logmam_ocorrencias"
	KeyUsers              = "logmam_users"
)

// CollectionStore é o port do Record Store: blobs opacos por chave.
//
// Load deserializa a coleção em dest; chave ausente deixa dest intocado e
// devolve nil (o caller parte do default tipado). Blob corrupto devolve erro;
// o caller decide logar e cair no default, nunca abortar a inicialização.
//
// Save serializa e persiste a coleção inteira. O serviço de mutação trata a
// falha de Save como não-bloqueante: a mutação já valeu em memória e o
// resultado reporta explicitamente que não houve durabilidade.
type CollectionStore interface {
	Load(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, src any) error
}
