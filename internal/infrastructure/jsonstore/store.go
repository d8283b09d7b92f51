// Package jsonstore implementa o Record Store sobre um único arquivo JSON
// local. É o driver default: zero dependências externas de runtime, adequado
// ao volume do painel (coleções inteiras em memória, gravação integral).
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/logmam/logmam-api/internal/domain/repository"
)

var _ repository.CollectionStore = (*Store)(nil)

// Store adaptador de persistência em arquivo. O arquivo guarda um objeto
// JSON com as coleções por chave; cada Save regrava o arquivo inteiro via
// arquivo temporário e rename, para nunca deixar um JSON truncado no disco.
type Store struct {
	path string
	mu   sync.Mutex
}

// New constrói o adaptador; cria o diretório do arquivo se não existir.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de dados: %w", err)
	}
	return &Store{path: path}, nil
}

// Load deserializa a coleção da chave em dest. Arquivo ou chave ausentes
// deixam dest intocado e devolvem nil.
func (s *Store) Load(ctx context.Context, key string, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs, err := s.readAll()
	if err != nil {
		return err
	}
	raw, ok := blobs[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decodificar coleção %s: %w", key, err)
	}
	return nil
}

// Save serializa a coleção e regrava o arquivo.
func (s *Store) Save(ctx context.Context, key string, src any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs, err := s.readAll()
	if err != nil {
		// Arquivo corrompido não pode bloquear novas gravações: recomeça
		// do zero e preserva apenas a coleção sendo salva.
		blobs = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("codificar coleção %s: %w", key, err)
	}
	blobs[key] = raw
	return s.writeAll(blobs)
}

func (s *Store) readAll() (map[string]json.RawMessage, error) {
	blobs := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return blobs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return blobs, nil
	}
	if err := json.Unmarshal(data, &blobs); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", s.path, err)
	}
	return blobs, nil
}

func (s *Store) writeAll(blobs map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(blobs, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("gravar %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("renomear %s: %w", tmp, err)
	}
	return nil
}
