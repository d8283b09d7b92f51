package mutation

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/repository"
)

// AddUser cria uma conta. O nome é a chave de login: duplicata
// case-insensitive é rejeitada. A senha entra em claro e sai como bcrypt.
func (s *Service) AddUser(ctx context.Context, actor Actor, name, role, password, profilePicture string) (entity.User, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.User{}, Result{}, err
	}
	if strings.TrimSpace(name) == "" {
		return entity.User{}, Result{}, fmt.Errorf("%w: nome obrigatório", domain.ErrInvalidInput)
	}
	if password == "" {
		return entity.User{}, Result{}, fmt.Errorf("%w: senha obrigatória", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, Result{}, fmt.Errorf("hash de senha: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Name, name) {
			return entity.User{}, Result{}, fmt.Errorf("%w: usuário %q já existe", domain.ErrDuplicate, name)
		}
	}

	u := entity.User{
		ID:             s.newID(),
		Name:           strings.TrimSpace(name),
		Role:           role,
		PasswordHash:   string(hash),
		ProfilePicture: profilePicture,
	}
	s.users = append(s.users, u)
	persisted := s.persist(ctx, repository.KeyUsers, s.users)

	res := s.notify(fmt.Sprintf("Usuário %s adicionado com sucesso!", u.Name), "users", persisted)
	return u, res, nil
}

// UpdateUser altera nome, cargo e foto; senha vazia mantém o hash atual.
func (s *Service) UpdateUser(ctx context.Context, actor Actor, id, name, role, password, profilePicture string) (entity.User, Result, error) {
	if err := s.guard(actor, false, false); err != nil {
		return entity.User{}, Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.users {
		if cur.ID != id {
			continue
		}
		if name != "" && !strings.EqualFold(name, cur.Name) {
			for _, other := range s.users {
				if other.ID != id && strings.EqualFold(other.Name, name) {
					return entity.User{}, Result{}, fmt.Errorf("%w: usuário %q já existe", domain.ErrDuplicate, name)
				}
			}
			cur.Name = strings.TrimSpace(name)
		}
		if role != "" {
			cur.Role = role
		}
		if profilePicture != "" {
			cur.ProfilePicture = profilePicture
		}
		if password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return entity.User{}, Result{}, fmt.Errorf("hash de senha: %w", err)
			}
			cur.PasswordHash = string(hash)
		}
		s.users[i] = cur
		persisted := s.persist(ctx, repository.KeyUsers, s.users)
		res := s.notify("Usuário atualizado com sucesso!", "users", persisted)
		return cur, res, nil
	}
	return entity.User{}, Result{}, domain.ErrUserNotFound
}

// DeleteUser remove uma conta. Exige confirmação; a última conta do sistema
// não pode ser removida (alguém precisa conseguir entrar).
func (s *Service) DeleteUser(ctx context.Context, actor Actor, id string, confirm bool) (Result, error) {
	if err := s.guard(actor, true, confirm); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) <= 1 {
		return Result{}, fmt.Errorf("%w: não é possível remover o último usuário", domain.ErrInvalidInput)
	}
	next := make([]entity.User, 0, len(s.users))
	var removed entity.User
	found := false
	for _, cur := range s.users {
		if cur.ID == id {
			removed = cur
			found = true
			continue
		}
		next = append(next, cur)
	}
	if !found {
		return Result{}, domain.ErrUserNotFound
	}
	s.users = next
	persisted := s.persist(ctx, repository.KeyUsers, s.users)

	return s.notify(fmt.Sprintf("Usuário %s removido.", removed.Name), "users", persisted), nil
}

// FindUserByName localiza uma conta pelo nome, case-insensitive.
func (s *Service) FindUserByName(name string) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Name, name) {
			return u, true
		}
	}
	return entity.User{}, false
}
