package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

// UserUseCase perfil propio y administración de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetProfile usuario autenticado.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.FromUser(u)
	return &resp, nil
}

// UpdateProfile cambia nombre, apellido y email del propio usuario.
// Un email ya usado por otra cuenta → domain.ErrDuplicate.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID int64, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		u.Email = email
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := dto.FromUser(u)
	return &resp, nil
}

// AdminUpdate aplica los campos presentes. Un admin no puede quitarse el rol ni suspenderse a sí mismo.
func (uc *UserUseCase) AdminUpdate(ctx context.Context, actorID, userID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if actorID == userID {
		if in.Role != nil && *in.Role != u.Role {
			return nil, fmt.Errorf("no puede cambiar su propio rol: %w", domain.ErrConflict)
		}
		if in.Status != nil && *in.Status != u.Status {
			return nil, fmt.Errorf("no puede cambiar su propio estado: %w", domain.ErrConflict)
		}
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := dto.FromUser(u)
	return &resp, nil
}

// Delete elimina el usuario. Sus movimientos quedan en el historial sin actor.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return fmt.Errorf("no puede eliminar su propia cuenta: %w", domain.ErrConflict)
	}
	ok, err := uc.repo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
