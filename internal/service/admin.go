package service

import (
	"context"
	"fmt"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/identity"
	"github.com/tobscouts/troop-api/internal/repository"
)

var (
	ErrInvalidCredentials = identity.ErrInvalidCredentials
	ErrInvalidToken       = identity.ErrInvalidToken
	ErrAccountNotFound    = identity.ErrAccountNotFound
	ErrRoleNotFound       = repository.ErrRoleNotFound
	ErrRoleExists         = repository.ErrRoleExists
)

type AdminIdentityProvider interface {
	ListUsers(ctx context.Context) ([]domain.Account, error)
	UpdateUser(ctx context.Context, id string, params identity.UpdateUserParams) (domain.Account, error)
	DeleteUser(ctx context.Context, id string) error
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	Recover(ctx context.Context, email, redirectTo string) error
	UserFromToken(ctx context.Context, token string) (domain.Account, error)
	UpdatePassword(ctx context.Context, token, newPassword string) (domain.Account, error)
}

type AdminScoutRepository interface {
	FindAll(ctx context.Context) ([]domain.Scout, error)
	FindByEmail(ctx context.Context, email string) (domain.Scout, error)
	FindRole(ctx context.Context, accountID string) (domain.RoleAssignment, error)
	AssignRole(ctx context.Context, accountID, role string) (domain.RoleAssignment, error)
	FindAccountIDsByRole(ctx context.Context, role string) ([]string, error)
	RemoveRole(ctx context.Context, accountID, role string) error
}

// AdminService groups the privileged account-lifecycle passthroughs that
// the front end cannot perform with an anonymous key.
type AdminService struct {
	provider    AdminIdentityProvider
	repo        AdminScoutRepository
	frontendURL string
}

func NewAdminService(provider AdminIdentityProvider, repo AdminScoutRepository, frontendURL string) *AdminService {
	return &AdminService{
		provider:    provider,
		repo:        repo,
		frontendURL: frontendURL,
	}
}

func (s *AdminService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.provider.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.provider.ListUsers -> %w", err)
	}

	return accounts, nil
}

func (s *AdminService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.provider.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("s.provider.DeleteUser -> %w", err)
	}

	return nil
}

func (s *AdminService) ConfirmEmail(ctx context.Context, id string) (domain.Account, error) {
	confirm := true
	account, err := s.provider.UpdateUser(ctx, id, identity.UpdateUserParams{
		EmailConfirm: &confirm,
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.provider.UpdateUser -> %w", err)
	}

	return account, nil
}

func (s *AdminService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.provider.SignIn -> %w", err)
	}

	return session, nil
}

func (s *AdminService) ForgotPassword(ctx context.Context, email string) error {
	if err := s.provider.Recover(ctx, email, s.frontendURL+"/update-password"); err != nil {
		return fmt.Errorf("s.provider.Recover -> %w", err)
	}

	return nil
}

func (s *AdminService) UpdatePassword(ctx context.Context, token, newPassword string) (domain.Account, error) {
	account, err := s.provider.UpdatePassword(ctx, token, newPassword)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.provider.UpdatePassword -> %w", err)
	}

	return account, nil
}

// VisibleScouts mirrors what the database's row policies would let the
// token's owner read: leaders see every profile, scouts only their own.
func (s *AdminService) VisibleScouts(ctx context.Context, token string) ([]domain.Scout, error) {
	account, err := s.provider.UserFromToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.provider.UserFromToken -> %w", err)
	}

	role, err := s.repo.FindRole(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRole -> %w", err)
	}

	if role.Role == domain.RoleLeader {
		scouts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return scouts, nil
	}

	own, err := s.repo.FindByEmail(ctx, account.Email)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return []domain.Scout{own}, nil
}

// ListLeaders returns the profiles of every account holding the leader
// role.
func (s *AdminService) ListLeaders(ctx context.Context) ([]domain.Scout, error) {
	ids, err := s.repo.FindAccountIDsByRole(ctx, domain.RoleLeader)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAccountIDsByRole -> %w", err)
	}

	leaders := make(map[string]bool, len(ids))
	for _, id := range ids {
		leaders[id] = true
	}

	scouts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	var out []domain.Scout
	for _, scout := range scouts {
		if leaders[scout.AccountID] {
			out = append(out, scout)
		}
	}

	return out, nil
}

func (s *AdminService) PromoteLeader(ctx context.Context, accountID string) (domain.RoleAssignment, error) {
	role, err := s.repo.AssignRole(ctx, accountID, domain.RoleLeader)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.AssignRole -> %w", err)
	}

	return role, nil
}

func (s *AdminService) DemoteLeader(ctx context.Context, accountID string) error {
	if err := s.repo.RemoveRole(ctx, accountID, domain.RoleLeader); err != nil {
		return fmt.Errorf("s.repo.RemoveRole -> %w", err)
	}

	return nil
}
