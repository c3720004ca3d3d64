package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/identity"
	"github.com/tobscouts/troop-api/internal/metrics"
)

var (
	ErrDuplicateAccount = identity.ErrDuplicateAccount
	ErrInvalidRole      = errors.New("invalid role")

	// One sentinel per provisioning step, so a failure is attributable to
	// the exact remote call that broke. There is no transaction spanning
	// the identity provider and the database.
	ErrAccountCreate = errors.New("account creation failed")
	ErrProfileInsert = errors.New("scout profile insert failed")
	ErrRoleAssign    = errors.New("role assignment failed")
)

type ProvisionIdentityProvider interface {
	CreateUser(ctx context.Context, params identity.CreateUserParams) (domain.Account, error)
	DeleteUser(ctx context.Context, id string) error
	Recover(ctx context.Context, email, redirectTo string) error
}

type ProvisionScoutRepository interface {
	Create(ctx context.Context, scout domain.Scout) (domain.Scout, error)
	AssignRole(ctx context.Context, accountID, role string) (domain.RoleAssignment, error)
}

// Invitation is a request to provision one troop member.
type Invitation struct {
	Email string
	Role  string
	Name  string
	Rank  string
	Crew  string
}

type ProvisioningService struct {
	provider    ProvisionIdentityProvider
	repo        ProvisionScoutRepository
	frontendURL string
}

func NewProvisioningService(provider ProvisionIdentityProvider, repo ProvisionScoutRepository, frontendURL string) *ProvisioningService {
	return &ProvisioningService{
		provider:    provider,
		repo:        repo,
		frontendURL: frontendURL,
	}
}

// InviteUser creates an account at the identity provider, inserts the
// domain profile and role rows, and asks the provider to email a
// password-reset link. The generated password is a placeholder the provider
// requires at creation time; the invitee sets a real one through the link.
//
// If the profile insert fails after the account was created, the account is
// deleted again (best effort) instead of leaving an orphan. A failed
// reset-email dispatch never fails the invite.
func (s *ProvisioningService) InviteUser(ctx context.Context, inv Invitation) (domain.Account, error) {
	if inv.Role != domain.RoleScout && inv.Role != domain.RoleLeader {
		return domain.Account{}, fmt.Errorf("%w: %q", ErrInvalidRole, inv.Role)
	}

	fullName := inv.Name
	if fullName == "" {
		fullName = inv.Email
	}

	account, err := s.provider.CreateUser(ctx, identity.CreateUserParams{
		Email:        inv.Email,
		Password:     identity.GenerateRandomPassword(),
		EmailConfirm: true, // the reset link stands in for a confirmation email
		UserMetadata: domain.AccountMetadata{
			UserRole: inv.Role,
			Name:     fullName,
			Rank:     inv.Rank,
			Crew:     inv.Crew,
		},
	})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateAccount) {
			return domain.Account{}, err
		}

		return domain.Account{}, fmt.Errorf("%w: %w", ErrAccountCreate, err)
	}

	// Leaders get an account and a role row only; the scouts table holds
	// troop members.
	if inv.Role == domain.RoleScout {
		_, err = s.repo.Create(ctx, domain.Scout{
			AccountID: account.ID,
			FullName:  fullName,
			Email:     inv.Email,
			Rank:      inv.Rank,
			Crew:      inv.Crew,
		})
		if err != nil {
			s.compensateAccount(ctx, account.ID)

			return domain.Account{}, fmt.Errorf("%w: %w", ErrProfileInsert, err)
		}
	}

	if _, err = s.repo.AssignRole(ctx, account.ID, inv.Role); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %w", ErrRoleAssign, err)
	}

	if err = s.provider.Recover(ctx, inv.Email, s.frontendURL+"/update-password"); err != nil {
		// Best effort: the account is fully provisioned, the invitee can
		// still use the forgot-password flow.
		zap.L().Warn("failed to send password reset email",
			zap.String("email", inv.Email),
			zap.String("account_id", account.ID),
			zap.Error(err))
	}

	metrics.UsersInvited.Inc()

	return account, nil
}

func (s *ProvisioningService) compensateAccount(ctx context.Context, accountID string) {
	if err := s.provider.DeleteUser(ctx, accountID); err != nil {
		zap.L().Error("failed to delete account after profile insert failure, account is orphaned",
			zap.String("account_id", accountID),
			zap.Error(err))
	}
}
