package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/identity"
)

type fakeIdentityProvider struct {
	createErr  error
	deleteErr  error
	recoverErr error

	created    []identity.CreateUserParams
	deletedIDs []string
	recovered  []string
	redirects  []string
}

func (f *fakeIdentityProvider) CreateUser(_ context.Context, params identity.CreateUserParams) (domain.Account, error) {
	f.created = append(f.created, params)
	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}

	return domain.Account{ID: "acc-1", Email: params.Email, UserMetadata: params.UserMetadata}, nil
}

func (f *fakeIdentityProvider) DeleteUser(_ context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)

	return f.deleteErr
}

func (f *fakeIdentityProvider) Recover(_ context.Context, email, redirectTo string) error {
	f.recovered = append(f.recovered, email)
	f.redirects = append(f.redirects, redirectTo)

	return f.recoverErr
}

type fakeProvisionRepo struct {
	createErr error
	assignErr error

	scouts []domain.Scout
	roles  []domain.RoleAssignment
}

func (f *fakeProvisionRepo) Create(_ context.Context, scout domain.Scout) (domain.Scout, error) {
	if f.createErr != nil {
		return domain.Scout{}, f.createErr
	}

	scout.ID = uint(len(f.scouts) + 1)
	f.scouts = append(f.scouts, scout)

	return scout, nil
}

func (f *fakeProvisionRepo) AssignRole(_ context.Context, accountID, role string) (domain.RoleAssignment, error) {
	if f.assignErr != nil {
		return domain.RoleAssignment{}, f.assignErr
	}

	assignment := domain.RoleAssignment{ID: uint(len(f.roles) + 1), AccountID: accountID, Role: role}
	f.roles = append(f.roles, assignment)

	return assignment, nil
}

func TestProvisioningService_InviteUser(t *testing.T) {
	provider := &fakeIdentityProvider{}
	repo := &fakeProvisionRepo{}
	svc := NewProvisioningService(provider, repo, "https://troop.example.com")

	account, err := svc.InviteUser(context.Background(), Invitation{
		Email: "new.scout@example.com",
		Role:  domain.RoleScout,
		Name:  "New Scout",
		Rank:  "Tenderfoot",
		Crew:  "Eagles",
	})

	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)

	require.Len(t, provider.created, 1)
	created := provider.created[0]
	assert.True(t, created.EmailConfirm)
	assert.NotEmpty(t, created.Password)
	assert.Equal(t, domain.RoleScout, created.UserMetadata.UserRole)

	require.Len(t, repo.scouts, 1)
	assert.Equal(t, "acc-1", repo.scouts[0].AccountID)
	assert.Equal(t, "New Scout", repo.scouts[0].FullName)

	require.Len(t, repo.roles, 1)
	assert.Equal(t, "acc-1", repo.roles[0].AccountID)
	assert.Equal(t, domain.RoleScout, repo.roles[0].Role)

	require.Len(t, provider.recovered, 1)
	assert.Equal(t, "new.scout@example.com", provider.recovered[0])
	assert.Equal(t, "https://troop.example.com/update-password", provider.redirects[0])
}

func TestProvisioningService_InviteUser_NameFallsBackToEmail(t *testing.T) {
	provider := &fakeIdentityProvider{}
	repo := &fakeProvisionRepo{}
	svc := NewProvisioningService(provider, repo, "https://troop.example.com")

	_, err := svc.InviteUser(context.Background(), Invitation{
		Email: "anon@example.com",
		Role:  domain.RoleScout,
	})

	require.NoError(t, err)
	require.Len(t, repo.scouts, 1)
	assert.Equal(t, "anon@example.com", repo.scouts[0].FullName)
}

func TestProvisioningService_InviteUser_InvalidRole(t *testing.T) {
	provider := &fakeIdentityProvider{}
	svc := NewProvisioningService(provider, &fakeProvisionRepo{}, "https://troop.example.com")

	_, err := svc.InviteUser(context.Background(), Invitation{
		Email: "new@example.com",
		Role:  "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Empty(t, provider.created, "no account should be created for an invalid role")
}

func TestProvisioningService_InviteUser_Duplicate(t *testing.T) {
	provider := &fakeIdentityProvider{createErr: identity.ErrDuplicateAccount}
	repo := &fakeProvisionRepo{}
	svc := NewProvisioningService(provider, repo, "https://troop.example.com")

	_, err := svc.InviteUser(context.Background(), Invitation{
		Email: "dup@example.com",
		Role:  domain.RoleScout,
	})

	assert.ErrorIs(t, err, ErrDuplicateAccount)
	assert.Empty(t, repo.scouts)
	assert.Empty(t, repo.roles)
}

func TestProvisioningService_InviteUser_ProfileInsertCompensates(t *testing.T) {
	provider := &fakeIdentityProvider{}
	repo := &fakeProvisionRepo{createErr: errors.New("insert failed")}
	svc := NewProvisioningService(provider, repo, "https://troop.example.com")

	_, err := svc.InviteUser(context.Background(), Invitation{
		Email: "new@example.com",
		Role:  domain.RoleScout,
	})

	assert.ErrorIs(t, err, ErrProfileInsert)
	require.Len(t, provider.deletedIDs, 1, "the orphaned account should be deleted again")
	assert.Equal(t, "acc-1", provider.deletedIDs[0])
}

func TestProvisioningService_InviteUser_RoleAssignFails(t *testing.T) {
	provider := &fakeIdentityProvider{}
	repo := &fakeProvisionRepo{assignErr: errors.New("insert failed")}
	svc := NewProvisioningService(provider, repo, "https://troop.example.com")

	_, err := svc.InviteUser(context.Background(), Invitation{
		Email: "new@example.com",
		Role:  domain.RoleScout,
	})

	assert.ErrorIs(t, err, ErrRoleAssign)
}

func TestProvisioningService_InviteUser_RecoverFailureIsNotFatal(t *testing.T) {
	provider := &fakeIdentityProvider{recoverErr: errors.New("smtp down")}
	repo := &fakeProvisionRepo{}
	svc := NewProvisioningService(provider, repo, "https://troop.example.com")

	account, err := svc.InviteUser(context.Background(), Invitation{
		Email: "new@example.com",
		Role:  domain.RoleLeader,
	})

	require.NoError(t, err, "a failed reset email must not fail the invite")
	assert.Equal(t, "acc-1", account.ID)
	require.Len(t, repo.roles, 1)
	assert.Equal(t, domain.RoleLeader, repo.roles[0].Role)
	assert.Empty(t, repo.scouts, "leaders get no scout profile row")
}
