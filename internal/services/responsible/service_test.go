package responsible

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/quadro/internal/database"
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/testutil"
)

func newService(t *testing.T) (Service, *database.Repository) {
	t.Helper()
	repo := database.NewRepository(testutil.SetupTestDB(t))
	return NewService(repo), repo
}

func ptr(s string) *string { return &s }

// ============================================================================
// CREATE
// ============================================================================

func TestCreateResponsible_Normalizes(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.CreateResponsible(context.Background(), CreateResponsibleRequest{
		Name:  "  Ana Souza ",
		Email: " Ana@Example.COM ",
		Role:  "Engineer",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, "Ana Souza", res.Name)
	assert.Equal(t, "ana@example.com", res.Email)
	assert.Equal(t, "Engineer", res.Role)
}

func TestCreateResponsible_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateResponsibleRequest
		wantErr error
	}{
		{"empty name", CreateResponsibleRequest{Name: " ", Email: "a@b.co"}, ErrEmptyName},
		{"long name", CreateResponsibleRequest{Name: strings.Repeat("n", 101), Email: "a@b.co"}, ErrNameTooLong},
		{"empty email", CreateResponsibleRequest{Name: "Ana"}, ErrEmptyEmail},
		{"bad email", CreateResponsibleRequest{Name: "Ana", Email: "ana.example.com"}, ErrInvalidEmail},
		{"long role", CreateResponsibleRequest{Name: "Ana", Email: "a@b.co", Role: strings.Repeat("r", 51)}, ErrRoleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			_, err := svc.CreateResponsible(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateResponsible_EmailTakenIgnoresCase(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateResponsible(ctx, CreateResponsibleRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateResponsible(ctx, CreateResponsibleRequest{Name: "Other Ana", Email: "ANA@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdateResponsible_PartialFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ana, err := svc.CreateResponsible(ctx, CreateResponsibleRequest{Name: "Ana", Email: "ana@example.com", Role: "Dev"})
	require.NoError(t, err)

	got, err := svc.UpdateResponsible(ctx, UpdateResponsibleRequest{ID: ana.ID, Role: ptr("Lead")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Lead", got.Role)

	// keeping one's own email is not a conflict
	_, err = svc.UpdateResponsible(ctx, UpdateResponsibleRequest{ID: ana.ID, Email: ptr("ANA@example.com")})
	assert.NoError(t, err)
}

func TestUpdateResponsible_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ana, err := svc.CreateResponsible(ctx, CreateResponsibleRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	_, err = svc.CreateResponsible(ctx, CreateResponsibleRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = svc.UpdateResponsible(ctx, UpdateResponsibleRequest{ID: ana.ID, Email: ptr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.UpdateResponsible(ctx, UpdateResponsibleRequest{ID: ana.ID, Name: ptr("")})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.UpdateResponsible(ctx, UpdateResponsibleRequest{ID: 99, Name: ptr("X")})
	assert.ErrorIs(t, err, ErrResponsibleNotFound)
}

func TestDeleteResponsible_UnassignsFromProjects(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	ana, err := svc.CreateResponsible(ctx, CreateResponsibleRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	p, err := repo.CreateProject(ctx, &models.Project{
		Name:         "Site",
		Status:       models.StatusToStart,
		Responsibles: []models.ResponsibleRef{ana.Ref()},
	})
	require.NoError(t, err)
	require.Len(t, p.Responsibles, 1)

	require.NoError(t, svc.DeleteResponsible(ctx, ana.ID))

	got, err := repo.GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Responsibles)

	assert.ErrorIs(t, svc.DeleteResponsible(ctx, ana.ID), ErrResponsibleNotFound)
	assert.ErrorIs(t, svc.DeleteResponsible(ctx, 0), ErrInvalidResponsibleID)
}

func TestGetAllResponsibles_SortedByName(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, n := range []string{"Carla", "Ana", "Bob"} {
		_, err := svc.CreateResponsible(ctx, CreateResponsibleRequest{Name: n, Email: strings.ToLower(n) + "@example.com"})
		require.NoError(t, err)
	}

	all, err := svc.GetAllResponsibles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana", all[0].Name)
	assert.Equal(t, "Bob", all[1].Name)
	assert.Equal(t, "Carla", all[2].Name)
}
