package service

import (
	"fmt"
	"testing"

	"nomic_garden/internal/models"
	"nomic_garden/internal/repository"
	"nomic_garden/internal/testutil"
)

// newTestServices 在 in-memory SQLite 上建立完整的 service 組
func newTestServices(t *testing.T) (*Services, *repository.Repositories) {
	t.Helper()

	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	return NewServices(repos), repos
}

func createTestUser(t *testing.T, services *Services, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed-password",
	}
	if err := services.User.CreateUser(user); err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}

func createTestProposal(t *testing.T, services *Services, authorID uint, status models.ProposalStatus) *models.Proposal {
	t.Helper()

	proposal, err := services.Proposal.CreateProposal(
		"Test Proposal", "Description for test proposal.", authorID, "Rule text here.", status, "")
	if err != nil {
		t.Fatalf("failed to create test proposal: %v", err)
	}
	return proposal
}
