package service

import (
	"errors"
	"testing"
	"time"

	"nomic_garden/internal/models"
)

func TestCastVote(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	voter := createTestUser(t, services, "bob")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusOpenForVoting)

	vote, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteYes, "支持這條規則")
	if err != nil {
		t.Fatalf("CastVote returned error: %v", err)
	}
	if vote.ID == 0 {
		t.Fatal("vote has no id")
	}
	if vote.Value != models.VoteYes {
		t.Errorf("value = %q, want yes", vote.Value)
	}
	if vote.VotedAt.IsZero() {
		t.Error("voted_at not set")
	}

	fetched, err := services.Vote.GetUserVote(proposal.ID, voter.ID)
	if err != nil {
		t.Fatalf("GetUserVote returned error: %v", err)
	}
	if fetched.ID != vote.ID || fetched.Rationale != "支持這條規則" {
		t.Errorf("fetched = %+v, want the cast vote", fetched)
	}
}

func TestCastVoteValidation(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusOpenForVoting)

	if _, err := services.Vote.CastVote(proposal.ID, author.ID, "", ""); !errors.Is(err, models.ErrMissingFields) {
		t.Errorf("empty value: err = %v, want ErrMissingFields", err)
	}
	if _, err := services.Vote.CastVote(proposal.ID, author.ID, "maybe", ""); !errors.Is(err, models.ErrInvalidVoteValue) {
		t.Errorf("unknown value: err = %v, want ErrInvalidVoteValue", err)
	}
	if _, err := services.Vote.CastVote(9999, author.ID, models.VoteYes, ""); !errors.Is(err, models.ErrProposalNotFound) {
		t.Errorf("unknown proposal: err = %v, want ErrProposalNotFound", err)
	}
}

func TestCastVoteNotOpen(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	voter := createTestUser(t, services, "bob")

	for _, status := range []models.ProposalStatus{
		models.ProposalStatusDraft,
		models.ProposalStatusVotingClosed,
	} {
		proposal := createTestProposal(t, services, author.ID, status)
		_, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteYes, "")
		if !errors.Is(err, models.ErrVotingNotOpen) {
			t.Errorf("status %s: err = %v, want ErrVotingNotOpen", status, err)
		}
	}
}

func TestCastVoteDuplicate(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	voter := createTestUser(t, services, "bob")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusOpenForVoting)

	if _, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteYes, ""); err != nil {
		t.Fatalf("first CastVote returned error: %v", err)
	}
	// 同一用戶對同一提案只能有一筆投票，重複投票要改走 ChangeVote
	_, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteNo, "")
	if !errors.Is(err, models.ErrDuplicateVote) {
		t.Errorf("err = %v, want ErrDuplicateVote", err)
	}

	// 原票未被覆蓋
	fetched, err := services.Vote.GetUserVote(proposal.ID, voter.ID)
	if err != nil {
		t.Fatalf("GetUserVote returned error: %v", err)
	}
	if fetched.Value != models.VoteYes {
		t.Errorf("value = %q, want yes (unchanged)", fetched.Value)
	}
}

func TestChangeVote(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	voter := createTestUser(t, services, "bob")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusOpenForVoting)

	vote, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteYes, "原本支持")
	if err != nil {
		t.Fatalf("CastVote returned error: %v", err)
	}
	firstVotedAt := vote.VotedAt

	time.Sleep(10 * time.Millisecond)
	changed, err := services.Vote.ChangeVote(vote.ID, models.VoteNo, "改變主意了")
	if err != nil {
		t.Fatalf("ChangeVote returned error: %v", err)
	}
	if changed.ID != vote.ID {
		t.Errorf("changed.ID = %d, want %d (same ledger entry)", changed.ID, vote.ID)
	}
	if changed.Value != models.VoteNo || changed.Rationale != "改變主意了" {
		t.Errorf("changed = %+v, want overwritten value and rationale", changed)
	}
	if !changed.VotedAt.After(firstVotedAt) {
		t.Errorf("voted_at = %v, want later than %v", changed.VotedAt, firstVotedAt)
	}

	// 讀回驗證
	fetched, err := services.Vote.GetUserVote(proposal.ID, voter.ID)
	if err != nil {
		t.Fatalf("GetUserVote returned error: %v", err)
	}
	if fetched.Value != models.VoteNo {
		t.Errorf("value = %q, want no", fetched.Value)
	}
}

func TestChangeVoteErrors(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	voter := createTestUser(t, services, "bob")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusOpenForVoting)

	vote, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteYes, "")
	if err != nil {
		t.Fatalf("CastVote returned error: %v", err)
	}

	if _, err := services.Vote.ChangeVote(vote.ID, "maybe", ""); !errors.Is(err, models.ErrInvalidVoteValue) {
		t.Errorf("err = %v, want ErrInvalidVoteValue", err)
	}
	if _, err := services.Vote.ChangeVote(9999, models.VoteNo, ""); !errors.Is(err, models.ErrVoteNotFound) {
		t.Errorf("err = %v, want ErrVoteNotFound", err)
	}

	// 投票關閉後不可再改票
	if _, err := services.Proposal.UpdateStatus(proposal.ID, models.ProposalStatusVotingClosed); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if _, err := services.Vote.ChangeVote(vote.ID, models.VoteNo, ""); !errors.Is(err, models.ErrVotingNotOpen) {
		t.Errorf("err = %v, want ErrVotingNotOpen", err)
	}
}

func TestListVotesWithVoters(t *testing.T) {
	services, repos := newTestServices(t)
	author := createTestUser(t, services, "alice")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusOpenForVoting)

	// 直接經由 repository 寫入，控制投票時間以驗證排序
	base := time.Now().Add(-time.Hour)
	voters := []struct {
		username string
		value    models.VoteValue
		age      time.Duration
	}{
		{"bob", models.VoteYes, 0},
		{"carol", models.VoteNo, 10 * time.Minute},
		{"dave", models.VoteAbstain, 20 * time.Minute},
	}
	for _, v := range voters {
		user := createTestUser(t, services, v.username)
		vote := &models.Vote{
			ProposalID: proposal.ID,
			UserID:     user.ID,
			Value:      v.value,
			VotedAt:    base.Add(v.age),
		}
		if err := repos.Vote.Create(vote); err != nil {
			t.Fatalf("seed vote failed: %v", err)
		}
	}

	votes, err := services.Vote.ListVotes(proposal.ID)
	if err != nil {
		t.Fatalf("ListVotes returned error: %v", err)
	}
	if len(votes) != 3 {
		t.Fatalf("len(votes) = %d, want 3", len(votes))
	}
	// 由新到舊
	if votes[0].VoterUsername != "dave" || votes[2].VoterUsername != "bob" {
		t.Errorf("order = %q … %q, want dave first, bob last",
			votes[0].VoterUsername, votes[2].VoterUsername)
	}

	outcome, err := services.Vote.GetOutcome(proposal.ID)
	if err != nil {
		t.Fatalf("GetOutcome returned error: %v", err)
	}
	// abstain 不計入分母
	if outcome.CountYes != 1 || outcome.CountNo != 1 || outcome.Total != 2 {
		t.Errorf("outcome = %+v, want 1 yes / 1 no / 2 total", outcome)
	}
}

func TestListVotesEmptyProposal(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusOpenForVoting)

	votes, err := services.Vote.ListVotes(proposal.ID)
	if err != nil {
		t.Fatalf("ListVotes returned error: %v", err)
	}
	if len(votes) != 0 {
		t.Errorf("len(votes) = %d, want 0", len(votes))
	}

	if _, err := services.Vote.GetUserVote(proposal.ID, author.ID); !errors.Is(err, models.ErrVoteNotFound) {
		t.Errorf("err = %v, want ErrVoteNotFound", err)
	}
}

// 模擬單一用戶從投票到改票的完整流程
func TestVoteLifecycle(t *testing.T) {
	services, _ := newTestServices(t)
	author := createTestUser(t, services, "alice")
	voter := createTestUser(t, services, "bob")
	proposal := createTestProposal(t, services, author.ID, models.ProposalStatusDraft)

	// 草稿階段不可投票
	if _, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteYes, ""); !errors.Is(err, models.ErrVotingNotOpen) {
		t.Fatalf("err = %v, want ErrVotingNotOpen", err)
	}

	if _, err := services.Proposal.UpdateStatus(proposal.ID, models.ProposalStatusOpenForVoting); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	vote, err := services.Vote.CastVote(proposal.ID, voter.ID, models.VoteYes, "先表態支持")
	if err != nil {
		t.Fatalf("CastVote returned error: %v", err)
	}

	outcome, _ := services.Vote.GetOutcome(proposal.ID)
	if outcome.CountYes != 1 || outcome.YesPercentage != 100 {
		t.Errorf("outcome after cast = %+v, want 1 yes at 100%%", outcome)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := services.Vote.ChangeVote(vote.ID, models.VoteNo, "深思後反對"); err != nil {
		t.Fatalf("ChangeVote returned error: %v", err)
	}

	outcome, _ = services.Vote.GetOutcome(proposal.ID)
	if outcome.CountNo != 1 || outcome.NoPercentage != 100 {
		t.Errorf("outcome after change = %+v, want 1 no at 100%%", outcome)
	}

	final, err := services.Vote.GetUserVote(proposal.ID, voter.ID)
	if err != nil {
		t.Fatalf("GetUserVote returned error: %v", err)
	}
	if final.ID != vote.ID || !final.VotedAt.After(vote.VotedAt) {
		t.Errorf("final vote = %+v, want same entry with refreshed voted_at", final)
	}
}
