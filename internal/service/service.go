package service

import (
	"nomic_garden/internal/repository"
)

type Services struct {
	User             *UserService
	Proposal         *ProposalService
	Vote             *VoteService
	WebSocketManager *WebSocketManager
}

func NewServices(repos *repository.Repositories) *Services {
	wsManager := NewWebSocketManager()

	userService := NewUserService(repos.User)
	proposalService := NewProposalService(repos, wsManager)
	voteService := NewVoteService(repos, wsManager)
	return &Services{
		User:             userService,
		Proposal:         proposalService,
		Vote:             voteService,
		WebSocketManager: wsManager,
	}
}
