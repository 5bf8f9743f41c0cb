package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftProposalTransitions(t *testing.T) {
	decisions := []ProposalStatus{
		ProposalStatusAccepted,
		ProposalStatusRejected,
		ProposalStatusAlternativeProposed,
		ProposalStatusCancelled,
	}

	for _, to := range decisions {
		assert.True(t, CanTransitionShiftProposal(ProposalStatusProposed, to), "PROPOSED -> %s", to)
	}

	// every decided status is terminal
	for _, from := range decisions {
		for _, to := range append(decisions, ProposalStatusProposed) {
			assert.False(t, CanTransitionShiftProposal(from, to), "%s -> %s must be blocked", from, to)
		}
	}
}

func TestSwapProposalTransitions(t *testing.T) {
	assert.True(t, CanTransitionSwapProposal(ProposalStatusProposed, ProposalStatusAccepted))
	assert.True(t, CanTransitionSwapProposal(ProposalStatusProposed, ProposalStatusRejected))

	assert.False(t, CanTransitionSwapProposal(ProposalStatusProposed, ProposalStatusAlternativeProposed))
	assert.False(t, CanTransitionSwapProposal(ProposalStatusProposed, ProposalStatusCancelled))
	assert.False(t, CanTransitionSwapProposal(ProposalStatusAccepted, ProposalStatusRejected))
	assert.False(t, CanTransitionSwapProposal(ProposalStatusRejected, ProposalStatusAccepted))
}
