package domain

// Reputation point values. These are externally observable through score
// totals and must not change without a policy decision.
const (
	QuestionUpvotePoints   = 2.5
	QuestionDownvotePoints = -1.5
	AnswerUpvotePoints     = 5.0
	AnswerDownvotePoints   = -2.5
	DownvotePenalty        = -1.5
)

// QuestionVoteDelta returns the score change applied to a question's author
// for a vote of the given value.
func QuestionVoteDelta(value int) float64 {
	if value == VoteUp {
		return QuestionUpvotePoints
	}
	return QuestionDownvotePoints
}

// AnswerVoteDelta returns the score change applied to an answer's author for a
// vote of the given value.
func AnswerVoteDelta(value int) float64 {
	if value == VoteUp {
		return AnswerUpvotePoints
	}
	return AnswerDownvotePoints
}

// VoterPenalty returns the score change applied to the voter themselves.
// Downvoting costs the voter points; upvoting is free.
func VoterPenalty(value int) float64 {
	if value == VoteDown {
		return DownvotePenalty
	}
	return 0
}
