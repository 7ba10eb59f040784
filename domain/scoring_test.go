package domain

import "testing"

func TestQuestionVoteDelta(t *testing.T) {
	if got := QuestionVoteDelta(VoteUp); got != 2.5 {
		t.Errorf("upvote delta = %v, want 2.5", got)
	}
	if got := QuestionVoteDelta(VoteDown); got != -1.5 {
		t.Errorf("downvote delta = %v, want -1.5", got)
	}
}

func TestAnswerVoteDelta(t *testing.T) {
	if got := AnswerVoteDelta(VoteUp); got != 5.0 {
		t.Errorf("upvote delta = %v, want 5.0", got)
	}
	if got := AnswerVoteDelta(VoteDown); got != -2.5 {
		t.Errorf("downvote delta = %v, want -2.5", got)
	}
}

func TestVoterPenalty(t *testing.T) {
	if got := VoterPenalty(VoteDown); got != -1.5 {
		t.Errorf("downvote penalty = %v, want -1.5", got)
	}
	if got := VoterPenalty(VoteUp); got != 0 {
		t.Errorf("upvote penalty = %v, want 0", got)
	}
}

func TestValidVoteValue(t *testing.T) {
	for _, value := range []int{VoteUp, VoteDown} {
		if !ValidVoteValue(value) {
			t.Errorf("ValidVoteValue(%d) = false", value)
		}
	}
	for _, value := range []int{0, 2, -2, 10} {
		if ValidVoteValue(value) {
			t.Errorf("ValidVoteValue(%d) = true", value)
		}
	}
}

func TestQuestionHasAccepted(t *testing.T) {
	answerID := "a1"
	q := &Question{Status: StatusSolved, AcceptedAnswerID: &answerID}
	if !q.HasAccepted("a1") {
		t.Error("expected a1 to be accepted")
	}
	if q.HasAccepted("a2") {
		t.Error("a2 must not be accepted")
	}
	if (&Question{}).HasAccepted("a1") {
		t.Error("question without pointer must not accept anything")
	}
}

func TestUserCanPost(t *testing.T) {
	if (&User{IsBanned: true}).CanPost() {
		t.Error("banned user must not post")
	}
	if !(&User{}).CanPost() {
		t.Error("regular user must post")
	}
}
