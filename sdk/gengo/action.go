package gengo

import "fmt"

// JobAction is one of Revise, Approve or Reject.
type JobAction interface {
	isJobAction()
}

type RejectReason string

const (
	ReasonQuality    RejectReason = "quality"
	ReasonIncomplete RejectReason = "incomplete"
	ReasonOther      RejectReason = "other"
)

type FollowUp string

const (
	FollowUpRequeue FollowUp = "requeue"
	FollowUpCancel  FollowUp = "cancel"
)

// Revise sends the job back to the translator with a comment.
type Revise struct {
	Comment string
}

// Approve accepts the translation, optionally leaving feedback.
type Approve struct {
	Feedback Feedback
}

// Reject refuses the translation. Captcha is the answer to the challenge
// image shown for the job.
type Reject struct {
	Reason   RejectReason
	Comment  string
	Captcha  string
	FollowUp FollowUp
}

func (Revise) isJobAction()  {}
func (Approve) isJobAction() {}
func (Reject) isJobAction()  {}

func actionBody(a JobAction) (map[string]any, error) {
	switch a := a.(type) {
	case Revise:
		return map[string]any{"action": "revise", "comment": a.Comment}, nil
	case Approve:
		body := map[string]any{"action": "approve"}
		if a.Feedback.Rating != nil {
			body["rating"] = *a.Feedback.Rating
		}
		if a.Feedback.ForTranslator != "" {
			body["for_translator"] = a.Feedback.ForTranslator
		}
		if a.Feedback.ForGengo != "" {
			body["for_mygengo"] = a.Feedback.ForGengo
		}
		if a.Feedback.IsPublic != nil {
			body["public"] = boolInt(*a.Feedback.IsPublic)
		}
		return body, nil
	case Reject:
		return map[string]any{
			"action":    "reject",
			"reason":    string(a.Reason),
			"comment":   a.Comment,
			"captcha":   a.Captcha,
			"follow_up": string(a.FollowUp),
		}, nil
	case nil:
		return nil, fmt.Errorf("gengo: job action is nil")
	default:
		return nil, fmt.Errorf("gengo: unsupported job action %T", a)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
