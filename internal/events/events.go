package events

import "encoding/json"

// Push event names as they appear on the wire. These must match the platform
// exactly; a rename here is a protocol break.
const (
	QuestionUpdate        = "questionUpdate"
	AnswerUpdate          = "answerUpdate"
	ViewsUpdate           = "viewsUpdate"
	VoteUpdate            = "voteUpdate"
	CommentUpdate         = "commentUpdate"
	CorrespondenceUpdate  = "correspondenceUpdate"
	MessageUpdate         = "messageUpdate"
	ModApplicationUpdate  = "modApplicationUpdate"
	UserReportsUpdate     = "userReportsUpdate"
	RemovePostUpdate      = "removePostUpdate"
	ReportDismissedUpdate = "reportDismissedUpdate"
	NotificationUpdate    = "notificationUpdate"
)

// Names lists every push event the platform emits, in stable order.
var Names = []string{
	QuestionUpdate,
	AnswerUpdate,
	ViewsUpdate,
	VoteUpdate,
	CommentUpdate,
	CorrespondenceUpdate,
	MessageUpdate,
	ModApplicationUpdate,
	UserReportsUpdate,
	RemovePostUpdate,
	ReportDismissedUpdate,
	NotificationUpdate,
}

// Envelope is the framing used on event-stream transports that multiplex all
// event names over one connection.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}
