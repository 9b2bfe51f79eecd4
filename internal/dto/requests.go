// Package dto defines the request and response payload shapes exchanged with
// the platform API. Outgoing shapes carry validation tags and are checked
// before a request leaves the client.
package dto

// Target types accepted by comment and report operations.
const (
	TargetQuestion = "question"
	TargetAnswer   = "answer"
)

// AskQuestionRequest creates a new question.
type AskQuestionRequest struct {
	Title   string   `json:"title" validate:"required,max=100"`
	Text    string   `json:"text" validate:"required"`
	Tags    []string `json:"tags" validate:"required,min=1,max=5,dive,required"`
	AskedBy string   `json:"askedBy" validate:"required"`
}

// AddAnswerRequest appends an answer to a question.
type AddAnswerRequest struct {
	QID   string `json:"qid" validate:"required"`
	Text  string `json:"text" validate:"required"`
	AnsBy string `json:"ansBy" validate:"required"`
}

// VoteRequest casts or switches a vote on a question.
type VoteRequest struct {
	Username  string `json:"username" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// AddCommentRequest attaches a comment to a question or answer.
type AddCommentRequest struct {
	TargetID   string `json:"targetId" validate:"required"`
	TargetType string `json:"targetType" validate:"required,oneof=question answer"`
	Text       string `json:"text" validate:"required"`
	CommentBy  string `json:"commentBy" validate:"required"`
}

// AddReportRequest files a new report against a question or answer.
type AddReportRequest struct {
	TargetID   string `json:"targetId" validate:"required"`
	TargetType string `json:"targetType" validate:"required,oneof=question answer"`
	Text       string `json:"text" validate:"required"`
	ReportBy   string `json:"reportBy" validate:"required"`
}

// ResolveReportRequest dismisses a report or removes the reported post.
type ResolveReportRequest struct {
	PostID   string `json:"postId" validate:"required"`
	PostType string `json:"postType" validate:"required,oneof=question answer"`
	Removed  bool   `json:"removed"`
}

// CreateCorrespondenceRequest opens a conversation between 1 and 10 members.
type CreateCorrespondenceRequest struct {
	MessageMembers []string `json:"messageMembers" validate:"required,min=1,max=10,dive,required"`
}

// UpdateMembersRequest replaces the member set of a correspondence.
type UpdateMembersRequest struct {
	MessageMembers []string `json:"messageMembers" validate:"required,min=1,max=10,dive,required"`
}

// AddMessageRequest appends a message to a correspondence.
type AddMessageRequest struct {
	MessageText string   `json:"messageText" validate:"required"`
	MessageBy   string   `json:"messageBy" validate:"required"`
	MessageTo   []string `json:"messageTo" validate:"required,min=1,dive,required"`
	IsCodeStyle bool     `json:"isCodeStyle"`
	FileName    string   `json:"fileName,omitempty"`
	FileData    []byte   `json:"fileData,omitempty"`
}

// UpdateMessageTextRequest edits a message's text or code-style flag.
type UpdateMessageTextRequest struct {
	MessageText string `json:"messageText" validate:"required"`
	IsCodeStyle bool   `json:"isCodeStyle"`
}

// UpdateMessageEmojisRequest replaces a message's emoji reaction map.
type UpdateMessageEmojisRequest struct {
	EmojiTracker map[string]string `json:"emojiTracker" validate:"required"`
}

// MarkViewedRequest records that a user has seen a correspondence.
type MarkViewedRequest struct {
	Username string `json:"username" validate:"required"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateProfilePictureRequest changes the avatar shown for a user.
type UpdateProfilePictureRequest struct {
	ProfilePicture string `json:"profilePicture" validate:"required"`
}

// ModApplicationRequest applies for moderator status.
type ModApplicationRequest struct {
	Username        string `json:"username" validate:"required"`
	ApplicationText string `json:"applicationText" validate:"required"`
}

// ResolveModApplicationRequest accepts or rejects a moderator application.
type ResolveModApplicationRequest struct {
	Accepted bool `json:"accepted"`
}
