package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/quibbleapp/quibble-go/internal/models"
)

// Decode failure modes. Both are handled by dropping the event at the channel
// boundary; handlers never see them.
var (
	ErrUnknownEvent     = errors.New("unknown push event")
	ErrMalformedPayload = errors.New("malformed event payload")
)

var schemas = map[string]*jsonschema.Schema{
	QuestionUpdate:        mustSchema(QuestionUpdate, `{"type":"object","required":["id","title","askedBy"]}`),
	ViewsUpdate:           mustSchema(ViewsUpdate, `{"type":"object","required":["id","views"]}`),
	AnswerUpdate:          mustSchema(AnswerUpdate, `{"type":"object","required":["qid","answer"],"properties":{"qid":{"type":"string"},"answer":{"type":"object","required":["id","ansBy"]}}}`),
	VoteUpdate:            mustSchema(VoteUpdate, `{"type":"object","required":["qid","upVotes","downVotes"],"properties":{"upVotes":{"type":"array"},"downVotes":{"type":"array"}}}`),
	CommentUpdate:         mustSchema(CommentUpdate, `{"type":"object","required":["result","type"],"properties":{"type":{"enum":["question","answer"]}}}`),
	UserReportsUpdate:     mustSchema(UserReportsUpdate, `{"type":"object","required":["result","type"],"properties":{"type":{"enum":["question","answer"]}}}`),
	RemovePostUpdate:      mustSchema(RemovePostUpdate, `{"type":"object","required":["qid","updatedPost"]}`),
	ReportDismissedUpdate: mustSchema(ReportDismissedUpdate, `{"type":"object","required":["qid","updatedPost"]}`),
	CorrespondenceUpdate:  mustSchema(CorrespondenceUpdate, `{"type":"object","required":["id","messageMembers"]}`),
	MessageUpdate:         mustSchema(MessageUpdate, `{"type":"object","required":["id","messageBy"]}`),
	ModApplicationUpdate:  mustSchema(ModApplicationUpdate, `{"type":"object","required":["id","username"]}`),
	NotificationUpdate:    mustSchema(NotificationUpdate, `{"type":"object","required":["id","user"]}`),
}

func mustSchema(name, source string) *jsonschema.Schema {
	return jsonschema.MustCompileString(name+".json", source)
}

// Decode validates and decodes one raw payload into its typed form. The
// returned value is one of: models.Question, models.Correspondence,
// models.Message, models.ModApplication, models.Notification, AnswerAdded,
// VotesChanged, CommentAdded, ReportsChanged, PostRemoved, ReportDismissed.
func Decode(event string, payload []byte) (any, error) {
	schema, ok := schemas[event]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	var probe any
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := schema.Validate(probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch event {
	case QuestionUpdate, ViewsUpdate:
		var question models.Question
		if err := unmarshal(payload, &question); err != nil {
			return nil, err
		}
		return question, nil
	case AnswerUpdate:
		var added AnswerAdded
		if err := unmarshal(payload, &added); err != nil {
			return nil, err
		}
		return added, nil
	case VoteUpdate:
		var votes VotesChanged
		if err := unmarshal(payload, &votes); err != nil {
			return nil, err
		}
		return votes, nil
	case CommentUpdate:
		post, err := decodeTypedResult(payload)
		if err != nil {
			return nil, err
		}
		return CommentAdded{Result: post}, nil
	case UserReportsUpdate:
		post, err := decodeTypedResult(payload)
		if err != nil {
			return nil, err
		}
		return ReportsChanged{Result: post}, nil
	case RemovePostUpdate:
		qid, post, err := decodeUpdatedPost(payload)
		if err != nil {
			return nil, err
		}
		return PostRemoved{QID: qid, UpdatedPost: post}, nil
	case ReportDismissedUpdate:
		qid, post, err := decodeUpdatedPost(payload)
		if err != nil {
			return nil, err
		}
		return ReportDismissed{QID: qid, UpdatedPost: post}, nil
	case CorrespondenceUpdate:
		var correspondence models.Correspondence
		if err := unmarshal(payload, &correspondence); err != nil {
			return nil, err
		}
		return correspondence, nil
	case MessageUpdate:
		var message models.Message
		if err := unmarshal(payload, &message); err != nil {
			return nil, err
		}
		return message, nil
	case ModApplicationUpdate:
		var application models.ModApplication
		if err := unmarshal(payload, &application); err != nil {
			return nil, err
		}
		return application, nil
	case NotificationUpdate:
		var notification models.Notification
		if err := unmarshal(payload, &notification); err != nil {
			return nil, err
		}
		return notification, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}
}

func unmarshal(payload []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

// decodeTypedResult handles the {result, type} payloads where the server says
// which kind the result is.
func decodeTypedResult(payload []byte) (Post, error) {
	var frame struct {
		Result json.RawMessage `json:"result"`
		Type   string          `json:"type"`
	}
	if err := unmarshal(payload, &frame); err != nil {
		return Post{}, err
	}
	return decodePost(frame.Result, PostKind(frame.Type))
}

// decodeUpdatedPost handles the {qid, updatedPost} payloads where the kind
// must be inferred from the post's author field.
func decodeUpdatedPost(payload []byte) (string, Post, error) {
	var frame struct {
		QID         string          `json:"qid"`
		UpdatedPost json.RawMessage `json:"updatedPost"`
	}
	if err := unmarshal(payload, &frame); err != nil {
		return "", Post{}, err
	}

	var sniff struct {
		AskedBy *string `json:"askedBy"`
		AnsBy   *string `json:"ansBy"`
	}
	if err := unmarshal(frame.UpdatedPost, &sniff); err != nil {
		return "", Post{}, err
	}

	kind := PostKind("")
	switch {
	case sniff.AskedBy != nil:
		kind = PostQuestion
	case sniff.AnsBy != nil:
		kind = PostAnswer
	default:
		return "", Post{}, fmt.Errorf("%w: updatedPost is neither question nor answer", ErrMalformedPayload)
	}

	post, err := decodePost(frame.UpdatedPost, kind)
	if err != nil {
		return "", Post{}, err
	}
	return frame.QID, post, nil
}

func decodePost(raw json.RawMessage, kind PostKind) (Post, error) {
	switch kind {
	case PostQuestion:
		var question models.Question
		if err := unmarshal(raw, &question); err != nil {
			return Post{}, err
		}
		return Post{Kind: PostQuestion, Question: &question}, nil
	case PostAnswer:
		var answer models.Answer
		if err := unmarshal(raw, &answer); err != nil {
			return Post{}, err
		}
		return Post{Kind: PostAnswer, Answer: &answer}, nil
	default:
		return Post{}, fmt.Errorf("%w: unknown post kind %q", ErrMalformedPayload, kind)
	}
}
