// Package event decodes GitHub webhook deliveries into typed event variants.
// The raw payload is normalized by a per-kind patch step before decoding, and
// unrecognized event kinds are a distinct, non-fatal outcome.
package event

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v72/github"
)

// ErrUnsupportedEvent marks an event-type header this relay does not handle.
// Callers acknowledge such deliveries without processing them.
var ErrUnsupportedEvent = errors.New("unsupported event type")

// DecodeError wraps a payload that could not be decoded into its variant.
type DecodeError struct {
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %q event: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Event is one decoded webhook delivery. Variants are immutable after
// decoding; facet extractors only ever read from them.
type Event interface {
	Kind() string

	// sealed limits the variant set to this package.
	sealed()
}

type Issues struct {
	*github.IssuesEvent
}

type IssueComment struct {
	*github.IssueCommentEvent
}

type PullRequest struct {
	*github.PullRequestEvent
}

type PullRequestReview struct {
	*github.PullRequestReviewEvent
}

type PullRequestReviewComment struct {
	*github.PullRequestReviewCommentEvent
}

type Push struct {
	*github.PushEvent
}

type Ping struct {
	*github.PingEvent
}

func (Issues) Kind() string                   { return "issues" }
func (IssueComment) Kind() string             { return "issue_comment" }
func (PullRequest) Kind() string              { return "pull_request" }
func (PullRequestReview) Kind() string        { return "pull_request_review" }
func (PullRequestReviewComment) Kind() string { return "pull_request_review_comment" }
func (Push) Kind() string                     { return "push" }
func (Ping) Kind() string                     { return "ping" }

func (Issues) sealed()                   {}
func (IssueComment) sealed()             {}
func (PullRequest) sealed()              {}
func (PullRequestReview) sealed()        {}
func (PullRequestReviewComment) sealed() {}
func (Push) sealed()                     {}
func (Ping) sealed()                     {}

// Decode turns a raw delivery body plus its event-type header into a typed
// variant. The variant's patch step runs first (see patch.go). Unknown event
// types return ErrUnsupportedEvent; malformed payloads return a DecodeError
// carrying the parse diagnostic.
func Decode(eventType string, body []byte) (Event, error) {
	switch eventType {
	case "issues", "issue_comment", "pull_request", "pull_request_review",
		"pull_request_review_comment", "push", "ping":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, eventType)
	}

	patched, err := Patch(eventType, body)
	if err != nil {
		return nil, &DecodeError{Kind: eventType, Err: err}
	}

	payload, err := github.ParseWebHook(eventType, patched)
	if err != nil {
		return nil, &DecodeError{Kind: eventType, Err: err}
	}

	switch p := payload.(type) {
	case *github.IssuesEvent:
		return Issues{p}, nil
	case *github.IssueCommentEvent:
		return IssueComment{p}, nil
	case *github.PullRequestEvent:
		return PullRequest{p}, nil
	case *github.PullRequestReviewEvent:
		return PullRequestReview{p}, nil
	case *github.PullRequestReviewCommentEvent:
		return PullRequestReviewComment{p}, nil
	case *github.PushEvent:
		return Push{p}, nil
	case *github.PingEvent:
		return Ping{p}, nil
	default:
		return nil, &DecodeError{Kind: eventType, Err: fmt.Errorf("unexpected payload type %T", payload)}
	}
}
