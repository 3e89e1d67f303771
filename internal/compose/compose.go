// Package compose turns decoded webhook events into formatted traQ messages.
// Fragment accumulation (Content) and final assembly (MessageBuilder) are
// pure; composition is per event variant.
package compose

import (
	"traqhook.app/relay/internal/event"
)

// Compose renders the relay message for one decoded event. ok is false when
// the event intentionally produces no message: pings, empty pushes, and
// payloads whose required facets are unavailable.
func Compose(ev event.Event) (Message, bool) {
	switch e := ev.(type) {
	case event.Issues:
		return composeIssues(e)
	case event.IssueComment:
		return composeIssueComment(e)
	case event.PullRequest:
		return composePullRequest(e)
	case event.PullRequestReview:
		return composePullRequestReview(e)
	case event.PullRequestReviewComment:
		return composePullRequestReviewComment(e)
	case event.Push:
		return composePush(e)
	default:
		// ping and anything future land here: acknowledged, nothing sent.
		return Message{}, false
	}
}

func composeIssues(e event.Issues) (Message, bool) {
	title, ok := NewContent().Push("Issue").Issue(e).JoinSpace()
	if !ok {
		return Message{}, false
	}

	b := NewMessage().Title(title).Repo(e)

	if line, ok := NewContent().Action(e).JoinSpace(); ok {
		b.Msg(line)
	}

	switch e.GetAction() {
	case "opened":
		if line, ok := NewContent().Comment(e).JoinSpace(); ok && line != "" {
			b.Msg(line)
		}
	case "assigned", "unassigned":
		if line, ok := NewContent().Push("Assignees:").Assignees(e).JoinSpace(); ok {
			b.Msg(line)
		}
	case "labeled", "unlabeled":
		if line, ok := NewContent().Push("Labels:").Labels(e).JoinSpace(); ok {
			b.Msg(line)
		}
	}

	return build(b)
}

func composeIssueComment(e event.IssueComment) (Message, bool) {
	title, ok := NewContent().Push("Comment").Issue(e).JoinSpace()
	if !ok {
		return Message{}, false
	}

	b := NewMessage().Title(title).Repo(e)

	if line, ok := NewContent().Action(e).JoinSpace(); ok {
		b.Msg(line)
	}
	if line, ok := NewContent().Comment(e).JoinSpace(); ok && line != "" {
		b.Msg(line)
	}

	return build(b)
}

func composePullRequest(e event.PullRequest) (Message, bool) {
	title, ok := NewContent().Push("Pull Request").PullRequest(e).JoinSpace()
	if !ok {
		return Message{}, false
	}

	b := NewMessage().Title(title).Repo(e)

	if line, ok := NewContent().Action(e).JoinSpace(); ok {
		b.Msg(line)
	}

	switch e.GetAction() {
	case "opened":
		if line, ok := NewContent().Comment(e).JoinSpace(); ok && line != "" {
			b.Msg(line)
		}
	case "assigned", "unassigned":
		if line, ok := NewContent().Push("Assignees:").Assignees(e).JoinSpace(); ok {
			b.Msg(line)
		}
	case "labeled", "unlabeled":
		if line, ok := NewContent().Push("Labels:").Labels(e).JoinSpace(); ok {
			b.Msg(line)
		}
	}

	return build(b)
}

func composePullRequestReview(e event.PullRequestReview) (Message, bool) {
	title, ok := NewContent().Push("Review").PullRequest(e).JoinSpace()
	if !ok {
		return Message{}, false
	}

	b := NewMessage().Title(title).Repo(e)

	if line, ok := NewContent().Action(e).JoinSpace(); ok {
		b.Msg(line)
	}
	if line, ok := NewContent().Comment(e).JoinSpace(); ok && line != "" {
		b.Msg(line)
	}

	return build(b)
}

func composePullRequestReviewComment(e event.PullRequestReviewComment) (Message, bool) {
	title, ok := NewContent().Push("Review Comment").PullRequest(e).JoinSpace()
	if !ok {
		return Message{}, false
	}

	b := NewMessage().Title(title).Repo(e)

	if line, ok := NewContent().Review(e, "Review Comment").JoinSpace(); ok && line != "" {
		b.Msg(line)
	}
	if line, ok := NewContent().Action(e).JoinSpace(); ok {
		b.Msg(line)
	}
	if line, ok := NewContent().Comment(e).JoinSpace(); ok && line != "" {
		b.Msg(line)
	}

	return build(b)
}

func composePush(e event.Push) (Message, bool) {
	// The action text doubles as the title; it aborts on an empty push, so
	// pushes with no commits relay nothing.
	title, ok := NewContent().Action(e).JoinSpace()
	if !ok {
		return Message{}, false
	}

	b := NewMessage().Title(title).Repo(e)

	if lines, ok := NewContent().Commits(e).JoinLines(); ok {
		b.Msg(lines)
	}

	return build(b)
}

func build(b *MessageBuilder) (Message, bool) {
	msg, err := b.Build()
	if err != nil {
		// Title or footer facet unavailable on this payload: nothing sane to
		// relay.
		return Message{}, false
	}
	return msg, true
}
