// Package facet defines the optional, semantically named views that can be
// derived from a webhook event, together with their markdown renderings.
// Each view is paired with a capability interface; an event variant
// implements only the interfaces whose data its payload carries, so asking a
// variant for a facet it cannot support fails at compile time.
package facet

import (
	"fmt"
	"strings"
	"time"
)

// Repository identifies the repository an event belongs to.
type Repository struct {
	Owner string
	Name  string
	URL   string
}

// Markdown renders the repository as an "[owner/name](url)" link.
func (r Repository) Markdown() string {
	return fmt.Sprintf("[%s/%s](%s)", r.Owner, r.Name, r.URL)
}

// Issue is the issue an event concerns.
type Issue struct {
	Number int
	Title  string
	URL    string
}

// Markdown renders the issue as a "[#num title](url)" link.
func (i Issue) Markdown() string {
	return fmt.Sprintf("[#%d %s](%s)", i.Number, i.Title, i.URL)
}

// PullRequest is the pull request an event concerns.
type PullRequest struct {
	Number int
	Title  string
	URL    string
}

// Markdown renders the pull request as a "[#num title](url)" link.
func (p PullRequest) Markdown() string {
	return fmt.Sprintf("[#%d %s](%s)", p.Number, p.Title, p.URL)
}

// Action is the human-readable description of what happened: a verb, the
// actor who triggered it, and (for assignment verbs) the target assignee.
type Action struct {
	Verb     string
	Actor    string
	Assignee string // empty unless the verb targets an assignee
}

func (a Action) Markdown() string {
	if a.Assignee != "" {
		return fmt.Sprintf("%s to `%s` by `%s`", a.Verb, a.Assignee, a.Actor)
	}
	return fmt.Sprintf("%s by `%s`", a.Verb, a.Actor)
}

// Assignee is a single assignee login.
type Assignee struct {
	Name string
}

func (a Assignee) Markdown() string {
	return a.Name
}

// Label is an issue or pull request label.
type Label struct {
	Name  string
	Color string
	URL   string
}

func (l Label) Markdown() string {
	return fmt.Sprintf("[%s](%s)", l.Name, l.URL)
}

// commitTimeLayout matches the line format the previous relay emitted,
// e.g. "Mon Jan  2 15:04:05 2006 +0900".
const commitTimeLayout = "Mon Jan _2 15:04:05 2006 -0700"

// Commit is one pushed commit.
type Commit struct {
	ID        string
	URL       string
	Message   string
	Author    string
	Timestamp time.Time
	// TimeError is set when the provider timestamp failed to parse; the
	// rendering then carries the literal "time parse error".
	TimeError bool
}

// Markdown renders "[shortid](url) - message time author" with a 7-character
// commit ID.
func (c Commit) Markdown() string {
	id := c.ID
	if len(id) > 7 {
		id = id[:7]
	}
	t := "time parse error"
	if !c.TimeError {
		t = c.Timestamp.Format(commitTimeLayout)
	}
	return fmt.Sprintf("[%s](%s) - %s %s %s", id, c.URL, c.Message, t, c.Author)
}

// Comment is a comment body. For "opened" semantics it may carry the issue
// or pull request description instead of an actual comment.
type Comment struct {
	Body string
}

func (c Comment) Markdown() string {
	return c.Body
}

// Review is a pull request review or review comment location.
type Review struct {
	URL  string
	Body string
}

// Markdown renders a link to the review with the given link title.
func (r Review) Markdown(title string) string {
	return fmt.Sprintf("[%s](%s)", title, r.URL)
}

// Capability interfaces. An event variant implements a source interface only
// when its payload kind carries the underlying data; the content builder's
// methods accept these interfaces, so unsupported facet queries do not
// compile. Extractors returning a bool report availability on this concrete
// payload (e.g. a pull request with no description has no Comment facet).

type RepoSource interface {
	Repo() (Repository, bool)
}

type IssueSource interface {
	Issue() (Issue, bool)
}

type PullRequestSource interface {
	PullRequest() (PullRequest, bool)
}

type ActionSource interface {
	Action() (Action, bool)
}

type AssigneeSource interface {
	Assignees() []Assignee
}

type LabelSource interface {
	Labels() []Label
}

type CommitSource interface {
	Commits() []Commit
}

type CommentSource interface {
	Comment() (Comment, bool)
}

type ReviewSource interface {
	Review() (Review, bool)
}

// TitleVerb converts a provider action string such as "ready_for_review"
// into the verb form used in messages ("ReadyForReview", "Opened", ...).
func TitleVerb(action string) string {
	parts := strings.Split(action, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
