package compose

import (
	"fmt"
	"strings"

	"traqhook.app/relay/internal/facet"
)

// listLimit is how many list items render before the remainder collapses
// into a count suffix.
const listLimit = 2

// Content accumulates ordered text fragments for one message. Fragment order
// is the call order and is preserved through the final join.
//
// Absence handling differs by facet and is part of the wire-visible contract:
// Issue, Repo, Action and Commits abort the whole sequence (the builder
// enters an absorbing empty state and every later call is ignored), while
// PullRequest, Comment and Review simply emit nothing for that call.
// Assignees and Labels always emit their truncated rendering, even when the
// list is empty.
type Content struct {
	frags []string
	dead  bool
}

func NewContent() *Content {
	return &Content{}
}

func (c *Content) push(text string) {
	if !c.dead {
		c.frags = append(c.frags, text)
	}
}

func (c *Content) abort() {
	c.dead = true
	c.frags = nil
}

// Push appends a literal fragment.
func (c *Content) Push(text string) *Content {
	c.push(text)
	return c
}

// Issue appends the issue link; an absent issue aborts the sequence.
func (c *Content) Issue(src facet.IssueSource) *Content {
	if i, ok := src.Issue(); ok {
		c.push(i.Markdown())
	} else {
		c.abort()
	}
	return c
}

// Repo appends the repository link; an absent repository aborts the sequence.
func (c *Content) Repo(src facet.RepoSource) *Content {
	if r, ok := src.Repo(); ok {
		c.push(r.Markdown())
	} else {
		c.abort()
	}
	return c
}

// Action appends the action line; an absent action aborts the sequence.
func (c *Content) Action(src facet.ActionSource) *Content {
	if a, ok := src.Action(); ok {
		c.push(a.Markdown())
	} else {
		c.abort()
	}
	return c
}

// PullRequest appends the pull request link; absent is skipped.
func (c *Content) PullRequest(src facet.PullRequestSource) *Content {
	if p, ok := src.PullRequest(); ok {
		c.push(p.Markdown())
	}
	return c
}

// Comment appends the comment body; absent is skipped.
func (c *Content) Comment(src facet.CommentSource) *Content {
	if cm, ok := src.Comment(); ok {
		c.push(cm.Markdown())
	}
	return c
}

// Review appends a link to the review with the given link title; absent is
// skipped.
func (c *Content) Review(src facet.ReviewSource, title string) *Content {
	if r, ok := src.Review(); ok {
		c.push(r.Markdown(title))
	}
	return c
}

// Assignees appends the truncated assignee list. Always emits, even for an
// empty list.
func (c *Content) Assignees(src facet.AssigneeSource) *Content {
	items := make([]string, 0)
	for _, a := range src.Assignees() {
		items = append(items, a.Markdown())
	}
	c.push(truncate(dedupe(items), listLimit))
	return c
}

// Labels appends the truncated label list. Always emits, even for an empty
// list.
func (c *Content) Labels(src facet.LabelSource) *Content {
	items := make([]string, 0)
	for _, l := range src.Labels() {
		items = append(items, l.Markdown())
	}
	c.push(truncate(dedupe(items), listLimit))
	return c
}

// Commits appends one fragment per commit; an empty commit list aborts the
// sequence.
func (c *Content) Commits(src facet.CommitSource) *Content {
	commits := src.Commits()
	if len(commits) == 0 {
		c.abort()
		return c
	}
	for _, cm := range commits {
		c.push(cm.Markdown())
	}
	return c
}

// Join finalizes the sequence with the given separator. ok is false when the
// sequence was aborted; an aborted sequence produces no fragment at all.
func (c *Content) Join(separator string) (string, bool) {
	if c.dead {
		return "", false
	}
	return strings.Join(c.frags, separator), true
}

func (c *Content) JoinSpace() (string, bool) {
	return c.Join(" ")
}

func (c *Content) JoinTight() (string, bool) {
	return c.Join("")
}

func (c *Content) JoinLines() (string, bool) {
	return c.Join("\n")
}

// dedupe removes duplicate items, keeping first occurrences in given order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// truncate renders a short list with a leading comma per item, and a long
// one as the first `limit` items run together plus a remainder count. Both
// renderings (including the "mores" literal) match the previous relay
// byte-for-byte; downstream consumers pattern-match on them.
func truncate(items []string, limit int) string {
	if len(items) <= limit {
		var b strings.Builder
		for _, it := range items {
			b.WriteString(",")
			b.WriteString(it)
		}
		return b.String()
	}
	return items[0] + items[1] + fmt.Sprintf("...%d mores", len(items)-limit)
}
