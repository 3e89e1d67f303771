package event

import (
	"fmt"

	"github.com/google/go-github/v72/github"

	"traqhook.app/relay/internal/facet"
)

// Capability membership per variant. A variant appears under a facet
// interface only when its payload kind carries the data; missing entries are
// deliberate, not omissions.
var (
	_ facet.RepoSource = Issues{}
	_ facet.RepoSource = IssueComment{}
	_ facet.RepoSource = PullRequest{}
	_ facet.RepoSource = PullRequestReview{}
	_ facet.RepoSource = PullRequestReviewComment{}
	_ facet.RepoSource = Push{}

	_ facet.IssueSource = Issues{}
	_ facet.IssueSource = IssueComment{}

	_ facet.PullRequestSource = PullRequest{}
	_ facet.PullRequestSource = PullRequestReview{}
	_ facet.PullRequestSource = PullRequestReviewComment{}

	_ facet.ActionSource = Issues{}
	_ facet.ActionSource = IssueComment{}
	_ facet.ActionSource = PullRequest{}
	_ facet.ActionSource = PullRequestReview{}
	_ facet.ActionSource = PullRequestReviewComment{}
	_ facet.ActionSource = Push{}

	_ facet.AssigneeSource = Issues{}
	_ facet.AssigneeSource = IssueComment{}
	_ facet.AssigneeSource = PullRequest{}
	_ facet.AssigneeSource = PullRequestReview{}
	_ facet.AssigneeSource = PullRequestReviewComment{}

	_ facet.LabelSource = Issues{}
	_ facet.LabelSource = IssueComment{}
	_ facet.LabelSource = PullRequest{}

	_ facet.CommitSource = Push{}

	_ facet.CommentSource = Issues{}
	_ facet.CommentSource = IssueComment{}
	_ facet.CommentSource = PullRequest{}
	_ facet.CommentSource = PullRequestReview{}
	_ facet.CommentSource = PullRequestReviewComment{}

	_ facet.ReviewSource = PullRequestReview{}
	_ facet.ReviewSource = PullRequestReviewComment{}
)

// assigneeVerb reports whether an action verb targets an assignee; only then
// does the rendered action line name one.
func assigneeVerb(action string) bool {
	return action == "assigned" || action == "unassigned"
}

func repoFacet(r *github.Repository) (facet.Repository, bool) {
	if r == nil {
		return facet.Repository{}, false
	}
	return facet.Repository{
		Owner: r.GetOwner().GetLogin(),
		Name:  r.GetName(),
		URL:   r.GetHTMLURL(),
	}, true
}

func issueFacet(i *github.Issue) (facet.Issue, bool) {
	if i == nil {
		return facet.Issue{}, false
	}
	return facet.Issue{
		Number: i.GetNumber(),
		Title:  i.GetTitle(),
		URL:    i.GetHTMLURL(),
	}, true
}

func pullRequestFacet(p *github.PullRequest) (facet.PullRequest, bool) {
	if p == nil {
		return facet.PullRequest{}, false
	}
	return facet.PullRequest{
		Number: p.GetNumber(),
		Title:  p.GetTitle(),
		URL:    p.GetHTMLURL(),
	}, true
}

func assigneeFacets(users []*github.User) []facet.Assignee {
	assignees := make([]facet.Assignee, 0, len(users))
	for _, u := range users {
		assignees = append(assignees, facet.Assignee{Name: u.GetLogin()})
	}
	return assignees
}

func labelFacets(labels []*github.Label) []facet.Label {
	out := make([]facet.Label, 0, len(labels))
	for _, l := range labels {
		out = append(out, facet.Label{
			Name:  l.GetName(),
			Color: l.GetColor(),
			URL:   l.GetURL(),
		})
	}
	return out
}

func commentFacet(body string) (facet.Comment, bool) {
	if body == "" {
		return facet.Comment{}, false
	}
	return facet.Comment{Body: body}, true
}

// Issues

func (e Issues) Repo() (facet.Repository, bool) {
	return repoFacet(e.GetRepo())
}

func (e Issues) Issue() (facet.Issue, bool) {
	return issueFacet(e.GetIssue())
}

func (e Issues) Action() (facet.Action, bool) {
	verb := e.GetAction()
	if verb == "" {
		return facet.Action{}, false
	}
	a := facet.Action{
		Verb:  facet.TitleVerb(verb),
		Actor: e.GetSender().GetLogin(),
	}
	if assigneeVerb(verb) {
		a.Assignee = e.GetAssignee().GetLogin()
		if a.Assignee == "" {
			a.Assignee = e.GetIssue().GetAssignee().GetLogin()
		}
	}
	return a, true
}

func (e Issues) Assignees() []facet.Assignee {
	return assigneeFacets(e.GetIssue().Assignees)
}

func (e Issues) Labels() []facet.Label {
	return labelFacets(e.GetIssue().Labels)
}

// Comment on an issues event is the issue description; newly opened issues
// relay their body as the first message.
func (e Issues) Comment() (facet.Comment, bool) {
	return commentFacet(e.GetIssue().GetBody())
}

// IssueComment

func (e IssueComment) Repo() (facet.Repository, bool) {
	return repoFacet(e.GetRepo())
}

func (e IssueComment) Issue() (facet.Issue, bool) {
	return issueFacet(e.GetIssue())
}

func (e IssueComment) Action() (facet.Action, bool) {
	verb := e.GetAction()
	if verb == "" {
		return facet.Action{}, false
	}
	return facet.Action{
		Verb:  facet.TitleVerb(verb),
		Actor: e.GetSender().GetLogin(),
	}, true
}

func (e IssueComment) Assignees() []facet.Assignee {
	return assigneeFacets(e.GetIssue().Assignees)
}

func (e IssueComment) Labels() []facet.Label {
	return labelFacets(e.GetIssue().Labels)
}

func (e IssueComment) Comment() (facet.Comment, bool) {
	return commentFacet(e.GetComment().GetBody())
}

// PullRequest

func (e PullRequest) Repo() (facet.Repository, bool) {
	return repoFacet(e.GetRepo())
}

func (e PullRequest) PullRequest() (facet.PullRequest, bool) {
	return pullRequestFacet(e.GetPullRequest())
}

// Action distinguishes a merge from a plain close: GitHub reports both as
// "closed" and only the merged flag tells them apart.
func (e PullRequest) Action() (facet.Action, bool) {
	verb := e.GetAction()
	if verb == "" {
		return facet.Action{}, false
	}

	rendered := facet.TitleVerb(verb)
	if verb == "closed" {
		if e.GetPullRequest().GetMerged() {
			rendered = "Merged"
		} else {
			rendered = "Closed"
		}
	}

	a := facet.Action{
		Verb:  rendered,
		Actor: e.GetSender().GetLogin(),
	}
	if assigneeVerb(verb) {
		a.Assignee = e.GetAssignee().GetLogin()
		if a.Assignee == "" {
			a.Assignee = e.GetPullRequest().GetAssignee().GetLogin()
		}
	}
	return a, true
}

func (e PullRequest) Assignees() []facet.Assignee {
	return assigneeFacets(e.GetPullRequest().Assignees)
}

func (e PullRequest) Labels() []facet.Label {
	return labelFacets(e.GetPullRequest().Labels)
}

func (e PullRequest) Comment() (facet.Comment, bool) {
	return commentFacet(e.GetPullRequest().GetBody())
}

// PullRequestReview

func (e PullRequestReview) Repo() (facet.Repository, bool) {
	return repoFacet(e.GetRepo())
}

func (e PullRequestReview) PullRequest() (facet.PullRequest, bool) {
	return pullRequestFacet(e.GetPullRequest())
}

func (e PullRequestReview) Action() (facet.Action, bool) {
	verb := e.GetAction()
	if verb == "" {
		return facet.Action{}, false
	}
	return facet.Action{
		Verb:  facet.TitleVerb(verb),
		Actor: e.GetSender().GetLogin(),
	}, true
}

func (e PullRequestReview) Assignees() []facet.Assignee {
	return assigneeFacets(e.GetPullRequest().Assignees)
}

func (e PullRequestReview) Comment() (facet.Comment, bool) {
	return commentFacet(e.GetReview().GetBody())
}

func (e PullRequestReview) Review() (facet.Review, bool) {
	r := e.GetReview()
	if r == nil {
		return facet.Review{}, false
	}
	return facet.Review{URL: r.GetHTMLURL(), Body: r.GetBody()}, true
}

// PullRequestReviewComment

func (e PullRequestReviewComment) Repo() (facet.Repository, bool) {
	return repoFacet(e.GetRepo())
}

func (e PullRequestReviewComment) PullRequest() (facet.PullRequest, bool) {
	return pullRequestFacet(e.GetPullRequest())
}

func (e PullRequestReviewComment) Action() (facet.Action, bool) {
	verb := e.GetAction()
	if verb == "" {
		return facet.Action{}, false
	}
	return facet.Action{
		Verb:  facet.TitleVerb(verb),
		Actor: e.GetSender().GetLogin(),
	}, true
}

func (e PullRequestReviewComment) Assignees() []facet.Assignee {
	return assigneeFacets(e.GetPullRequest().Assignees)
}

func (e PullRequestReviewComment) Comment() (facet.Comment, bool) {
	return commentFacet(e.GetComment().GetBody())
}

func (e PullRequestReviewComment) Review() (facet.Review, bool) {
	c := e.GetComment()
	if c == nil {
		return facet.Review{}, false
	}
	return facet.Review{URL: c.GetHTMLURL(), Body: c.GetBody()}, true
}

// Push

func (e Push) Repo() (facet.Repository, bool) {
	r := e.GetRepo()
	if r == nil {
		return facet.Repository{}, false
	}
	return facet.Repository{
		Owner: r.GetOwner().GetLogin(),
		Name:  r.GetName(),
		URL:   r.GetHTMLURL(),
	}, true
}

// Action renders "N commit(s) pushed to `ref`"; an empty push has no action
// facet at all.
func (e Push) Action() (facet.Action, bool) {
	n := len(e.PushEvent.Commits)
	if n == 0 {
		return facet.Action{}, false
	}

	noun := "commit"
	if n > 1 {
		noun = "commits"
	}
	return facet.Action{
		Verb:  fmt.Sprintf("%d %s pushed to `%s`", n, noun, e.GetRef()),
		Actor: e.GetSender().GetLogin(),
	}, true
}

func (e Push) Commits() []facet.Commit {
	commits := make([]facet.Commit, 0, len(e.PushEvent.Commits))
	for _, c := range e.PushEvent.Commits {
		ts := c.GetTimestamp()
		commits = append(commits, facet.Commit{
			ID:        c.GetID(),
			URL:       c.GetURL(),
			Message:   c.GetMessage(),
			Author:    c.GetAuthor().GetName(),
			Timestamp: ts.Time,
			TimeError: ts.Time.IsZero(),
		})
	}
	return commits
}
