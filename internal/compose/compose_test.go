package compose_test

import (
	"github.com/google/go-github/v72/github"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"traqhook.app/relay/internal/compose"
	"traqhook.app/relay/internal/event"
)

func testRepo() *github.Repository {
	return &github.Repository{
		Name:    github.Ptr("widget"),
		HTMLURL: github.Ptr("https://x"),
		Owner:   &github.User{Login: github.Ptr("acme")},
	}
}

var _ = Describe("Compose", func() {
	Describe("issues events", func() {
		It("relays an opened issue with title, action and footer", func() {
			ev := event.Issues{IssuesEvent: &github.IssuesEvent{
				Action: github.Ptr("opened"),
				Issue: &github.Issue{
					Number:  github.Ptr(42),
					Title:   github.Ptr("Bug"),
					HTMLURL: github.Ptr("https://x/42"),
					Body:    github.Ptr("It broke"),
				},
				Repo:   testRepo(),
				Sender: &github.User{Login: github.Ptr("octocat")},
			}}

			msg, ok := compose.Compose(ev)
			Expect(ok).To(BeTrue())

			text := msg.String()
			Expect(text).To(ContainSubstring("### Issue [#42 Bug](https://x/42)\n"))
			Expect(text).To(ContainSubstring("\nOpened by `octocat`\n"))
			Expect(text).To(ContainSubstring("\nIt broke\n"))
			Expect(text).To(ContainSubstring("\n##### [acme/widget](https://x)\n"))
		})

		It("names the target assignee on assignment", func() {
			ev := event.Issues{IssuesEvent: &github.IssuesEvent{
				Action: github.Ptr("assigned"),
				Issue: &github.Issue{
					Number:    github.Ptr(7),
					Title:     github.Ptr("Task"),
					HTMLURL:   github.Ptr("https://x/7"),
					Assignees: []*github.User{{Login: github.Ptr("dev")}},
				},
				Assignee: &github.User{Login: github.Ptr("dev")},
				Repo:     testRepo(),
				Sender:   &github.User{Login: github.Ptr("octocat")},
			}}

			msg, ok := compose.Compose(ev)
			Expect(ok).To(BeTrue())
			Expect(msg.String()).To(ContainSubstring("Assigned to `dev` by `octocat`"))
			Expect(msg.String()).To(ContainSubstring("Assignees: ,dev"))
		})

		It("produces no message when the issue facet is unavailable", func() {
			ev := event.Issues{IssuesEvent: &github.IssuesEvent{
				Action: github.Ptr("opened"),
				Repo:   testRepo(),
				Sender: &github.User{Login: github.Ptr("octocat")},
			}}

			_, ok := compose.Compose(ev)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("issue comment events", func() {
		It("relays the comment body", func() {
			ev := event.IssueComment{IssueCommentEvent: &github.IssueCommentEvent{
				Action: github.Ptr("created"),
				Issue: &github.Issue{
					Number:  github.Ptr(42),
					Title:   github.Ptr("Bug"),
					HTMLURL: github.Ptr("https://x/42"),
				},
				Comment: &github.IssueComment{Body: github.Ptr("me too")},
				Repo:    testRepo(),
				Sender:  &github.User{Login: github.Ptr("octocat")},
			}}

			msg, ok := compose.Compose(ev)
			Expect(ok).To(BeTrue())

			text := msg.String()
			Expect(text).To(ContainSubstring("### Comment [#42 Bug](https://x/42)"))
			Expect(text).To(ContainSubstring("Created by `octocat`"))
			Expect(text).To(ContainSubstring("me too"))
		})
	})

	Describe("pull request events", func() {
		prEvent := func(action string, merged bool) event.PullRequest {
			return event.PullRequest{PullRequestEvent: &github.PullRequestEvent{
				Action: github.Ptr(action),
				Number: github.Ptr(5),
				PullRequest: &github.PullRequest{
					Number:  github.Ptr(5),
					Title:   github.Ptr("Add feature"),
					HTMLURL: github.Ptr("https://x/pull/5"),
					Merged:  github.Ptr(merged),
				},
				Repo:   testRepo(),
				Sender: &github.User{Login: github.Ptr("octocat")},
			}}
		}

		It("renders a merged close as Merged", func() {
			msg, ok := compose.Compose(prEvent("closed", true))
			Expect(ok).To(BeTrue())
			Expect(msg.String()).To(ContainSubstring("Merged by `octocat`"))
			Expect(msg.String()).NotTo(ContainSubstring("Closed"))
		})

		It("renders an unmerged close as Closed", func() {
			msg, ok := compose.Compose(prEvent("closed", false))
			Expect(ok).To(BeTrue())
			Expect(msg.String()).To(ContainSubstring("Closed by `octocat`"))
		})

		It("titles the message with the pull request link", func() {
			msg, ok := compose.Compose(prEvent("opened", false))
			Expect(ok).To(BeTrue())
			Expect(msg.String()).To(HavePrefix("### Pull Request [#5 Add feature](https://x/pull/5)\n"))
		})
	})

	Describe("review events", func() {
		It("relays a submitted review with its body", func() {
			ev := event.PullRequestReview{PullRequestReviewEvent: &github.PullRequestReviewEvent{
				Action: github.Ptr("submitted"),
				Review: &github.PullRequestReview{
					Body:    github.Ptr("LGTM"),
					HTMLURL: github.Ptr("https://x/pull/5#review-1"),
				},
				PullRequest: &github.PullRequest{
					Number:  github.Ptr(5),
					Title:   github.Ptr("Add feature"),
					HTMLURL: github.Ptr("https://x/pull/5"),
				},
				Repo:   testRepo(),
				Sender: &github.User{Login: github.Ptr("reviewer")},
			}}

			msg, ok := compose.Compose(ev)
			Expect(ok).To(BeTrue())

			text := msg.String()
			Expect(text).To(ContainSubstring("### Review [#5 Add feature](https://x/pull/5)"))
			Expect(text).To(ContainSubstring("Submitted by `reviewer`"))
			Expect(text).To(ContainSubstring("LGTM"))
		})

		It("links the review comment location", func() {
			ev := event.PullRequestReviewComment{PullRequestReviewCommentEvent: &github.PullRequestReviewCommentEvent{
				Action: github.Ptr("created"),
				Comment: &github.PullRequestComment{
					Body:    github.Ptr("nit: rename this"),
					HTMLURL: github.Ptr("https://x/pull/5#discussion-9"),
				},
				PullRequest: &github.PullRequest{
					Number:  github.Ptr(5),
					Title:   github.Ptr("Add feature"),
					HTMLURL: github.Ptr("https://x/pull/5"),
				},
				Repo:   testRepo(),
				Sender: &github.User{Login: github.Ptr("reviewer")},
			}}

			msg, ok := compose.Compose(ev)
			Expect(ok).To(BeTrue())

			text := msg.String()
			Expect(text).To(ContainSubstring("### Review Comment [#5 Add feature](https://x/pull/5)"))
			Expect(text).To(ContainSubstring("[Review Comment](https://x/pull/5#discussion-9)"))
			Expect(text).To(ContainSubstring("nit: rename this"))
		})
	})

	Describe("push events", func() {
		pushEvent := func(commits int) event.Push {
			cs := make([]*github.HeadCommit, 0, commits)
			for i := 0; i < commits; i++ {
				cs = append(cs, &github.HeadCommit{
					ID:      github.Ptr("0123456789abcdef"),
					URL:     github.Ptr("https://x/commit/0123456"),
					Message: github.Ptr("fix"),
					Author:  &github.CommitAuthor{Name: github.Ptr("Octo Cat")},
				})
			}
			return event.Push{PushEvent: &github.PushEvent{
				Ref:     github.Ptr("refs/heads/main"),
				Commits: cs,
				Repo: &github.PushEventRepository{
					Name:    github.Ptr("widget"),
					HTMLURL: github.Ptr("https://x"),
					Owner:   &github.User{Login: github.Ptr("acme")},
				},
				Sender: &github.User{Login: github.Ptr("octocat")},
			}}
		}

		It("produces no message for an empty push", func() {
			_, ok := compose.Compose(pushEvent(0))
			Expect(ok).To(BeFalse())
		})

		It("titles the message with the push summary", func() {
			msg, ok := compose.Compose(pushEvent(2))
			Expect(ok).To(BeTrue())

			text := msg.String()
			Expect(text).To(HavePrefix("### 2 commits pushed to `refs/heads/main` by `octocat`\n"))
			Expect(text).To(ContainSubstring("[0123456](https://x/commit/0123456) - fix"))
			Expect(text).To(ContainSubstring("##### [acme/widget](https://x)"))
		})
	})

	It("produces no message for ping events", func() {
		ev := event.Ping{PingEvent: &github.PingEvent{
			Zen: github.Ptr("Keep it simple."),
		}}
		_, ok := compose.Compose(ev)
		Expect(ok).To(BeFalse())
	})
})
