package event

import (
	"encoding/json"
	"time"
)

// patchFunc normalizes one event kind's raw payload in place. GitHub's
// payloads are not structurally consistent across kinds; the quirks are
// smoothed out here so decoding and facet extraction can stay uniform.
type patchFunc func(payload map[string]any)

var patches = map[string]patchFunc{
	"push":         patchPush,
	"pull_request": patchPullRequest,
}

// Patch applies the payload normalization registered for the given event
// kind. Kinds without a registered patch pass through untouched. Patching is
// mandatory before decoding; Decode is the only caller in the pipeline, but
// the step is exported so tests can exercise it directly.
func Patch(eventType string, body []byte) ([]byte, error) {
	fn, ok := patches[eventType]
	if !ok {
		return body, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	fn(payload)
	return json.Marshal(payload)
}

// patchPush fills in repository.owner.login (push payloads identify the
// owner by "name" where every other kind uses "login") and drops commit
// timestamps that would not survive decoding.
func patchPush(payload map[string]any) {
	if repo, ok := payload["repository"].(map[string]any); ok {
		if owner, ok := repo["owner"].(map[string]any); ok {
			if _, ok := owner["login"]; !ok {
				if name, ok := owner["name"]; ok {
					owner["login"] = name
				}
			}
		}
	}

	if commits, ok := payload["commits"].([]any); ok {
		for _, c := range commits {
			if commit, ok := c.(map[string]any); ok {
				patchCommitTimestamp(commit)
			}
		}
	}
	if head, ok := payload["head_commit"].(map[string]any); ok {
		patchCommitTimestamp(head)
	}
}

// patchCommitTimestamp removes a timestamp the decoder cannot parse. The
// commit then carries the zero timestamp and renders with the fallback text
// instead of failing the whole delivery.
func patchCommitTimestamp(commit map[string]any) {
	ts, ok := commit["timestamp"].(string)
	if !ok {
		return
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		delete(commit, "timestamp")
	}
}

// patchPullRequest defaults pull_request.merged to false. The field is null
// on some action kinds rather than absent.
func patchPullRequest(payload map[string]any) {
	pr, ok := payload["pull_request"].(map[string]any)
	if !ok {
		return
	}
	if merged, ok := pr["merged"]; !ok || merged == nil {
		pr["merged"] = false
	}
}
