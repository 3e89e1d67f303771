package webhook_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"traqhook.app/relay/common/id"
	"traqhook.app/relay/internal/http/handler/webhook"
)

const testSecret = "hook-secret"

type fakeDeliverer struct {
	messages []string
	err      error
}

func (f *fakeDeliverer) Post(ctx context.Context, message string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func signedRequest(eventType string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-Hub-Signature-256", sign(body))
	return req
}

var issuesBody = []byte(`{
	"action": "opened",
	"issue": {"number": 42, "title": "Bug", "html_url": "https://x/42", "body": "It broke"},
	"repository": {"name": "widget", "html_url": "https://x", "owner": {"login": "acme"}},
	"sender": {"login": "octocat"}
}`)

var _ = Describe("GitHubWebhookHandler", func() {
	var (
		router    *gin.Engine
		deliverer *fakeDeliverer
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		Expect(id.Init(1)).To(Succeed())

		deliverer = &fakeDeliverer{}
		h := webhook.NewGitHubWebhookHandler(testSecret, deliverer)

		router = gin.New()
		router.POST("/webhooks/github", h.HandleEvent)
	})

	It("relays a correctly signed issues event", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedRequest("issues", issuesBody))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(deliverer.messages).To(HaveLen(1))

		msg := deliverer.messages[0]
		Expect(msg).To(ContainSubstring("[#42 Bug](https://x/42)"))
		Expect(msg).To(ContainSubstring("Opened by `octocat`"))
		Expect(msg).To(ContainSubstring("[acme/widget](https://x)"))
	})

	It("rejects a request without a signature", func() {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewBuffer(issuesBody))
		req.Header.Set("X-GitHub-Event", "issues")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(deliverer.messages).To(BeEmpty())
	})

	It("rejects a request with a wrong signature", func() {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/github", bytes.NewBuffer(issuesBody))
		req.Header.Set("X-GitHub-Event", "issues")
		req.Header.Set("X-Hub-Signature-256", sign([]byte("different body")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(deliverer.messages).To(BeEmpty())
	})

	It("returns 400 for a signed but malformed payload", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedRequest("issues", []byte(`{not json`)))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(deliverer.messages).To(BeEmpty())
	})

	It("acknowledges unsupported event types without relaying", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedRequest("watch", []byte(`{"action": "started"}`)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("not supported"))
		Expect(deliverer.messages).To(BeEmpty())
	})

	It("acknowledges ping events without relaying", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedRequest("ping", []byte(`{"zen": "Keep it simple.", "hook_id": 1}`)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"ok"`))
		Expect(w.Body.String()).NotTo(ContainSubstring("nothing to relay"))
		Expect(deliverer.messages).To(BeEmpty())
	})

	It("surfaces delivery failures as a server error", func() {
		deliverer.err = fmt.Errorf("traq: HTTP 500 from webhook endpoint")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedRequest("issues", issuesBody))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
