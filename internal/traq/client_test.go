package traq_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"traqhook.app/relay/core/config"
	"traqhook.app/relay/internal/signature"
	"traqhook.app/relay/internal/traq"
)

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		received *http.Request
		body     string
		status   int
	)

	BeforeEach(func() {
		status = http.StatusNoContent
		received = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received = r
			b, err := io.ReadAll(r.Body)
			Expect(err).NotTo(HaveOccurred())
			body = string(b)
			w.WriteHeader(status)
		}))
		DeferCleanup(server.Close)
	})

	newClient := func() *traq.Client {
		return traq.New(config.TraqConfig{
			Origin:        server.URL,
			WebhookID:     "wh-1",
			WebhookSecret: "traq-secret",
		}, server.Client())
	}

	It("posts the message as signed plain text to the webhook endpoint", func() {
		err := newClient().Post(context.Background(), "### hello\n")
		Expect(err).NotTo(HaveOccurred())

		Expect(received).NotTo(BeNil())
		Expect(received.Method).To(Equal(http.MethodPost))
		Expect(received.URL.Path).To(Equal("/api/v3/webhooks/wh-1"))
		Expect(received.Header.Get("Content-Type")).To(Equal("text/plain; charset=utf-8"))
		Expect(received.Header.Get("X-TRAQ-Signature")).To(
			Equal(signature.Sign([]byte("traq-secret"), "### hello\n")))
		Expect(body).To(Equal("### hello\n"))
	})

	It("returns an error for a non-2xx response", func() {
		status = http.StatusInternalServerError
		err := newClient().Post(context.Background(), "msg")
		Expect(err).To(MatchError(ContainSubstring("HTTP 500")))
	})

	It("returns an error when the endpoint is unreachable", func() {
		client := traq.New(config.TraqConfig{
			Origin:        "http://127.0.0.1:1",
			WebhookID:     "wh-1",
			WebhookSecret: "traq-secret",
		}, nil)
		Expect(client.Post(context.Background(), "msg")).To(HaveOccurred())
	})
})
