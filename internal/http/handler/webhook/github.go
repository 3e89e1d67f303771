package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"traqhook.app/relay/common/id"
	"traqhook.app/relay/common/logger"
	"traqhook.app/relay/internal/compose"
	"traqhook.app/relay/internal/event"
	"traqhook.app/relay/internal/facet"
	"traqhook.app/relay/internal/signature"
)

const (
	eventTypeHeader = "X-GitHub-Event"
	signatureHdr    = "X-Hub-Signature-256"
)

// Deliverer relays a composed message to the downstream chat webhook.
type Deliverer interface {
	Post(ctx context.Context, message string) error
}

// GitHubWebhookHandler runs the full pipeline for one delivery: signature
// verification, decoding, composition, outbound delivery. All state is
// request-scoped; the handler itself only holds the read-only secret and the
// delivery client, so it is safe for concurrent requests.
type GitHubWebhookHandler struct {
	secret    []byte
	deliverer Deliverer
}

func NewGitHubWebhookHandler(secret string, deliverer Deliverer) *GitHubWebhookHandler {
	return &GitHubWebhookHandler{
		secret:    []byte(secret),
		deliverer: deliverer,
	}
}

func (h *GitHubWebhookHandler) HandleEvent(c *gin.Context) {
	eventType := c.GetHeader(eventTypeHeader)

	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
		DeliveryID: logger.Ptr(id.New()),
		EventType:  logger.Ptr(eventType),
	})

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	sig := c.GetHeader(signatureHdr)
	if sig == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing signature"})
		return
	}
	if !signature.Verify(h.secret, body, sig) {
		slog.WarnContext(ctx, "webhook signature mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	ev, err := event.Decode(eventType, body)
	if errors.Is(err, event.ErrUnsupportedEvent) {
		slog.InfoContext(ctx, "unsupported github event type, ignoring")
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "event type not supported"})
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to decode github event", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if ping, ok := ev.(event.Ping); ok {
		slog.InfoContext(ctx, "github ping received", "zen", ping.GetZen(), "hook_id", ping.GetHookID())
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if rs, ok := ev.(facet.RepoSource); ok {
		if r, ok := rs.Repo(); ok {
			ctx = logger.WithLogFields(ctx, logger.LogFields{
				Repository: logger.Ptr(r.Owner + "/" + r.Name),
			})
		}
	}

	msg, ok := compose.Compose(ev)
	if !ok {
		slog.InfoContext(ctx, "event produced no message")
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "nothing to relay"})
		return
	}

	if err := h.deliverer.Post(ctx, msg.String()); err != nil {
		slog.ErrorContext(ctx, "failed to deliver message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deliver message"})
		return
	}

	slog.InfoContext(ctx, "github webhook relayed", "message_bytes", len(msg.String()))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
