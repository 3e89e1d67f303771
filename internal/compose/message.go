package compose

import (
	"errors"
	"strings"

	"traqhook.app/relay/internal/facet"
)

var (
	ErrMissingTitle  = errors.New("message builder: title not set")
	ErrMissingFooter = errors.New("message builder: footer not set")
)

// Message is the final formatted artifact relayed to traQ. Immutable once
// built; produced once per event and consumed exactly once by delivery.
type Message struct {
	text string
}

func (m Message) String() string {
	return m.text
}

// MessageBuilder assembles a message in stages. Title and footer are
// required in any order before Build succeeds; body lines are optional and
// keep insertion order.
type MessageBuilder struct {
	title  *string
	msgs   []string
	footer *string
}

func NewMessage() *MessageBuilder {
	return &MessageBuilder{}
}

func (b *MessageBuilder) Title(text string) *MessageBuilder {
	b.title = &text
	return b
}

// Msg appends one body line.
func (b *MessageBuilder) Msg(text string) *MessageBuilder {
	b.msgs = append(b.msgs, text)
	return b
}

// Msgs appends body lines in order.
func (b *MessageBuilder) Msgs(lines []string) *MessageBuilder {
	b.msgs = append(b.msgs, lines...)
	return b
}

func (b *MessageBuilder) Footer(text string) *MessageBuilder {
	b.footer = &text
	return b
}

// Repo sets the footer to the repository link. An unavailable repository
// leaves the footer unset, which Build reports.
func (b *MessageBuilder) Repo(src facet.RepoSource) *MessageBuilder {
	if r, ok := src.Repo(); ok {
		return b.Footer(r.Markdown())
	}
	return b
}

// Build renders the message:
//
//	### <title>
//	---
//	<body lines>
//	##### <footer>
//
// It fails when title or footer were never supplied.
func (b *MessageBuilder) Build() (Message, error) {
	if b.title == nil {
		return Message{}, ErrMissingTitle
	}
	if b.footer == nil {
		return Message{}, ErrMissingFooter
	}

	var buf strings.Builder
	buf.WriteString("### ")
	buf.WriteString(*b.title)
	buf.WriteString("\n---\n")
	for _, m := range b.msgs {
		buf.WriteString(m)
		buf.WriteString("\n")
	}
	buf.WriteString("##### ")
	buf.WriteString(*b.footer)
	buf.WriteString("\n")

	return Message{text: buf.String()}, nil
}
