package smtp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Message is a single HTML e-mail with an optional plain text alternative.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	HTMLBody  string
	TextBody  string
}

// Option customizes the client.
type Option func(*Client)

// WithSender replaces the SMTP delivery step, mainly for tests.
func WithSender(send func(ctx context.Context, msg *mail.Msg) error) Option {
	return func(c *Client) {
		if send != nil {
			c.send = send
		}
	}
}

// Client sends e-mails through an SMTP relay using go-mail.
type Client struct {
	cfg  Config
	send func(ctx context.Context, msg *mail.Msg) error
}

// NewClient validates cfg and builds a client with sane defaults.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.From = strings.TrimSpace(cfg.From)
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp sender address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	c := &Client{cfg: cfg}
	c.send = c.dialAndSend
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Send builds the message and delivers it.
func (c *Client) Send(ctx context.Context, m Message) error {
	if c == nil || c.send == nil {
		return errors.New("smtp client not configured")
	}
	msg, err := c.build(m)
	if err != nil {
		return err
	}
	if err := c.send(ctx, msg); err != nil {
		return fmt.Errorf("deliver mail to %s: %w", m.ToAddress, err)
	}
	return nil
}

func (c *Client) build(m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(c.cfg.From); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.AddToFormat(m.ToName, m.ToAddress); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTMLBody)
	if m.TextBody != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, m.TextBody)
	}
	return msg, nil
}

func (c *Client) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(c.cfg.Timeout),
	}
	if c.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.cfg.Username),
			mail.WithPassword(c.cfg.Password),
		)
	}
	client, err := mail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("build smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
