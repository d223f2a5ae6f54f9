package email

import (
	"context"
)

// Sender delivers a plain-text email. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
