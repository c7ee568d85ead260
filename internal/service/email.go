package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/logger"
)

// Notifier tells the operations team about events that need a human,
// currently only accepted redemption requests.
type Notifier interface {
	NotifyRedemption(ctx context.Context, account *domain.UserAccount, entry *domain.PointTransaction) error
}

// SendGridNotifier delivers operational mail through SendGrid.
type SendGridNotifier struct {
	apiKey    string
	fromEmail string
	opsEmail  string
}

func NewSendGridNotifier(apiKey, fromEmail, opsEmail string) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, fromEmail: fromEmail, opsEmail: opsEmail}
}

func (n *SendGridNotifier) NotifyRedemption(ctx context.Context, account *domain.UserAccount, entry *domain.PointTransaction) error {
	logger.ExternalServiceCall("sendgrid", "NotifyRedemption", "user_id", account.ID, "transaction_id", entry.ID)

	subject := fmt.Sprintf("Redemption request from %s", account.DisplayName)
	body := fmt.Sprintf(
		"User %s (%s) redeemed %d points for an Amazon gift card.\n\nDeliver to: %s <%s>\nTransaction: %s\n",
		account.DisplayName, account.ID, -entry.Amount,
		entry.Redemption.Name, entry.Redemption.Email, entry.ID,
	)

	message := mail.NewSingleEmail(
		mail.NewEmail("FlyerPoints", n.fromEmail),
		subject,
		mail.NewEmail("Operations", n.opsEmail),
		body,
		"",
	)

	resp, err := sendgrid.NewSendClient(n.apiKey).SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "NotifyRedemption", err)
	if err != nil {
		return status.Errorf(codes.Unavailable, "send redemption notice: %v", err)
	}
	if resp.StatusCode >= 400 {
		return status.Errorf(codes.Unavailable, "sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

// NopNotifier drops notifications. Dev configuration without an API key.
type NopNotifier struct{}

func (NopNotifier) NotifyRedemption(ctx context.Context, account *domain.UserAccount, entry *domain.PointTransaction) error {
	logger.Info("redemption notice suppressed, no mail transport configured",
		"user_id", account.ID, "transaction_id", entry.ID)
	return nil
}
