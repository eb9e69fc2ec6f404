package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// Notification composers. Each shipment status that notifies the customer has
// a fixed template; in-transit scans are deliberately silent.

func shipmentPlacedNotification(email string, shipmentID kernel.UUID, content string) ports.Notification {
	return ports.Notification{
		Channel:   ports.ChannelEmail,
		Recipient: email,
		Subject:   "Your shipment is on its way",
		Body: fmt.Sprintf(
			"Your order %q has been placed for delivery. Track it with id %s.",
			content, shipmentID,
		),
	}
}

func shipmentOutForDeliveryEmail(email string, code string) ports.Notification {
	return ports.Notification{
		Channel:   ports.ChannelEmail,
		Recipient: email,
		Subject:   "Your shipment is out for delivery",
		Body: fmt.Sprintf(
			"Your shipment will arrive today. Share the code %s with the delivery partner to receive it.",
			code,
		),
	}
}

func shipmentOutForDeliverySMS(phone string, code string) ports.Notification {
	return ports.Notification{
		Channel:   ports.ChannelSMS,
		Recipient: phone,
		Body:      fmt.Sprintf("Your delivery code is %s.", code),
	}
}

func shipmentDeliveredNotification(email string, reviewLink string) ports.Notification {
	return ports.Notification{
		Channel:   ports.ChannelEmail,
		Recipient: email,
		Subject:   "Your shipment has been delivered",
		Body: fmt.Sprintf(
			"Your shipment was delivered. Tell us how it went: %s",
			reviewLink,
		),
	}
}

func shipmentCancelledNotification(email string) ports.Notification {
	return ports.Notification{
		Channel:   ports.ChannelEmail,
		Recipient: email,
		Subject:   "Your shipment has been cancelled",
		Body:      "Your shipment has been cancelled by the seller. Contact the seller for details.",
	}
}

func accountVerificationNotification(email string, verifyLink string) ports.Notification {
	return ports.Notification{
		Channel:   ports.ChannelEmail,
		Recipient: email,
		Subject:   "Verify your email",
		Body:      fmt.Sprintf("Follow this link to activate your account: %s", verifyLink),
	}
}

// dispatchNotifications sends notifications after the surrounding transaction
// has committed. Failures are logged and swallowed: notification delivery is
// best effort and never fails the operation that triggered it.
func dispatchNotifications(
	ctx context.Context,
	logger *slog.Logger,
	notifier ports.Notifier,
	notifications ...ports.Notification,
) {
	for _, notification := range notifications {
		if err := notifier.Notify(ctx, notification); err != nil {
			logger.WarnContext(ctx, "notification dispatch failed",
				"channel", notification.Channel,
				"subject", notification.Subject,
				"error", err,
			)
		}
	}
}
