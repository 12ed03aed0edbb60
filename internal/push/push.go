// Package push sends notifications to a user's registered device token.
// The delivery transport is opaque to the rest of the system; callers
// only see the Sender interface.
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Sender delivers one notification to one device token.
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCM sends through Firebase Cloud Messaging.
type FCM struct {
	client *messaging.Client
}

var _ Sender = (*FCM)(nil)

// NewFCM initializes the Firebase app. With an empty credentialsFile the
// application-default credentials are used.
func NewFCM(ctx context.Context, credentialsFile string) (*FCM, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	return &FCM{client: client}, nil
}

func (f *FCM) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	_, err := f.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})

	return err
}

// Disabled drops every delivery. Used when no push credentials are
// configured; the persisted notification records are unaffected.
type Disabled struct{}

var _ Sender = Disabled{}

func (Disabled) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	return nil
}
