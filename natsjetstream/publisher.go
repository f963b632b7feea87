package natsjetstream

import (
	"context"
	"encoding/json"

	apperrors "github.com/podiumlabs/podium/errors"
)

type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishJSON marshals the event payload and publishes it on subject.
func (p *Publisher) PublishJSON(ctx context.Context, subject string, event interface{}) *apperrors.AppError {
	data, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal event payload")
	}

	return p.Publish(ctx, subject, data)
}

func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) *apperrors.AppError {
	if p.client == nil || !p.client.IsConnected() {
		return apperrors.New(apperrors.CodeEventPublishError, "nats connection is not available")
	}

	_, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to publish message")
	}
	return nil
}
