package amqp

import "finboard/internal/log"

// PublishChannel lets external tests stand in for a broker channel.
type PublishChannel = publishChannel

// NewClientOnChannel builds a connected client over ch without dialing.
func NewClientOnChannel(exchangeName, queueName string, ch PublishChannel) *Client {
	return &Client{
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       log.Discard(),
		channel:      ch,
	}
}
