package main

import (
	"strings"
	"time"
)

type resources struct {
	TopicID             string
	DLQTopicID          string
	SubID               string
	DLQSubID            string
	PushEndpoint        string
	DLQPushEndpoint     string
	AckDeadline         time.Duration
	Retention           time.Duration
	MinBackoff          time.Duration
	MaxBackoff          time.Duration
	MaxDeliveryAttempts int
}

func contactResources(topicID, mailerBaseURL string) resources {
	topicID = strings.TrimSpace(topicID)
	mailerBaseURL = strings.TrimRight(mailerBaseURL, "/")
	return resources{
		TopicID:             topicID,
		DLQTopicID:          topicID + "-dlq",
		SubID:               topicID + "-sub",
		DLQSubID:            topicID + "-dlq-sub",
		PushEndpoint:        mailerBaseURL + "/pubsub/contact",
		DLQPushEndpoint:     mailerBaseURL + "/pubsub/contact-dlq",
		AckDeadline:         60 * time.Second,
		Retention:           7 * 24 * time.Hour,
		MinBackoff:          10 * time.Second,
		MaxBackoff:          600 * time.Second,
		MaxDeliveryAttempts: 5,
	}
}
