package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of the SNS client used for publishing.
type SNSAPI interface {
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// SNSMealPublisher forwards meal events to an SNS topic as JSON.
type SNSMealPublisher struct {
	sns      SNSAPI
	topicArn string
}

func NewSNSMealPublisher(client SNSAPI, topicArn string) (*SNSMealPublisher, error) {
	if client == nil || topicArn == "" {
		return nil, errors.New("sns publisher requires a client and topic arn")
	}
	return &SNSMealPublisher{sns: client, topicArn: topicArn}, nil
}

func NewSNSMealPublisherFromEnv(ctx context.Context, region, topicArn string) (*SNSMealPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSNSMealPublisher(awssns.NewFromConfig(cfg), topicArn)
}

func (p *SNSMealPublisher) PublishMealEvent(ctx context.Context, ev MealEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.sns.Publish(ctx, &awssns.PublishInput{
		TopicArn: aws.String(p.topicArn),
		Message:  aws.String(string(raw)),
		Subject:  aws.String(ev.Kind),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"kind":   {DataType: aws.String("String"), StringValue: aws.String(ev.Kind)},
			"userId": {DataType: aws.String("String"), StringValue: aws.String(ev.UserID)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
