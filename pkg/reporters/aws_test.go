package reporters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/easy-qfnu/portal-client/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSReporterSendsReport(t *testing.T) {
	client := &fakeSQSClient{}
	rep := &sqsReporter{id: "q", queueURL: "https://example.com/queue", client: client, log: logger.NopLogger{}}

	if err := rep.Report(context.Background(), Report{ID: "r1", Kind: KindNetwork}); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["kind"]
	if !ok || aws.ToString(attr.StringValue) != KindNetwork || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("kind attribute missing or wrong: %#v", attr)
	}
	var body Report
	if err := json.Unmarshal([]byte(aws.ToString(client.input.MessageBody)), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ID != "r1" {
		t.Fatalf("body = %+v", body)
	}
}

func TestSQSReporterSendError(t *testing.T) {
	rep := &sqsReporter{id: "q", client: &fakeSQSClient{err: errors.New("boom")}, log: logger.NopLogger{}}
	if err := rep.Report(context.Background(), Report{}); err == nil {
		t.Fatalf("expected error from Report")
	}
}

func TestSNSReporterPublishesReport(t *testing.T) {
	client := &fakeSNSClient{}
	rep := &snsReporter{id: "t", topicARN: "arn:aws:sns:::topic", client: client, log: logger.NopLogger{}}

	if err := rep.Report(context.Background(), Report{ID: "r1", Kind: KindServer}); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["kind"]
	if !ok || aws.ToString(attr.StringValue) != KindServer {
		t.Fatalf("kind attribute missing or wrong: %#v", attr)
	}
	var body Report
	if err := json.Unmarshal([]byte(aws.ToString(client.input.Message)), &body); err != nil || body.ID != "r1" {
		t.Fatalf("Message = %s (%v)", aws.ToString(client.input.Message), err)
	}
}

func TestSNSReporterPublishError(t *testing.T) {
	rep := &snsReporter{id: "t", client: &fakeSNSClient{err: errors.New("boom")}, log: logger.NopLogger{}}
	if err := rep.Report(context.Background(), Report{}); err == nil {
		t.Fatalf("expected error from Report")
	}
}

func TestAWSReportersBuildWithStaticCredentials(t *testing.T) {
	auth := AWSAuth{Region: "ap-east-1", AccessKeyID: "AKID", SecretAccessKey: "SECRET"}

	cfg, err := loadAWSConfig(context.Background(), auth)
	if err != nil {
		t.Fatalf("loadAWSConfig: %v", err)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "AKID" || cfg.Region != "ap-east-1" {
		t.Fatalf("unexpected aws config: region=%s key=%s", cfg.Region, creds.AccessKeyID)
	}

	if _, err := newSQSReporter(context.Background(), ReporterConfig{ID: "q", SQS: &SQSConfig{QueueURL: "u", AWSAuth: auth}}, nil); err != nil {
		t.Fatalf("newSQSReporter: %v", err)
	}
	if _, err := newSNSReporter(context.Background(), ReporterConfig{ID: "t", SNS: &SNSConfig{TopicARN: "a", AWSAuth: auth}}, nil); err != nil {
		t.Fatalf("newSNSReporter: %v", err)
	}
	if _, err := newSNSReporter(context.Background(), ReporterConfig{ID: "t"}, nil); err == nil {
		t.Fatalf("expected error for missing sns config")
	}
}
