package lambda

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/stahnma/gh-repostats/internal/commands"
)

// Event selects the repository to report on. REPO_URL is used when RepoURL is empty.
type Event struct {
	RepoURL string `json:"repo_url"`
}

// Uploader is the part of the S3 client used by the handler.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewHandler returns a Lambda handler function that runs the report and uploads it to S3.
func NewHandler(app *commands.App) func(context.Context, Event) (string, error) {
	return newHandler(app, func(ctx context.Context) (Uploader, error) {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return s3.NewFromConfig(cfg), nil
	})
}

func newHandler(app *commands.App, newUploader func(context.Context) (Uploader, error)) func(context.Context, Event) (string, error) {
	return func(ctx context.Context, event Event) (string, error) {
		repoURL := event.RepoURL
		if repoURL == "" {
			repoURL = os.Getenv("REPO_URL")
		}
		if repoURL == "" {
			return "", fmt.Errorf("repo_url must be set in the event or REPO_URL")
		}

		s3Bucket := os.Getenv("S3_BUCKET_NAME")
		s3ObjectKey := os.Getenv("S3_OBJECT_KEY")
		if s3Bucket == "" || s3ObjectKey == "" {
			return "", fmt.Errorf("S3_BUCKET_NAME and S3_OBJECT_KEY environment variables must be set")
		}
		if strings.Contains(s3ObjectKey, "%s") {
			s3ObjectKey = fmt.Sprintf(s3ObjectKey, time.Now().Format("2006-Jan-02"))
		}

		var buf bytes.Buffer
		if err := app.Report(ctx, &buf, repoURL, app.Config.GitHubToken); err != nil {
			app.Logger.WithError(err).Warn("report finished with failures")
		}
		if buf.Len() == 0 {
			return "", fmt.Errorf("report produced no output")
		}

		svc, err := newUploader(ctx)
		if err != nil {
			return "", err
		}
		_, err = svc.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s3Bucket),
			Key:         aws.String(s3ObjectKey),
			Body:        bytes.NewReader(buf.Bytes()),
			ContentType: aws.String("text/plain; charset=utf-8"),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload report to S3: %w", err)
		}

		return fmt.Sprintf("Report for %s uploaded to s3://%s/%s", repoURL, s3Bucket, s3ObjectKey), nil
	}
}
