package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/staffdesk-io/staffdesk/internal/server/config"
)

func stubPresign(t *testing.T, putURL, getURL string, presignErr error) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewClient := newS3ClientFromConfig
	origNewPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewClient
		newS3PresignClient = origNewPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		return &v4.PresignedHTTPRequest{URL: putURL + "/" + *in.Key}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		return &v4.PresignedHTTPRequest{URL: getURL + "/" + *in.Key}, nil
	}
}

func testPictureConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestPictureService_PresignUpload(t *testing.T) {
	stubPresign(t, "https://s3.test/put", "https://s3.test/get", nil)

	svc := NewPictureService(testPictureConfig())
	url, err := svc.PresignUpload(context.Background(), "employees/x.png")
	if err != nil {
		t.Fatalf("PresignUpload error: %v", err)
	}
	if url != "https://s3.test/put/employees/x.png" {
		t.Fatalf("unexpected URL: %q", url)
	}
}

func TestPictureService_PresignDownload(t *testing.T) {
	stubPresign(t, "https://s3.test/put", "https://s3.test/get", nil)

	svc := NewPictureService(testPictureConfig())
	url, err := svc.PresignDownload(context.Background(), "employees/x.png")
	if err != nil {
		t.Fatalf("PresignDownload error: %v", err)
	}
	if url != "https://s3.test/get/employees/x.png" {
		t.Fatalf("unexpected URL: %q", url)
	}
}

func TestPictureService_PresignError(t *testing.T) {
	boom := errors.New("presign down")
	stubPresign(t, "", "", boom)

	svc := NewPictureService(testPictureConfig())
	if _, err := svc.PresignUpload(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("expected presign error, got %v", err)
	}
	if _, err := svc.PresignDownload(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("expected presign error, got %v", err)
	}
}

func TestRandomStorageKey(t *testing.T) {
	k1 := RandomStorageKey(".png")
	k2 := RandomStorageKey(".png")

	if k1 == k2 {
		t.Fatalf("storage keys must be unique: %q", k1)
	}
	if !strings.HasPrefix(k1, "employees/") || !strings.HasSuffix(k1, ".png") {
		t.Fatalf("unexpected key shape: %q", k1)
	}
}
