package media

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/storehub/internal/server/config"
)

func testConfig() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "storehub-images",
	}
}

func stubAWS(t *testing.T) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := putObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		putObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestNewS3ImageStore_AppliesConfig(t *testing.T) {
	stubAWS(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		if lo.Credentials == nil {
			t.Fatalf("credentials provider not applied")
		}
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	store, err := NewS3ImageStore(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("NewS3ImageStore err: %v", err)
	}
	if store.bucket != "storehub-images" {
		t.Fatalf("bucket = %q", store.bucket)
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("BaseEndpoint mismatch: %v", opts.BaseEndpoint)
	}
	if !opts.UsePathStyle {
		t.Fatalf("path-style addressing expected")
	}
}

func TestNewS3ImageStore_LoadError(t *testing.T) {
	stubAWS(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	if _, err := NewS3ImageStore(context.Background(), testConfig()); err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v", err)
	}
}

func TestS3ImageStore_Put(t *testing.T) {
	stubAWS(t)

	var got *s3.PutObjectInput
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		return &s3.PutObjectOutput{}, nil
	}

	store, err := NewS3ImageStore(context.Background(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(context.Background(), "images/k", []byte("png"), "image/png"); err != nil {
		t.Fatalf("Put err: %v", err)
	}
	if *got.Bucket != "storehub-images" || *got.Key != "images/k" || *got.ContentType != "image/png" {
		t.Fatalf("unexpected input: %+v", got)
	}
	body, _ := io.ReadAll(got.Body)
	if string(body) != "png" {
		t.Fatalf("body = %q", body)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("denied")
	}
	if err := store.Put(context.Background(), "images/k", []byte("png"), "image/png"); err == nil {
		t.Fatal("expected put error")
	}
}

func TestS3ImageStore_PresignGet(t *testing.T) {
	stubAWS(t)

	var expires bool
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		expires = po.Expires == PresignTTL
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Key}, nil
	}

	store, err := NewS3ImageStore(context.Background(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	url, err := store.PresignGet(context.Background(), "images/k")
	if err != nil {
		t.Fatalf("PresignGet err: %v", err)
	}
	if url != "http://signed/images/k" {
		t.Fatalf("url = %q", url)
	}
	if !expires {
		t.Fatalf("presign expiry not set to %v", PresignTTL)
	}
}
