package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	sc "github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const exportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Export describes an uploaded snapshot.
type Export struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Notes     int       `json:"notes"`
	ExpiresAt time.Time `json:"expires_at"`
}

type exportDocument struct {
	Owner      string         `json:"owner"`
	ExportedAt time.Time      `json:"exported_at"`
	Notes      []*models.Note `json:"notes"`
}

// NoteExporter writes a JSON snapshot of a user's notes to S3-compatible
// storage and hands back a short-lived download link.
type NoteExporter struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewNoteExporter(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *NoteExporter {
	return &NoteExporter{
		db:          db,
		repomanager: m,
		config:      config,
		now:         time.Now,
	}
}

func exportKey(owner string, d time.Time) string {
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%v.json", owner, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (e *NoteExporter) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(e.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.config.S3AccessKey,
			e.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if e.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(e.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Export uploads every note of owner and returns where to fetch them.
func (e *NoteExporter) Export(ctx context.Context, owner string) (*Export, error) {
	if !e.config.ExportEnabled() {
		return nil, common.ErrorExportDisabled
	}

	notes, err := e.repomanager.Notes(e.db).ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	now := e.now().UTC()
	body, err := json.Marshal(exportDocument{Owner: owner, ExportedAt: now, Notes: notes})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	client, err := e.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	bucket := e.config.S3Bucket
	key := exportKey(owner, now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &Export{Key: key, URL: req.URL, Notes: len(notes), ExpiresAt: now.Add(exportURLValidity)}, nil
}
