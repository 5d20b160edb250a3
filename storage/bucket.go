package storage

import (
	"os"
	"strings"
	"time"

	"imagestore/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int
	UpdatedAt     int
	Name          string `gorm:"type:varchar(200)"`
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	AuthDetails   string // Authentication details. In case of S3 bucket - "key:secret"
	Region        string `gorm:"type:varchar(20)"`
	Endpoint      string `gorm:"type:varchar(300)"` // Custom S3 endpoint, if any
	SSEEncryption string `gorm:"type:varchar(20)"`
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		if err = os.MkdirAll(b.Path, 0777); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// GetRemotePath prefixes the object path with the bucket path (if any)
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimRight(b.Path, "/") + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	key, secret, _ := strings.Cut(b.AuthDetails, ":")
	awsConfig := aws.Config{
		Credentials: credentials.NewStaticCredentials(key, secret, ""),
		Region:      &b.Region,
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = &b.Endpoint
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess := session.Must(session.NewSession(&awsConfig))
	return s3.New(sess)
}

func (b *Bucket) CreateS3DownloadURI(path string, expiry time.Duration) string {
	svc := b.CreateSVC()
	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &b.Name,
		Key:    aws.String(b.GetRemotePath(path)),
	})
	uri, err := req.Presign(expiry)
	if err != nil {
		return ""
	}
	return uri
}
