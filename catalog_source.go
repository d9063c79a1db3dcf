package repwizard

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CatalogSource loads the field catalog served to the wizard.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

// DecodeCatalog reads a catalog document. YAML is a superset of JSON, but
// JSON is decoded with encoding/json so its error messages stay familiar.
func DecodeCatalog(r io.Reader, isYAML bool) (*Catalog, error) {
	var doc Catalog
	var err error
	if isYAML {
		err = yaml.NewDecoder(r).Decode(&doc)
	} else {
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode catalog")
	}
	return NewCatalog(doc.Categories)
}

func isYAMLName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

type FileCatalog struct {
	Path   string
	logger *zap.SugaredLogger
}

func NewFileCatalog(path string, logger *zap.SugaredLogger) *FileCatalog {
	return &FileCatalog{Path: path, logger: logger}
}

func (fc *FileCatalog) LoadCatalog(_ context.Context) (*Catalog, error) {
	file, err := os.Open(fc.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read from %s", fc.Path)
	}
	defer file.Close()

	cat, err := DecodeCatalog(file, isYAMLName(fc.Path))
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", fc.Path)
	}
	fc.logger.Infof("Loaded catalog %q with %d fields", fc.Path, len(cat.Fields()))
	return cat, nil
}

// ObjectGetter is the slice of the S3 client the catalog needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Catalog struct {
	client ObjectGetter
	bucket string
	key    string
	logger *zap.SugaredLogger
}

func NewS3Catalog(client ObjectGetter, bucket, key string, logger *zap.SugaredLogger) *S3Catalog {
	return &S3Catalog{client: client, bucket: bucket, key: key, logger: logger}
}

func (sc *S3Catalog) LoadCatalog(ctx context.Context) (*Catalog, error) {
	output, err := sc.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(sc.bucket),
		Key:    aws.String(sc.key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get s3://%s/%s", sc.bucket, sc.key)
	}
	defer output.Body.Close()

	cat, err := DecodeCatalog(output.Body, isYAMLName(sc.key))
	if err != nil {
		return nil, errors.Wrapf(err, "catalog s3://%s/%s", sc.bucket, sc.key)
	}
	sc.logger.Infof("Loaded catalog s3://%s/%s with %d fields", sc.bucket, sc.key, len(cat.Fields()))
	return cat, nil
}
