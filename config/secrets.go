package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// applySecrets fetches the named secret and overlays any keys present in its
// JSON payload onto cfg. Keys absent from the payload keep their file/env
// values, so a secret can carry only the sensitive subset.
func applySecrets(ctx context.Context, cfg *Config) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
	if err != nil {
		return fmt.Errorf("loading aws config for secrets manager: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cfg.SecretsName),
	})
	if err != nil {
		return fmt.Errorf("fetching secret %q: %w", cfg.SecretsName, err)
	}
	if out.SecretString == nil {
		return fmt.Errorf("secret %q has no string payload", cfg.SecretsName)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &payload); err != nil {
		return fmt.Errorf("decoding secret %q: %w", cfg.SecretsName, err)
	}

	overlay := map[string]*string{
		"MONGODB_URI":           &cfg.Mongo.URI,
		"MONGODB_DB":            &cfg.Mongo.Database,
		"MONGODB_COLLECTION":    &cfg.Mongo.Collection,
		"AWS_REGION":            &cfg.S3.Region,
		"AWS_ACCESS_KEY_ID":     &cfg.S3.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY": &cfg.S3.SecretAccessKey,
		"S3_BUCKET":             &cfg.S3.Bucket,
	}
	for key, dst := range overlay {
		if v, ok := payload[key]; ok && v != "" {
			*dst = v
		}
	}
	return nil
}
