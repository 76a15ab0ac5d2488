package config

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server Server
	Mongo  Mongo
	S3     S3

	// SecretsName, when set, names an AWS Secrets Manager secret whose JSON
	// payload overrides the file/env values above.
	SecretsName string
}

type Server struct {
	Port string
}

type Mongo struct {
	URI        string
	Database   string
	Collection string
}

type S3 struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// Provider hands out the process configuration. Gateways hold a Provider and
// resolve the fields they need at first use rather than at construction, so
// the fx graph can be built before remote secrets have been applied.
type Provider func() *Config

func NewProvider(cfg *Config) Provider {
	return func() *Config { return cfg }
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MONGODB_DB", "questionbank")
	viper.SetDefault("MONGODB_COLLECTION", "questions")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Mongo.URI = viper.GetString("MONGODB_URI")
	config.Mongo.Database = viper.GetString("MONGODB_DB")
	config.Mongo.Collection = viper.GetString("MONGODB_COLLECTION")

	config.S3.Region = viper.GetString("AWS_REGION")
	config.S3.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.S3.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.S3.Bucket = viper.GetString("S3_BUCKET")

	config.SecretsName = viper.GetString("SECRETS_NAME")

	if config.SecretsName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := applySecrets(ctx, &config); err != nil {
			log.Error().Err(err).Str("secret", config.SecretsName).Msg("Failed to load remote secrets")
			return nil, err
		}
		log.Info().Str("secret", config.SecretsName).Msg("Remote secrets applied")
	}

	log.Info().Str("port", config.Server.Port).Str("bucket", config.S3.Bucket).Str("db", config.Mongo.Database).Msg("Config loaded")
	return &config, nil
}
