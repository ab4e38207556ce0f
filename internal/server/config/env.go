package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Environment variables read by parseEnv. The secret is also accepted under
// the shorter legacy name.
const (
	envDatabaseDSN = "NOTEKEEPER_DATABASE_DSN"
	envHTTPAddr    = "NOTEKEEPER_HTTP_ADDR"
	envPort        = "PORT"
	envGRPCAddr    = "NOTEKEEPER_GRPC_ADDR"
	envTokenTTL    = "NOTEKEEPER_TOKEN_TTL"
	envBcryptCost  = "NOTEKEEPER_BCRYPT_COST"
	envLogLevel    = "NOTEKEEPER_LOG_LEVEL"
	envS3AccessKey = "NOTEKEEPER_S3_ACCESS_KEY"
	envS3SecretKey = "NOTEKEEPER_S3_SECRET_KEY"
	envS3Bucket    = "NOTEKEEPER_S3_BUCKET"
)

func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	get := func(name string) string {
		v, ok := lookup(name)
		if !ok {
			return ""
		}
		return v
	}

	if v := get(common.LegacySecretEnvName); v != "" {
		config.SecretKey = v
	}
	if v := get(common.SecretEnvName); v != "" {
		config.SecretKey = v
	}

	setString(&config.DatabaseDSN, get(envDatabaseDSN))

	if v := get(envPort); v != "" {
		config.EndpointAddrHTTP = net.JoinHostPort("", v)
	}
	setString(&config.EndpointAddrHTTP, get(envHTTPAddr))
	setString(&config.EndpointAddrGRPC, get(envGRPCAddr))

	if v := get(envTokenTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTokenTTL, err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v := get(envBcryptCost); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envBcryptCost, err)
		}
		config.BcryptCost = n
	}

	setString(&config.LogLevel, get(envLogLevel))
	setString(&config.S3AccessKey, get(envS3AccessKey))
	setString(&config.S3SecretKey, get(envS3SecretKey))
	setString(&config.S3Bucket, get(envS3Bucket))

	return nil
}
