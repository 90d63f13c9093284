package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/staffdesk-io/staffdesk/internal/flagx"
	"github.com/staffdesk-io/staffdesk/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON configuration
// files. Every field is a pointer so that a key absent from the file leaves
// the corresponding default untouched; partial config files are valid.
// Duration fields use timex.Duration, which accepts both string values such
// as "5m" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	AccessSecretKey              *string         `json:"access_secret_key"`
	RefreshSecretKey             *string         `json:"refresh_secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	RegistryBackend              *string         `json:"registry_backend"`
	RedisAddr                    *string         `json:"redis_addr"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
}

func overlayString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func overlayDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}

// applyJsonConfig overlays the values present in the file onto the runtime
// Config, keeping defaults for everything the file omits.
func applyJsonConfig(config *Config, c *JsonConfig) {
	overlayString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlayString(&config.DatabaseDSN, c.DatabaseDSN)
	overlayString(&config.AccessSecretKey, c.AccessSecretKey)
	overlayString(&config.RefreshSecretKey, c.RefreshSecretKey)
	overlayDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	overlayDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	overlayString(&config.RegistryBackend, c.RegistryBackend)
	overlayString(&config.RedisAddr, c.RedisAddr)
	overlayString(&config.S3RootUser, c.S3RootUser)
	overlayString(&config.S3RootPassword, c.S3RootPassword)
	overlayString(&config.S3Bucket, c.S3Bucket)
	overlayString(&config.S3Region, c.S3Region)
	overlayString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If neither flag is set, no file
// is loaded. An unreadable file or invalid JSON panics; a readable file may
// set any subset of keys.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	applyJsonConfig(config, c)
}
