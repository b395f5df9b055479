package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/credbridge/internal/flagx"
	"github.com/dmitrijs2005/credbridge/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "5m"-style strings or integer nanoseconds. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	TokenValidityDuration   *timex.Duration `json:"token_validity_duration"`
	TokenSweepInterval      *timex.Duration `json:"token_sweep_interval"`
	PresignValidityDuration *timex.Duration `json:"presign_validity_duration"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
	LogLevel                *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config.
// It panics when the file cannot be read or parsed.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.TokenSweepInterval != nil {
		config.TokenSweepInterval = c.TokenSweepInterval.Duration
	}
	if c.PresignValidityDuration != nil {
		config.PresignValidityDuration = c.PresignValidityDuration.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
