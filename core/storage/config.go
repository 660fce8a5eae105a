package storage

// Config describes the S3-compatible endpoint workbooks are downloaded from.
type Config struct {
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	Region    string `mapstructure:"region" default:""`
	// Bucket is listed by `tables s3://` when no bucket is given.
	Bucket string `mapstructure:"bucket" default:"workbooks"`
	// TimeoutSeconds bounds dialing, the TLS handshake and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxObjectMB refuses larger downloads. Zero disables the check.
	MaxObjectMB int `mapstructure:"max_object_mb" default:"256"`
}

// MaxObjectBytes converts MaxObjectMB to bytes.
func (c Config) MaxObjectBytes() int64 {
	if c.MaxObjectMB <= 0 {
		return 0
	}
	return int64(c.MaxObjectMB) << 20
}
