package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Storage providers understood by the connection string parser.
const (
	StorageProviderS3    = "s3"
	StorageProviderMinIO = "minio"
)

// DevelopmentStorageSentinel selects the local storage emulator instead of a live service.
const DevelopmentStorageSentinel = "UseDevelopmentStorage=true"

// Local emulator defaults used with DevelopmentStorageSentinel.
const (
	devStorageEndpoint  = "127.0.0.1:9000"
	devStorageAccessKey = "minioadmin"
	devStorageSecretKey = "minioadmin"
	devStorageRegion    = "us-east-1"
)

// StorageConnection is the parsed form of a storage connection string.
type StorageConnection struct {
	Provider  string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// ParseStorageConnectionString parses "Key=Value;Key=Value" pairs. Keys are
// case-insensitive. Recognized keys: Provider, Endpoint, Region, AccessKey,
// SecretKey, UseSSL, PathStyle.
func ParseStorageConnectionString(s string) (*StorageConnection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("storage connection string is empty")
	}
	if strings.EqualFold(strings.TrimSuffix(s, ";"), DevelopmentStorageSentinel) {
		return &StorageConnection{
			Provider:  StorageProviderMinIO,
			Endpoint:  devStorageEndpoint,
			Region:    devStorageRegion,
			AccessKey: devStorageAccessKey,
			SecretKey: devStorageSecretKey,
			UseSSL:    false,
			PathStyle: true,
		}, nil
	}

	conn := &StorageConnection{
		Provider: StorageProviderS3,
		Region:   "us-east-1",
		UseSSL:   true,
	}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("storage connection string: malformed segment %q", pair)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "provider":
			conn.Provider = strings.ToLower(value)
		case "endpoint":
			conn.Endpoint = value
		case "region":
			conn.Region = value
		case "accesskey":
			conn.AccessKey = value
		case "secretkey":
			conn.SecretKey = value
		case "usessl":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("storage connection string: UseSSL: %w", err)
			}
			conn.UseSSL = b
		case "pathstyle":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("storage connection string: PathStyle: %w", err)
			}
			conn.PathStyle = b
		default:
			return nil, fmt.Errorf("storage connection string: unknown key %q", key)
		}
	}

	switch conn.Provider {
	case StorageProviderS3:
	case StorageProviderMinIO:
		if conn.Endpoint == "" {
			return nil, fmt.Errorf("storage connection string: minio provider requires Endpoint")
		}
	default:
		return nil, fmt.Errorf("storage connection string: unknown provider %q", conn.Provider)
	}
	return conn, nil
}
