package signer

import (
	"fmt"

	"github.com/quayside/go-authv4/credentials"
)

// Config holds the fixed signing context for a Signer: the region and
// service scope plus the credential snapshot used for every request.
type Config struct {
	// Region is the AWS region (e.g., "us-east-1").
	Region string

	// Service is the AWS service name (e.g., "ecs", "s3").
	Service string

	// Credentials is the key material used to sign. The session token, if
	// any, is never read by the signer; see package credentials.
	Credentials credentials.Credentials
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Service == "" {
		return fmt.Errorf("service is required")
	}
	if c.Credentials.AccessKey == "" {
		return fmt.Errorf("access key is required")
	}
	if c.Credentials.SecretKey == "" {
		return fmt.Errorf("secret key is required")
	}
	return nil
}
