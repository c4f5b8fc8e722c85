// Package tlsutil loads TLS material for the KYB gRPC endpoint.
package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"google.golang.org/grpc/credentials"
)

// ErrIncomplete is returned when only one of the certificate and key is set.
var ErrIncomplete = errors.New("tlsutil: certificate and key must be configured together")

// Files names the PEM files of a server identity. ClientCAFile is optional;
// setting it turns on mutual TLS.
type Files struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// Enabled reports whether a server identity is configured.
func (f Files) Enabled() bool {
	return f.CertFile != "" || f.KeyFile != ""
}

// MutualTLS reports whether client certificates are required.
func (f Files) MutualTLS() bool {
	return f.Enabled() && f.ClientCAFile != ""
}

// ServerConfig builds a TLS 1.2+ server configuration from the files.
func (f Files) ServerConfig() (*tls.Config, error) {
	if f.CertFile == "" || f.KeyFile == "" {
		return nil, ErrIncomplete
	}
	cert, err := tls.LoadX509KeyPair(f.CertFile, f.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	if f.ClientCAFile == "" {
		return cfg, nil
	}

	caPEM, err := os.ReadFile(f.ClientCAFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: read client CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("tlsutil: no CA certificate found in %s", f.ClientCAFile)
	}
	cfg.ClientCAs = pool
	cfg.ClientAuth = tls.RequireAndVerifyClientCert
	return cfg, nil
}

// ServerCredentials wraps ServerConfig as gRPC transport credentials.
func (f Files) ServerCredentials() (credentials.TransportCredentials, error) {
	cfg, err := f.ServerConfig()
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(cfg), nil
}
