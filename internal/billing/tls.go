package billing

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// transportCredentials returns TLS credentials when a CA file is configured
// and plaintext credentials otherwise. A client certificate turns on mTLS.
func transportCredentials(cfg config.BillingConfig) (credentials.TransportCredentials, error) {
	if cfg.TLSCAFile == "" {
		return insecure.NewCredentials(), nil
	}

	caPEM, err := os.ReadFile(cfg.TLSCAFile)
	if err != nil {
		return nil, fmt.Errorf("read CA file: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}

	tlsCfg := &tls.Config{
		RootCAs:    caPool,
		MinVersion: tls.VersionTLS12,
	}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client key pair: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return credentials.NewTLS(tlsCfg), nil
}
