// client package provides a client context for invoking picam API endpoints.
package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"picam.api/v0/pkg/picture"
)

type ClientHttpContext struct {
	HTTP *resty.Client
}

type ClientHttpOptions struct {
	// Constructed host:port server endpoint
	ServerEndpoint string

	// Defaults to 5 minutes, long enough for a capture or sync to finish.
	Timeout time.Duration
}

type ClientHttpTLSOptions struct {
	ClientHttpOptions
	ClientCertificatePath string
	ClientKeyPath         string
	TrustedCaPath         string
}

// createTlsConfig loads the client's key pair and the CA that authorized the
// server's certificate.
func createTlsConfig(clientCertPath string, clientKeyPath string, trustedCaCertPath string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(clientCertPath, clientKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed creating x509 keypair from client cert file %s and client key file %s: %v", clientCertPath, clientKeyPath, err)
	}

	log.Printf("Using trusted CA Certificate: %s\n", trustedCaCertPath)
	caCrtContent, err := os.ReadFile(trustedCaCertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert %s: %v", trustedCaCertPath, err)
	}

	caCrtPool := x509.NewCertPool()
	if !caCrtPool.AppendCertsFromPEM(caCrtContent) {
		return nil, fmt.Errorf("no certificates found in CA cert %s", trustedCaCertPath)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caCrtPool,
	}, nil
}

func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	r := resty.New()
	r.SetBaseURL(baseURL)
	r.SetTimeout(timeout)
	r.SetHeader("Accept", "application/json")
	return r
}

// NewClientContext creates an insecure Client HTTP Context instance.
func NewClientContext(opt ClientHttpOptions) (*ClientHttpContext, error) {
	return &ClientHttpContext{
		HTTP: newRestyClient("http://"+opt.ServerEndpoint, opt.Timeout),
	}, nil
}

// NewClientContextWithTLS creates a Client HTTP Context instance, wrapped in TLS.
func NewClientContextWithTLS(opt ClientHttpTLSOptions) (*ClientHttpContext, error) {
	tlsConfig, err := createTlsConfig(
		opt.ClientCertificatePath,
		opt.ClientKeyPath,
		opt.TrustedCaPath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed client context creation: %v", err)
	}

	r := newRestyClient("https://"+opt.ServerEndpoint, opt.Timeout)
	r.SetTLSClientConfig(tlsConfig)
	return &ClientHttpContext{HTTP: r}, nil
}

// checkResponse turns transport errors and non-2xx responses into errors. The
// server reports failures as a plain "Error: <detail>" body.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to invoke request with server: %v", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s %s resulted in %d: %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), resp.String())
	}
	return nil
}

// Ping invokes /ping and returns the response body.
func (c *ClientHttpContext) Ping(ctx context.Context) (string, error) {
	resp, err := c.HTTP.R().SetContext(ctx).Get("/ping")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// Capture asks the server to take one picture.
func (c *ClientHttpContext) Capture(ctx context.Context, req picture.CaptureRequest) (*picture.CaptureArtifact, error) {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&picture.CaptureArtifact{}).
		Post("/picture")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return resp.Result().(*picture.CaptureArtifact), nil
}

// Sync asks the server to copy directory to its cloud host.
func (c *ClientHttpContext) Sync(ctx context.Context, directory string) (*picture.SyncResult, error) {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&picture.SyncResult{}).
		Put("/picture/" + url.PathEscape(directory))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return resp.Result().(*picture.SyncResult), nil
}

// Delete asks the server to remove directory.
func (c *ClientHttpContext) Delete(ctx context.Context, directory string) error {
	resp, err := c.HTTP.R().SetContext(ctx).Delete("/picture/" + url.PathEscape(directory))
	if err := checkResponse(resp, err); err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent {
		log.Printf("Unexpected delete response code %d\n", resp.StatusCode())
	}
	return nil
}
