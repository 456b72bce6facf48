package cdp

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// DefaultSocket of a leaser service shared between runs
const DefaultSocket = "waitker.sock"

// SocketLeaser leases browsers from a leaser service listening on a unix socket
type SocketLeaser struct {
	leaserClient http.Client
}

// NewSocketLeaser for the service on sock
func NewSocketLeaser(sock string) *SocketLeaser {
	s := &SocketLeaser{}
	s.leaserClient = http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", sock)
			},
		},
	}
	return s
}

func (s *SocketLeaser) get(path string) (string, error) {
	resp, err := s.leaserClient.Get("http://unix" + path)
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return string(body), nil
	case http.StatusNotFound:
		return "", errors.New("browser not found")
	default:
		return "", errors.Errorf("leaser returned %d: %s", resp.StatusCode, body)
	}
}

// Acquire a new browser, returns its debugger port
func (s *SocketLeaser) Acquire() (string, error) {
	return s.get("/acquire")
}

// Count how many browsers
func (s *SocketLeaser) Count() (string, error) {
	return s.get("/count")
}

// Return (and kill) the browser
func (s *SocketLeaser) Return(port string) error {
	_, err := s.get("/return?port=" + url.QueryEscape(port))
	return err
}

// Cleanup all browsers of the service
func (s *SocketLeaser) Cleanup() (string, error) {
	return s.get("/cleanup")
}
