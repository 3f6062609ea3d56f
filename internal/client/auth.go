package client

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"
)

// HandshakeAuth supplies the headers of each websocket handshake. The driver asks for them every
// time it opens a connection, so each handshake carries a fresh signature.
type HandshakeAuth struct {
	url  string
	sign func(req *http.Request) (http.Header, error)
	log  logrus.FieldLogger

	mu  sync.Mutex
	err error
}

func newHandshakeAuth(gremlinURL string, sign func(req *http.Request) (http.Header, error), log logrus.FieldLogger) *HandshakeAuth {
	if sign == nil {
		return nil
	}
	return &HandshakeAuth{url: gremlinURL, sign: sign, log: log}
}

// Header signs an upgrade request for the Gremlin URL and returns its headers.
func (a *HandshakeAuth) Header() (http.Header, error) {
	u, err := url.Parse(a.url)
	if err != nil {
		return nil, fmt.Errorf("invalid gremlin url %q: %w", a.url, err)
	}
	switch u.Scheme {
	case "wss":
		u.Scheme = "https"
	case "ws":
		u.Scheme = "http"
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return a.sign(req)
}

// GetHeader returns an empty header when signing fails; the failure is kept for Err.
func (a *HandshakeAuth) GetHeader() http.Header {
	header, err := a.Header()

	a.mu.Lock()
	a.err = err
	a.mu.Unlock()

	if err != nil {
		a.log.WithError(err).WithField("url", a.url).Error("Failed to sign Gremlin handshake")
		return http.Header{}
	}
	return header
}

func (a *HandshakeAuth) GetBasicAuth() (bool, string, string) {
	return false, "", ""
}

// Err is the outcome of the last signing attempt.
func (a *HandshakeAuth) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}
