package client

import (
	"errors"
	"net/http"

	"evalgo.org/neptuneexport/internal/domain"
)

// StrategyKind names a SigningStrategy.
type StrategyKind string

const (
	KindNone            StrategyKind = "none"
	KindPerRequest      StrategyKind = "per-request"
	KindStaticHandshake StrategyKind = "static-handshake"
)

// RequestSigner signs a websocket upgrade request in place.
type RequestSigner interface {
	SignRequest(req *http.Request) error
}

// SigningStrategy is exactly one of NoSigning, PerRequestSigning or StaticHandshake.
type SigningStrategy interface {
	Kind() StrategyKind
	signer() func(req *http.Request) (http.Header, error)
}

// NoSigning leaves handshakes unsigned.
type NoSigning struct{}

func (NoSigning) Kind() StrategyKind { return KindNone }

func (NoSigning) signer() func(req *http.Request) (http.Header, error) { return nil }

// PerRequestSigning signs every handshake of a direct connection with a freshly built signer.
type PerRequestSigning struct {
	NewSigner func() (RequestSigner, error)
}

func (PerRequestSigning) Kind() StrategyKind { return KindPerRequest }

func (s PerRequestSigning) signer() func(req *http.Request) (http.Header, error) {
	return func(req *http.Request) (http.Header, error) {
		signer, err := s.NewSigner()
		if err != nil {
			return nil, asSigningError(err)
		}
		if err := signer.SignRequest(req); err != nil {
			return nil, asSigningError(err)
		}
		return req.Header.Clone(), nil
	}
}

// StaticHandshake hands the load balancer channelizer the cluster it must sign for.
type StaticHandshake struct {
	AuthProperty string
	Channelizer  *LBAwareSigV4Channelizer
}

func (StaticHandshake) Kind() StrategyKind { return KindStaticHandshake }

func (s StaticHandshake) signer() func(req *http.Request) (http.Header, error) {
	return func(req *http.Request) (http.Header, error) {
		return s.Channelizer.Sign(req, s.AuthProperty)
	}
}

func asSigningError(err error) error {
	if err == nil {
		return nil
	}
	var signErr *domain.SigningError
	if errors.As(err, &signErr) {
		return err
	}
	return domain.NewSigningError("exception occurred while signing the request", err)
}
