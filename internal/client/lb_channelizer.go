package client

import (
	"net/http"

	"evalgo.org/neptuneexport/internal/cluster"
)

// LBAwareSigV4ChannelizerName names the load balancer aware channelizer.
const LBAwareSigV4ChannelizerName = "LBAwareSigV4WebSocketChannelizer"

// LBAwareSigV4Channelizer signs the upgrade request for the cluster behind a load balancer. The
// signature covers the cluster's Host; behind an ALB the request is then sent with the balancer's
// own Host.
type LBAwareSigV4Channelizer struct {
	newSigner func() (RequestSigner, error)
}

func NewLBAwareSigV4Channelizer(newSigner func() (RequestSigner, error)) *LBAwareSigV4Channelizer {
	return &LBAwareSigV4Channelizer{newSigner: newSigner}
}

func (c *LBAwareSigV4Channelizer) Name() string { return LBAwareSigV4ChannelizerName }

// Validate checks an encoded handshake request config.
func (c *LBAwareSigV4Channelizer) Validate(authProperty string) error {
	_, err := cluster.ParseHandshakeRequestConfig(authProperty)
	return err
}

// Sign signs req for the cluster named in authProperty and returns the handshake headers. Only
// an NLB handshake carries the cluster Host explicitly.
func (c *LBAwareSigV4Channelizer) Sign(req *http.Request, authProperty string) (http.Header, error) {
	hs, err := cluster.ParseHandshakeRequestConfig(authProperty)
	if err != nil {
		return nil, err
	}

	req.Host = hs.HostHeader()

	signer, err := c.newSigner()
	if err != nil {
		return nil, asSigningError(err)
	}
	if err := signer.SignRequest(req); err != nil {
		return nil, asSigningError(err)
	}

	header := req.Header.Clone()
	if !hs.RemoveHostHeader() {
		header.Set("Host", req.Host)
	}
	return header, nil
}
