package sigv4

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"

	"evalgo.org/neptuneexport/internal/domain"
	"evalgo.org/neptuneexport/internal/helpers"
)

// emptyPayloadHash is the SHA-256 of an empty body; handshakes carry none.
const emptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// DefaultCredentialsProvider resolves credentials the way the AWS CLI does: environment, shared
// config and credentials files, then container and instance roles.
func DefaultCredentialsProvider(ctx context.Context) (aws.CredentialsProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, domain.NewConfigurationError("credentials", "failed to load default AWS configuration", err)
	}
	return cfg.Credentials, nil
}

// Signer adds SigV4 headers to http requests for the neptune-db service.
type Signer struct {
	region      string
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	now         func() time.Time
}

func NewSigner(region string, credentials aws.CredentialsProvider) (*Signer, error) {
	if region == "" {
		return nil, domain.NewConfigurationError("service-region", "a service region is required for signing", nil)
	}
	if credentials == nil {
		return nil, domain.NewConfigurationError("credentials", "a credentials provider is required for signing", nil)
	}
	return &Signer{
		region:      region,
		credentials: credentials,
		signer:      v4.NewSigner(),
		now:         time.Now,
	}, nil
}

// NewSignerFromProviders resolves the region and builds a signer.
func NewSignerFromProviders(props PropertiesProvider, credentials aws.CredentialsProvider) (*Signer, error) {
	p, err := props.SigV4Properties()
	if err != nil {
		return nil, err
	}
	return NewSigner(p.ServiceRegion, credentials)
}

func (s *Signer) Region() string { return s.region }

// SignRequest signs req in place. The Host used is req.Host when set, otherwise req.URL.Host.
func (s *Signer) SignRequest(req *http.Request) error {
	ctx := req.Context()
	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return domain.NewSigningError("unable to retrieve AWS credentials", err)
	}
	if err := s.signer.SignHTTP(ctx, creds, req, emptyPayloadHash, helpers.NeptuneSigningName, s.region, s.now()); err != nil {
		return domain.NewSigningError("exception occurred while signing the request", err)
	}
	return nil
}
