package httpapi

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options controls HTTP API runtime behavior.
type Options struct {
	// ConvertTimeout bounds a whole request (fetch + parse + compile + render).
	ConvertTimeout time.Duration

	// FetchTimeout is the per-subscription download timeout for GET /sub.
	FetchTimeout time.Duration

	// MaxBodyBytes caps the POST /api/convert body.
	MaxBodyBytes int64

	// MaxSubs caps the number of url= parameters of GET /sub.
	MaxSubs int

	// Logger receives the access log. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.ConvertTimeout <= 0 {
		o.ConvertTimeout = 60 * time.Second
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 15 * time.Second
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 5 * 1024 * 1024
	}
	if o.MaxSubs <= 0 {
		o.MaxSubs = 8
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}
