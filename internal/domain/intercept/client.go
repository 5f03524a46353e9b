package intercept

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// previewHost is the synthetic base for the relative paths previewed
// components fetch. Requests only resolve while interception is installed.
const previewHost = "http://preview.internal"

// NewAmbientClient builds the process-wide fetch client. Outside a preview
// session it carries a retrying transport for real traffic; Install swaps
// that transport for the fixture router and Uninstall puts it back.
func NewAmbientClient() *resty.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 1 * time.Second
	rc.Logger = nil

	client := resty.New()
	client.SetBaseURL(previewHost)
	client.SetTransport(&retryablehttp.RoundTripper{Client: rc})
	return client
}
