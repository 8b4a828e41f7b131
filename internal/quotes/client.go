package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint serves a random quote as {"content": ..., "author": ...}.
const DefaultEndpoint = "https://api.quotable.io/random"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 2500 * time.Millisecond

const (
	maximumBodyBytesConstant            = 64 * 1024
	maximumErrorBodyBytesConstant       = 512
	endpointRequiredMessageConstant     = "quote endpoint must be provided"
	endpointInvalidTemplateConstant     = "invalid quote endpoint %q: %w"
	endpointSchemeTemplateConstant      = "quote endpoint %q must use http or https"
	emptyQuoteMessageConstant           = "quote response did not contain content"
	requestBuildErrorTemplateConstant   = "failed to build quote request: %w"
	requestErrorTemplateConstant        = "quote request failed: %w"
	responseReadErrorTemplateConstant   = "failed to read quote response: %w"
	responseDecodeErrorTemplateConstant = "failed to decode quote response: %w"
	statusErrorTemplateConstant         = "quote endpoint returned HTTP %d: %s"
	acceptHeaderNameConstant            = "Accept"
	acceptHeaderValueConstant           = "application/json"
	httpSchemeConstant                  = "http"
	httpsSchemeConstant                 = "https"
	quoteRenderTemplateConstant         = "\"%s\" — %s"
)

// ErrEndpointRequired indicates that no endpoint was configured.
var ErrEndpointRequired = errors.New(endpointRequiredMessageConstant)

// ErrEmptyQuote indicates a successful response without quote content.
var ErrEmptyQuote = errors.New(emptyQuoteMessageConstant)

// StatusError represents a non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error describes the unexpected status.
func (statusError *StatusError) Error() string {
	return fmt.Sprintf(statusErrorTemplateConstant, statusError.StatusCode, statusError.Body)
}

// Quote is a fetched quotation.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// String renders the quote the way the busy stream prints it.
func (quote Quote) String() string {
	return fmt.Sprintf(quoteRenderTemplateConstant, quote.Content, quote.Author)
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		if httpClient != nil {
			client.httpClient = httpClient
		}
	}
}

// Client fetches quotes from a single endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient validates the endpoint and constructs a Client.
func NewClient(endpoint string, options ...Option) (*Client, error) {
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if len(trimmedEndpoint) == 0 {
		return nil, ErrEndpointRequired
	}

	parsedEndpoint, parseError := url.Parse(trimmedEndpoint)
	if parseError != nil {
		return nil, fmt.Errorf(endpointInvalidTemplateConstant, trimmedEndpoint, parseError)
	}
	if parsedEndpoint.Scheme != httpSchemeConstant && parsedEndpoint.Scheme != httpsSchemeConstant {
		return nil, fmt.Errorf(endpointSchemeTemplateConstant, trimmedEndpoint)
	}

	client := &Client{
		endpoint:   parsedEndpoint.String(),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// Endpoint returns the normalized endpoint URL.
func (client *Client) Endpoint() string {
	return client.endpoint
}

// Fetch retrieves one quote. Any transport, status, or decoding problem is returned as an error.
func (client *Client) Fetch(fetchContext context.Context) (Quote, error) {
	request, requestError := http.NewRequestWithContext(fetchContext, http.MethodGet, client.endpoint, nil)
	if requestError != nil {
		return Quote{}, fmt.Errorf(requestBuildErrorTemplateConstant, requestError)
	}
	request.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return Quote{}, fmt.Errorf(requestErrorTemplateConstant, responseError)
	}
	defer response.Body.Close()

	body, readError := io.ReadAll(io.LimitReader(response.Body, maximumBodyBytesConstant))
	if readError != nil {
		return Quote{}, fmt.Errorf(responseReadErrorTemplateConstant, readError)
	}

	if response.StatusCode != http.StatusOK {
		bodyText := string(body)
		if len(bodyText) > maximumErrorBodyBytesConstant {
			bodyText = bodyText[:maximumErrorBodyBytesConstant]
		}
		return Quote{}, &StatusError{StatusCode: response.StatusCode, Body: bodyText}
	}

	var quote Quote
	if decodeError := json.Unmarshal(body, &quote); decodeError != nil {
		return Quote{}, fmt.Errorf(responseDecodeErrorTemplateConstant, decodeError)
	}

	quote.Content = strings.TrimSpace(quote.Content)
	quote.Author = strings.TrimSpace(quote.Author)
	if len(quote.Content) == 0 {
		return Quote{}, ErrEmptyQuote
	}

	return quote, nil
}
