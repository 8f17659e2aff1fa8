// internal/gateway/research.go
package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	commonhttp "marketscout/internal/common/http"
	"marketscout/internal/common/logger"
)

// researchConnectMsg is the fixed message shown when the research backend
// cannot be reached at all.
const researchConnectMsg = "Cannot reach the research backend. Make sure the service is running on port 8000."

// ResearchClient talks to the market-research agent backend.
type ResearchClient struct {
	baseURL string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewResearchClient(baseURL string, client *commonhttp.Client, log logger.Logger) *ResearchClient {
	return &ResearchClient{
		baseURL: baseURL,
		client:  client,
		logger:  log.With(map[string]interface{}{"backend": BackendResearch}),
	}
}

// ResearchOptions are the pass-through hints for a comprehensive research
// call. The backend owns their meaning; the gateway only encodes them.
type ResearchOptions struct {
	IncludeRawData bool
	UseCache       bool
}

func DefaultResearchOptions() ResearchOptions {
	return ResearchOptions{IncludeRawData: false, UseCache: true}
}

// OpportunityOptions tune a city-opportunities call.
type OpportunityOptions struct {
	IncludeAnalysis  bool
	MaxOpportunities int
}

func DefaultOpportunityOptions() OpportunityOptions {
	return OpportunityOptions{IncludeAnalysis: true, MaxOpportunities: 5}
}

// ComprehensiveResearch runs the full market analysis for one business type
// and location pair.
func (c *ResearchClient) ComprehensiveResearch(ctx context.Context, businessType, location string, opts ResearchOptions) (Payload, error) {
	params := url.Values{}
	params.Set("business_type", businessType)
	params.Set("location", location)
	params.Set("include_raw_data", strconv.FormatBool(opts.IncludeRawData))
	params.Set("use_cache", strconv.FormatBool(opts.UseCache))

	return c.get(ctx, "comprehensive-research", "/api/comprehensive-research", params)
}

// CityOpportunities lists promising business categories for one city.
func (c *ResearchClient) CityOpportunities(ctx context.Context, city string, opts OpportunityOptions) (Payload, error) {
	params := url.Values{}
	params.Set("city", city)
	params.Set("include_analysis", strconv.FormatBool(opts.IncludeAnalysis))
	params.Set("max_opportunities", strconv.Itoa(opts.MaxOpportunities))

	return c.get(ctx, "city-opportunities", "/api/city-opportunities", params)
}

// RawScrapedData fetches the unprocessed scrape results behind an analysis.
func (c *ResearchClient) RawScrapedData(ctx context.Context, businessType, location string) (Payload, error) {
	params := url.Values{}
	params.Set("business_type", businessType)
	params.Set("location", location)

	return c.get(ctx, "raw-scraped-data", "/api/raw-scraped-data", params)
}

// Health is a liveness probe against the research backend.
func (c *ResearchClient) Health(ctx context.Context) (Payload, error) {
	return c.get(ctx, "health", "/health", nil)
}

func (c *ResearchClient) get(ctx context.Context, operation, path string, params url.Values) (Payload, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	return doJSON(c.client, c.logger, BackendResearch, operation, researchConnectMsg, req)
}
