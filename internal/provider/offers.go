// Package provider fetches loan offers from the external discovery feed.
// The feed is best effort: on any failure the built-in catalog is served
// so the comparison endpoints keep working.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/loanpath/backend/internal/model"
)

type Client struct {
	feedURL    string
	httpClient *http.Client
}

func NewClient(feedURL string, timeout time.Duration) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type feedResponse struct {
	Providers []model.ExternalOffer `json:"providers"`
}

// FetchOffers queries the discovery feed for offers matching a loan type.
// An empty feed URL means the deployment runs on the built-in catalog only.
func (c *Client) FetchOffers(ctx context.Context, loanType string) ([]model.ExternalOffer, error) {
	if c.feedURL == "" {
		return FallbackOffers(loanType), nil
	}

	reqURL := c.feedURL
	if loanType != "" {
		reqURL += "?loanType=" + url.QueryEscape(loanType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching offer feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("offer feed returned status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding offer feed: %w", err)
	}
	return feed.Providers, nil
}

// FallbackOffers returns the curated catalog served when the feed is
// unreachable or not configured.
func FallbackOffers(loanType string) []model.ExternalOffer {
	if loanType == "" {
		loanType = "Personal Loan"
	}
	return []model.ExternalOffer{
		{
			Company:       "HDFC Bank",
			LoanType:      loanType,
			MaxAmount:     "₹5,00,000",
			InterestRate:  "10.5% - 16%",
			Tenure:        "12-60 months",
			ProcessingFee: "₹2,500 - ₹5,000",
			EMI:           "₹9,500 - ₹12,000",
			Confidence:    "high",
			Badges:        []string{"Recommended", "Fast Approval"},
			Documents:     []string{"Aadhaar Card", "PAN Card", "Salary Slip", "Bank Statement"},
			ApprovalTime:  "2-5 days",
		},
		{
			Company:       "ICICI Bank",
			LoanType:      loanType,
			MaxAmount:     "₹5,00,000",
			InterestRate:  "11% - 17%",
			Tenure:        "12-60 months",
			ProcessingFee: "₹2,000 - ₹4,500",
			EMI:           "₹9,800 - ₹12,500",
			Confidence:    "high",
			Badges:        []string{"Low EMI", "Fast Approval"},
			Documents:     []string{"Aadhaar Card", "PAN Card", "Salary Slip", "Bank Statement", "Employment Proof"},
			ApprovalTime:  "3-7 days",
		},
		{
			Company:       "Axis Bank",
			LoanType:      loanType,
			MaxAmount:     "₹5,00,000",
			InterestRate:  "10.75% - 16.5%",
			Tenure:        "12-60 months",
			ProcessingFee: "₹2,500 - ₹5,000",
			EMI:           "₹9,600 - ₹12,200",
			Confidence:    "medium",
			Badges:        []string{"Recommended"},
			Documents:     []string{"Aadhaar Card", "PAN Card", "Salary Slip", "Bank Statement"},
			ApprovalTime:  "5-10 days",
		},
		{
			Company:       "Bajaj Finserv",
			LoanType:      loanType,
			MaxAmount:     "₹5,00,000",
			InterestRate:  "12% - 18%",
			Tenure:        "12-84 months",
			ProcessingFee: "₹1,500 - ₹4,000",
			EMI:           "₹10,000 - ₹13,000",
			Confidence:    "medium",
			Badges:        []string{"Low Processing Fee"},
			Documents:     []string{"Aadhaar Card", "PAN Card", "Salary Slip"},
			ApprovalTime:  "1-3 days",
		},
		{
			Company:       "Fullerton India",
			LoanType:      loanType,
			MaxAmount:     "₹5,00,000",
			InterestRate:  "13% - 20%",
			Tenure:        "12-60 months",
			ProcessingFee: "₹2,000 - ₹5,000",
			EMI:           "₹10,500 - ₹14,000",
			Confidence:    "low",
			Badges:        []string{},
			Documents:     []string{"Aadhaar Card", "PAN Card", "Salary Slip", "Bank Statement"},
			ApprovalTime:  "7-14 days",
		},
	}
}
