package ratefeed

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/futurahomes/backoffice/internal/config"
	"github.com/futurahomes/backoffice/internal/schedule"
	"github.com/sirupsen/logrus"
)

// Client fetches the published monthly penalty reference rate from the
// housing board's SOAP endpoint. When no feed is configured or the feed
// fails, callers fall back to the default rate. The effective rate is
// cached so penalty computation does not hit the feed per request.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger

	mu        sync.Mutex
	cached    float64
	fetchedAt time.Time
	ttl       time.Duration
}

// NewClient initializes a new rate feed client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RateFeedURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		ttl: time.Hour,
	}
}

// buildSOAPRequest creates a SOAP request for the penalty rate series
func (c *Client) buildSOAPRequest() string {
	fromDate := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	toDate := time.Now().Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<PenaltyRate xmlns="http://rates.futurahomes.ph/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</PenaltyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

// sendRequest sends the SOAP request to the feed
func (c *Client) sendRequest(soapRequest string) ([]byte, error) {
	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer([]byte(soapRequest)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://rates.futurahomes.ph/PenaltyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Rate feed XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse extracts the latest monthly rate from the feed XML
func (c *Client) parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %v", err)
	}

	rows := doc.FindElements("//diffgram/PenaltyRate/PR")
	if len(rows) == 0 {
		return 0, fmt.Errorf("no rate data found in XML")
	}

	// Latest row comes first.
	rateElement := rows[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element not found in XML")
	}

	var percent float64
	if _, err := fmt.Sscanf(rateElement.Text(), "%f", &percent); err != nil {
		return 0, fmt.Errorf("failed to parse rate: %v", err)
	}
	return percent / 100, nil
}

// MonthlyRate retrieves the current monthly penalty rate from the feed.
func (c *Client) MonthlyRate() (float64, error) {
	if c.url == "" {
		return 0, fmt.Errorf("no rate feed configured")
	}
	body, err := c.sendRequest(c.buildSOAPRequest())
	if err != nil {
		return 0, err
	}
	rate, err := c.parseXMLResponse(body)
	if err != nil {
		return 0, err
	}
	c.log.Infof("Retrieved penalty reference rate: %.4f/month", rate)
	return rate, nil
}

// EffectiveRate returns the feed rate, or the default 2%/month when the
// feed is absent or failing. A fetched rate is reused until the cache
// TTL expires; a failed fetch is not cached.
func (c *Client) EffectiveRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		return c.cached
	}
	rate, err := c.MonthlyRate()
	if err != nil {
		c.log.Debugf("Falling back to default penalty rate: %v", err)
		return schedule.DefaultPenaltyRate
	}
	c.cached = rate
	c.fetchedAt = time.Now()
	return rate
}
