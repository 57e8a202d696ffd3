package ratefeed

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futurahomes/backoffice/internal/config"
	"github.com/futurahomes/backoffice/internal/schedule"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <PenaltyRateResponse xmlns="http://rates.futurahomes.ph/">
      <PenaltyRateResult>
        <diffgram>
          <PenaltyRate>
            <PR><DT>2026-08-14</DT><Rate>2.50</Rate></PR>
            <PR><DT>2026-07-14</DT><Rate>2.25</Rate></PR>
          </PenaltyRate>
        </diffgram>
      </PenaltyRateResult>
    </PenaltyRateResponse>
  </soap:Body>
</soap:Envelope>`

func testClient(url string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{RateFeedURL: url}, log)
}

func TestMonthlyRateParsesLatestRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		w.Write([]byte(feedResponse))
	}))
	defer srv.Close()

	rate, err := testClient(srv.URL).MonthlyRate()
	require.NoError(t, err)
	assert.Equal(t, 0.025, rate)
}

func TestMonthlyRateErrors(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		_, err := testClient("").MonthlyRate()
		assert.Error(t, err)
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		_, err := testClient(srv.URL).MonthlyRate()
		assert.Error(t, err)
	})

	t.Run("empty diffgram", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?><diffgram><PenaltyRate></PenaltyRate></diffgram>`))
		}))
		defer srv.Close()
		_, err := testClient(srv.URL).MonthlyRate()
		assert.Error(t, err)
	})
}

func TestEffectiveRateFallsBackToDefault(t *testing.T) {
	assert.Equal(t, schedule.DefaultPenaltyRate, testClient("").EffectiveRate())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedResponse))
	}))
	defer srv.Close()
	assert.Equal(t, 0.025, testClient(srv.URL).EffectiveRate())
}

func TestEffectiveRateCachesFetchedRate(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(feedResponse))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	assert.Equal(t, 0.025, c.EffectiveRate())
	assert.Equal(t, 0.025, c.EffectiveRate())
	assert.Equal(t, 1, hits, "second call is served from cache")
}
