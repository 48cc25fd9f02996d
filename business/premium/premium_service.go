package premium

import "time"

// Service produces the simulated paid API payloads. The data is synthetic;
// the point of these endpoints is exercising the payment gate, not the
// content behind it.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{
		now: time.Now,
	}
}

type (
	WeatherReport struct {
		City       string    `json:"city"`
		TempC      float64   `json:"tempC"`
		Conditions string    `json:"conditions"`
		UpdatedAt  time.Time `json:"updatedAt"`
	}

	PairQuote struct {
		Pair     string  `json:"pair"`
		PriceUSD float64 `json:"priceUSD"`
	}

	MarketSnapshot struct {
		Pairs     []PairQuote `json:"pairs"`
		UpdatedAt time.Time   `json:"updatedAt"`
	}

	AICompletion struct {
		Model      string    `json:"model"`
		Completion string    `json:"completion"`
		CreatedAt  time.Time `json:"createdAt"`
	}
)

var conditions = []string{"clear", "partly cloudy", "overcast", "light rain", "windy"}

func (s *Service) Weather() WeatherReport {
	now := s.now()
	// Hour-seeded variation so repeated calls look alive without a data feed.
	hour := now.Hour()

	return WeatherReport{
		City:       "San Francisco",
		TempC:      12 + float64(hour%12)*0.5,
		Conditions: conditions[hour%len(conditions)],
		UpdatedAt:  now,
	}
}

func (s *Service) Market() MarketSnapshot {
	now := s.now()
	drift := float64(now.Minute()) / 60

	return MarketSnapshot{
		Pairs: []PairQuote{
			{Pair: "ETH-USD", PriceUSD: 3200 + drift*25},
			{Pair: "BTC-USD", PriceUSD: 97000 + drift*140},
			{Pair: "USDC-USD", PriceUSD: 1.00},
		},
		UpdatedAt: now,
	}
}

func (s *Service) AI() AICompletion {
	return AICompletion{
		Model:      "micromart-sim-1",
		Completion: "Micropayments make per-request pricing practical: no accounts, no subscriptions, just pay for the call you make.",
		CreatedAt:  s.now(),
	}
}
