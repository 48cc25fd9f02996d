package paygate

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coinbase/x402/go/pkg/facilitatorclient"
	"github.com/coinbase/x402/go/pkg/types"
	"github.com/labstack/echo/v4"

	"microMart/pkg/logger"
	"microMart/pkg/metrics"
)

const x402Version = 1

// ReceiptKey is the echo context key under which Middleware stores the Receipt.
const ReceiptKey = "paygate.receipt"

var (
	// ErrPaymentRequired signals that the gate already wrote a 402 response;
	// the handler should stop without writing anything else.
	ErrPaymentRequired = errors.New("payment required")

	ErrUnsupportedNetwork = errors.New("unsupported network")
	ErrUnsupportedToken   = errors.New("unsupported token")
)

// FacilitatorClient contract interface
type FacilitatorClient interface {
	Verify(payload *types.PaymentPayload, requirements *types.PaymentRequirements) (*types.VerifyResponse, error)
	Settle(payload *types.PaymentPayload, requirements *types.PaymentRequirements) (*types.SettleResponse, error)
}

type Config struct {
	// PayTo is the payee wallet address included in every payment requirement.
	PayTo          string
	FacilitatorURL string
	DefaultNetwork string
	// ResourceRoot prefixes the request path to build the resource URL
	// advertised to payers.
	ResourceRoot string
	// SettleWait bounds how long response paths wait on a settlement handle.
	SettleWait time.Duration
}

// Gate enforces payment-before-access on storefront routes. Verification and
// settlement are entirely the facilitator's job; the gate only computes the
// price requirements, forwards the proof, and exposes the asynchronous
// settlement outcome as a completion handle.
type Gate struct {
	payTo          string
	defaultNetwork string
	resourceRoot   string
	settleWait     time.Duration
	facilitator    FacilitatorClient
}

func New(cfg Config) *Gate {
	fc := facilitatorclient.NewFacilitatorClient(&types.FacilitatorConfig{URL: cfg.FacilitatorURL})
	return NewWithClient(fc, cfg)
}

func NewWithClient(fc FacilitatorClient, cfg Config) *Gate {
	if cfg.DefaultNetwork == "" {
		cfg.DefaultNetwork = "base-sepolia"
	}
	if cfg.SettleWait <= 0 {
		cfg.SettleWait = 60 * time.Second
	}

	return &Gate{
		payTo:          cfg.PayTo,
		defaultNetwork: cfg.DefaultNetwork,
		resourceRoot:   cfg.ResourceRoot,
		settleWait:     cfg.SettleWait,
		facilitator:    fc,
	}
}

// SettleWait is the bounded budget handlers should pass to Settlement.Wait.
func (g *Gate) SettleWait() time.Duration {
	return g.settleWait
}

// Receipt is the proof-of-payment result a handler continues with.
type Receipt struct {
	Free       bool
	Network    string
	TokenName  string
	Payer      string
	PriceLabel string
	AmountUSD  float64
	Settlement *Settlement
}

// Charge gates the in-flight request on payment of amountUSD. Either it
// returns a Receipt (proof verified, settlement started), or it writes the
// 402 challenge itself and returns ErrPaymentRequired, or it returns an
// error the handler must map (unsupported network/token, facilitator
// transport failure). A non-positive amount is the free checkout path and
// never contacts the facilitator.
func (g *Gate) Charge(c echo.Context, amountUSD float64, opts ...ChargeOption) (*Receipt, error) {
	cfg := chargeConfig{network: g.defaultNetwork, token: defaultTokenSymbol}
	for _, opt := range opts {
		opt(&cfg)
	}

	if amountUSD <= 0 {
		return &Receipt{Free: true, Network: cfg.network}, nil
	}

	netCfg, ok := supportedNetworks[cfg.network]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, cfg.network)
	}
	token, ok := netCfg.tokens[strings.ToLower(cfg.token)]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrUnsupportedToken, cfg.token, cfg.network)
	}

	label := PriceLabel(amountUSD)
	resource := cfg.resource
	if resource == "" {
		resource = g.resourceRoot + c.Request().URL.Path
	}

	requirements := &types.PaymentRequirements{
		Scheme:            "exact",
		Network:           cfg.network,
		MaxAmountRequired: amountToAssetUnits(amountUSD, token.decimals).String(),
		Resource:          resource,
		Description:       cfg.description,
		MimeType:          cfg.mimeType,
		PayTo:             g.payTo,
		MaxTimeoutSeconds: int(g.settleWait / time.Second),
		Asset:             token.address,
	}
	requirements.SetUSDCInfo(netCfg.testnet)

	payment := c.Request().Header.Get("X-PAYMENT")
	payload, err := types.DecodePaymentPayloadFromBase64(payment)
	if err != nil {
		metrics.PaymentChallenges.Inc()
		g.writeChallenge(c, requirements, label, token.name, "X-PAYMENT header is required")
		return nil, ErrPaymentRequired
	}

	verification, err := g.facilitator.Verify(payload, requirements)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !verification.IsValid {
		reason := "payment verification failed"
		if verification.InvalidReason != nil && *verification.InvalidReason != "" {
			reason = *verification.InvalidReason
		}
		logger.Warn("payment rejected", "reason", reason, "resource", resource)
		metrics.PaymentChallenges.Inc()
		g.writeChallenge(c, requirements, label, token.name, reason)
		return nil, ErrPaymentRequired
	}

	metrics.PaymentsVerified.Inc()
	var payer string
	if verification.Payer != nil {
		payer = *verification.Payer
	}

	settlement := newSettlement()
	go g.settle(settlement, payload, requirements)

	return &Receipt{
		Network:    cfg.network,
		TokenName:  token.name,
		Payer:      payer,
		PriceLabel: label,
		AmountUSD:  amountUSD,
		Settlement: settlement,
	}, nil
}

// Middleware gates a fixed-price route. On verified payment it waits the
// gate's settlement budget so the settlement headers land on the response,
// then runs the handler; on timeout the handler still runs and the response
// simply carries no transaction headers.
func (g *Gate) Middleware(amountUSD float64, opts ...ChargeOption) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			receipt, err := g.Charge(c, amountUSD, opts...)
			if err != nil {
				if errors.Is(err, ErrPaymentRequired) {
					return nil
				}
				return err
			}

			if !receipt.Free {
				resp, err := receipt.Settlement.Wait(g.settleWait)
				switch {
				case err == nil:
					ApplySettlementHeaders(c, resp)
				case errors.Is(err, ErrSettlementPending):
					// Proof is verified; respond now and let settlement
					// finish in the background.
				default:
					return c.JSON(http.StatusPaymentRequired, echo.Map{
						"error":       err.Error(),
						"x402Version": x402Version,
					})
				}
			}

			c.Set(ReceiptKey, receipt)
			return next(c)
		}
	}
}

// ReceiptFrom extracts the Receipt stored by Middleware, if any.
func ReceiptFrom(c echo.Context) (*Receipt, bool) {
	receipt, ok := c.Get(ReceiptKey).(*Receipt)
	return receipt, ok
}

// ApplySettlementHeaders exposes the settlement result on the response:
// X-PAYMENT-RESPONSE (base64 JSON), X-PAYMENT-TX-HASH and X-PAYMENT-TX-EXPLORER.
func ApplySettlementHeaders(c echo.Context, resp *types.SettleResponse) {
	header := c.Response().Header()
	if encoded, err := resp.EncodeToBase64String(); err == nil {
		header.Set("X-PAYMENT-RESPONSE", encoded)
	}
	if resp.Transaction != "" {
		header.Set("X-PAYMENT-TX-HASH", resp.Transaction)
		if explorer := ExplorerTxURL(resp.Network, resp.Transaction); explorer != "" {
			header.Set("X-PAYMENT-TX-EXPLORER", explorer)
		}
	}
}

func (g *Gate) settle(s *Settlement, payload *types.PaymentPayload, requirements *types.PaymentRequirements) {
	start := time.Now()
	resp, err := g.facilitator.Settle(payload, requirements)
	metrics.SettlementSeconds.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.SettlementOutcomes.WithLabelValues("error").Inc()
		logger.Error("settlement error", "error", err)
	case !resp.Success:
		metrics.SettlementOutcomes.WithLabelValues("failed").Inc()
		logger.Warn("settlement rejected", "network", resp.Network)
	default:
		metrics.SettlementOutcomes.WithLabelValues("settled").Inc()
		logger.Info("payment settled", "network", resp.Network, "tx", resp.Transaction)
	}

	s.complete(resp, err)
}

// PaywallData feeds the browser-facing 402 page.
type PaywallData struct {
	PriceLabel  string
	Description string
	Network     string
	TokenName   string
	PayTo       string
	Resource    string
	Reason      string
}

func (g *Gate) writeChallenge(c echo.Context, requirements *types.PaymentRequirements, label, tokenName, reason string) {
	if isWebBrowser(c.Request()) {
		err := c.Render(http.StatusPaymentRequired, "paywall.html", PaywallData{
			PriceLabel:  label,
			Description: requirements.Description,
			Network:     requirements.Network,
			TokenName:   tokenName,
			PayTo:       requirements.PayTo,
			Resource:    requirements.Resource,
			Reason:      reason,
		})
		if err == nil {
			return
		}
		logger.Error("paywall render failed", "error", err)
	}

	_ = c.JSON(http.StatusPaymentRequired, echo.Map{
		"error":       reason,
		"accepts":     []*types.PaymentRequirements{requirements},
		"x402Version": x402Version,
	})
}

func isWebBrowser(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html") &&
		strings.Contains(r.Header.Get("User-Agent"), "Mozilla")
}
