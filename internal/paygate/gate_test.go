package paygate

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/coinbase/x402/go/pkg/types"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFacilitator struct {
	mu          sync.Mutex
	verifyResp  *types.VerifyResponse
	verifyErr   error
	settleResp  *types.SettleResponse
	settleErr   error
	settleDelay time.Duration
	verifyCalls int
	settleCalls int
}

func (s *stubFacilitator) Verify(_ *types.PaymentPayload, _ *types.PaymentRequirements) (*types.VerifyResponse, error) {
	s.mu.Lock()
	s.verifyCalls++
	s.mu.Unlock()
	return s.verifyResp, s.verifyErr
}

func (s *stubFacilitator) Settle(_ *types.PaymentPayload, _ *types.PaymentRequirements) (*types.SettleResponse, error) {
	s.mu.Lock()
	s.settleCalls++
	s.mu.Unlock()
	if s.settleDelay > 0 {
		time.Sleep(s.settleDelay)
	}
	return s.settleResp, s.settleErr
}

func (s *stubFacilitator) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifyCalls, s.settleCalls
}

func strPtr(s string) *string { return &s }

func validFacilitator() *stubFacilitator {
	return &stubFacilitator{
		verifyResp: &types.VerifyResponse{IsValid: true, Payer: strPtr("0xpayer")},
		settleResp: &types.SettleResponse{
			Success:     true,
			Transaction: "0xtxhash",
			Network:     "base-sepolia",
		},
	}
}

func newGate(fc FacilitatorClient) *Gate {
	return NewWithClient(fc, Config{
		PayTo:          "0x209693Bc6afc0C5328bA36FaF03C514EF312287C",
		DefaultNetwork: "base-sepolia",
		ResourceRoot:   "http://localhost:4021",
		SettleWait:     time.Second,
	})
}

func newContext(method, target string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func paymentHeader(t *testing.T) string {
	t.Helper()
	payload := types.PaymentPayload{
		X402Version: 1,
		Scheme:      "exact",
		Network:     "base-sepolia",
		Payload:     map[string]any{"signature": "0xsig"},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestChargeZeroAmountBypassesFacilitator(t *testing.T) {
	fc := validFacilitator()
	gate := newGate(fc)
	c, _ := newContext(http.MethodGet, "/checkout-page", nil)

	receipt, err := gate.Charge(c, 0)
	require.NoError(t, err)

	assert.True(t, receipt.Free)
	verifies, settles := fc.calls()
	assert.Zero(t, verifies)
	assert.Zero(t, settles)
}

func TestChargeWithoutHeaderWrites402(t *testing.T) {
	fc := validFacilitator()
	gate := newGate(fc)
	c, rec := newContext(http.MethodGet, "/ppv/synthwave-dreams", nil)

	_, err := gate.Charge(c, 0.05)
	assert.ErrorIs(t, err, ErrPaymentRequired)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	var body struct {
		Error       string                       `json:"error"`
		Accepts     []*types.PaymentRequirements `json:"accepts"`
		X402Version int                          `json:"x402Version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "X-PAYMENT header is required", body.Error)
	assert.Equal(t, 1, body.X402Version)
	require.Len(t, body.Accepts, 1)
	assert.Equal(t, "exact", body.Accepts[0].Scheme)
	assert.Equal(t, "base-sepolia", body.Accepts[0].Network)
	assert.Equal(t, "50000", body.Accepts[0].MaxAmountRequired)
	assert.Equal(t, "http://localhost:4021/ppv/synthwave-dreams", body.Accepts[0].Resource)

	verifies, _ := fc.calls()
	assert.Zero(t, verifies)
}

func TestChargeInvalidProofWrites402(t *testing.T) {
	fc := validFacilitator()
	fc.verifyResp = &types.VerifyResponse{IsValid: false, InvalidReason: strPtr("insufficient_funds")}
	gate := newGate(fc)
	c, rec := newContext(http.MethodPost, "/checkout", map[string]string{"X-PAYMENT": paymentHeader(t)})

	_, err := gate.Charge(c, 0.70)
	assert.ErrorIs(t, err, ErrPaymentRequired)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_funds")

	_, settles := fc.calls()
	assert.Zero(t, settles)
}

func TestChargeVerifyTransportError(t *testing.T) {
	fc := validFacilitator()
	fc.verifyResp = nil
	fc.verifyErr = assert.AnError
	gate := newGate(fc)
	c, _ := newContext(http.MethodPost, "/checkout", map[string]string{"X-PAYMENT": paymentHeader(t)})

	_, err := gate.Charge(c, 0.70)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPaymentRequired)
}

func TestChargeUnsupportedNetwork(t *testing.T) {
	gate := newGate(validFacilitator())
	c, _ := newContext(http.MethodPost, "/checkout", nil)

	_, err := gate.Charge(c, 0.70, WithNetwork("dogecoin"))
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
}

func TestChargeUnsupportedToken(t *testing.T) {
	gate := newGate(validFacilitator())
	c, _ := newContext(http.MethodPost, "/checkout", nil)

	_, err := gate.Charge(c, 0.70, WithToken("shiba"))
	assert.ErrorIs(t, err, ErrUnsupportedToken)
}

func TestChargeVerifiedStartsSettlement(t *testing.T) {
	fc := validFacilitator()
	gate := newGate(fc)
	c, _ := newContext(http.MethodPost, "/checkout", map[string]string{"X-PAYMENT": paymentHeader(t)})

	receipt, err := gate.Charge(c, 0.70)
	require.NoError(t, err)

	assert.False(t, receipt.Free)
	assert.Equal(t, "base-sepolia", receipt.Network)
	assert.Equal(t, "USDC", receipt.TokenName)
	assert.Equal(t, "0xpayer", receipt.Payer)
	assert.Equal(t, "$0.7", receipt.PriceLabel)

	settled, err := receipt.Settlement.Wait(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "0xtxhash", settled.Transaction)

	verifies, settles := fc.calls()
	assert.Equal(t, 1, verifies)
	assert.Equal(t, 1, settles)
}

func TestSettlementWaitTimesOutThenResolves(t *testing.T) {
	fc := validFacilitator()
	fc.settleDelay = 150 * time.Millisecond
	gate := newGate(fc)
	c, _ := newContext(http.MethodGet, "/ppv/x", map[string]string{"X-PAYMENT": paymentHeader(t)})

	receipt, err := gate.Charge(c, 0.05)
	require.NoError(t, err)

	_, err = receipt.Settlement.Wait(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrSettlementPending)

	// The settlement keeps running; a later wait sees the result.
	settled, err := receipt.Settlement.Wait(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "0xtxhash", settled.Transaction)
}

func TestSettlementWaitSurfacesFailure(t *testing.T) {
	fc := validFacilitator()
	fc.settleResp = &types.SettleResponse{Success: false, ErrorReason: strPtr("nonce already used")}
	gate := newGate(fc)
	c, _ := newContext(http.MethodPost, "/checkout", map[string]string{"X-PAYMENT": paymentHeader(t)})

	receipt, err := gate.Charge(c, 0.70)
	require.NoError(t, err)

	_, err = receipt.Settlement.Wait(time.Second)
	var settleErr *SettleFailedError
	require.ErrorAs(t, err, &settleErr)
	assert.Equal(t, "nonce already used", settleErr.Reason)
}

func TestMiddlewareGatesAndSetsHeaders(t *testing.T) {
	fc := validFacilitator()
	gate := newGate(fc)

	e := echo.New()
	e.GET("/api/premium/weather", func(c echo.Context) error {
		receipt, ok := ReceiptFrom(c)
		require.True(t, ok)
		assert.Equal(t, "$0.001", receipt.PriceLabel)
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}, gate.Middleware(0.001))

	req := httptest.NewRequest(http.MethodGet, "/api/premium/weather", nil)
	req.Header.Set("X-PAYMENT", paymentHeader(t))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0xtxhash", rec.Header().Get("X-PAYMENT-TX-HASH"))
	assert.Equal(t, "https://sepolia.basescan.org/tx/0xtxhash", rec.Header().Get("X-PAYMENT-TX-EXPLORER"))
	assert.NotEmpty(t, rec.Header().Get("X-PAYMENT-RESPONSE"))
}

func TestMiddlewareChallengesWithoutPayment(t *testing.T) {
	gate := newGate(validFacilitator())

	e := echo.New()
	handlerRan := false
	e.GET("/api/premium/ai", func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	}, gate.Middleware(0.05))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/premium/ai", nil))

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.False(t, handlerRan)
}

func TestMiddlewareRejectsFailedSettlement(t *testing.T) {
	fc := validFacilitator()
	fc.settleResp = &types.SettleResponse{Success: false, ErrorReason: strPtr("insufficient balance")}
	gate := newGate(fc)

	e := echo.New()
	handlerRan := false
	e.GET("/api/premium/market", func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	}, gate.Middleware(0.01))

	req := httptest.NewRequest(http.MethodGet, "/api/premium/market", nil)
	req.Header.Set("X-PAYMENT", paymentHeader(t))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient balance")
	assert.False(t, handlerRan)
}

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "$0.7", PriceLabel(0.7))
	assert.Equal(t, "$0.001", PriceLabel(0.001))
	assert.Equal(t, "$1.25", PriceLabel(1.25))
}

func TestAmountToAssetUnits(t *testing.T) {
	assert.Equal(t, "700000", amountToAssetUnits(0.70, 6).String())
	assert.Equal(t, "1000", amountToAssetUnits(0.001, 6).String())
	assert.Equal(t, "700000000000000000", amountToAssetUnits(0.70, 18).String())
}

func TestExplorerTxURL(t *testing.T) {
	assert.Equal(t, "https://basescan.org/tx/0xabc", ExplorerTxURL("base", "0xabc"))
	assert.Empty(t, ExplorerTxURL("unknown-net", "0xabc"))
	assert.Empty(t, ExplorerTxURL("base", ""))
}
