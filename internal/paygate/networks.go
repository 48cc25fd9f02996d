package paygate

import (
	"math/big"
	"strconv"
)

// defaultTokenSymbol is charged when a request does not name a token.
const defaultTokenSymbol = "usdc"

type tokenConfig struct {
	address  string
	decimals int
	name     string
}

type networkConfig struct {
	testnet       bool
	explorerTxURL string
	tokens        map[string]tokenConfig
}

var supportedNetworks = map[string]networkConfig{
	"base": {
		explorerTxURL: "https://basescan.org/tx/",
		tokens: map[string]tokenConfig{
			"usdc": {address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", decimals: 6, name: "USD Coin"},
		},
	},
	"base-sepolia": {
		testnet:       true,
		explorerTxURL: "https://sepolia.basescan.org/tx/",
		tokens: map[string]tokenConfig{
			"usdc": {address: "0x036CbD53842c5426634e7929541eC2318f3dCF7e", decimals: 6, name: "USDC"},
		},
	},
	"bsc": {
		explorerTxURL: "https://bscscan.com/tx/",
		tokens: map[string]tokenConfig{
			"usdc": {address: "0x8ac76a51cc950d9822d68b83fe1ad97b32cd580d", decimals: 18, name: "USD Coin"},
		},
	},
	"bsc-testnet": {
		testnet:       true,
		explorerTxURL: "https://testnet.bscscan.com/tx/",
		tokens: map[string]tokenConfig{
			"usdc": {address: "0x64544969ed7ebf5f083679233325356ebe738930", decimals: 18, name: "USDC"},
		},
	},
}

// amountToAssetUnits converts a human-readable USD amount into token base
// units using the token's decimals. The amount goes through its shortest
// decimal representation first: scaling the raw float64 directly would turn
// $0.70 into 699999 micro-units.
func amountToAssetUnits(amount float64, decimals int) *big.Int {
	amountFloat, _, err := big.ParseFloat(strconv.FormatFloat(amount, 'f', -1, 64), 10, 256, big.ToNearestEven)
	if err != nil {
		return big.NewInt(0)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	scaled := new(big.Float).Mul(amountFloat, new(big.Float).SetPrec(256).SetInt(scale))
	res, _ := new(big.Float).Add(scaled, big.NewFloat(0.5)).Int(nil)
	return res
}

// PriceLabel renders the human-facing price string for an amount, e.g. "$0.70".
func PriceLabel(amountUSD float64) string {
	return "$" + strconv.FormatFloat(amountUSD, 'f', -1, 64)
}

// ExplorerTxURL returns the block-explorer link for a transaction hash, or ""
// when the network is unknown.
func ExplorerTxURL(network, txHash string) string {
	netCfg, ok := supportedNetworks[network]
	if !ok || txHash == "" {
		return ""
	}
	return netCfg.explorerTxURL + txHash
}
