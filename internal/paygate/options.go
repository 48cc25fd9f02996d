package paygate

type chargeConfig struct {
	network     string
	token       string
	description string
	mimeType    string
	resource    string
}

// ChargeOption adjusts a single charge. Empty values leave the gate defaults
// in place so handlers can pass request parameters through unconditionally.
type ChargeOption func(*chargeConfig)

func WithNetwork(network string) ChargeOption {
	return func(cfg *chargeConfig) {
		if network != "" {
			cfg.network = network
		}
	}
}

func WithToken(token string) ChargeOption {
	return func(cfg *chargeConfig) {
		if token != "" {
			cfg.token = token
		}
	}
}

func WithDescription(description string) ChargeOption {
	return func(cfg *chargeConfig) {
		cfg.description = description
	}
}

func WithMimeType(mimeType string) ChargeOption {
	return func(cfg *chargeConfig) {
		cfg.mimeType = mimeType
	}
}

// WithResource overrides the resource URL advertised in the payment
// requirements; the default is the gate's resource root plus the request path.
func WithResource(resource string) ChargeOption {
	return func(cfg *chargeConfig) {
		cfg.resource = resource
	}
}
