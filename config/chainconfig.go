// Package config defines the caller-supplied chain metadata the core needs
// and performs no I/O and reads no environment variables (the core is
// network-agnostic and takes chain parameters only as explicit Go values).
package config

import "fmt"

// Family is the closed set of chain families the core supports.
type Family string

const (
	FamilyEVM      Family = "evm"
	FamilyBitcoin  Family = "bitcoin"
	FamilyCosmos   Family = "cosmos"
	FamilySolana   Family = "solana"
	FamilyERC4337  Family = "erc4337"
)

// ChainConfig is the caller-supplied description of a target network.
// Fields are optional per family: ChainID is EVM/4337-only, HRP is
// Bitcoin/Cosmos-only, CoinType drives BIP-44 derivation.
type ChainConfig struct {
	Family       Family
	ChainID      uint64
	HRP          string
	CoinType     uint32
	Symbol       string
	Decimals     int
	ExplorerHint string

	caip2Namespace string
	caip2Reference string
}

// Option configures a ChainConfig, mirroring the teacher's functional
// ClientOption pattern (see client.go's Newx402Client(opts ...ClientOption)).
type Option func(*ChainConfig)

// New builds a ChainConfig for the given family, applying options in order.
func New(family Family, opts ...Option) *ChainConfig {
	c := &ChainConfig{Family: family, Decimals: 18}
	for _, opt := range opts {
		opt(c)
	}
	if c.caip2Namespace == "" {
		c.caip2Namespace, c.caip2Reference = defaultCAIP2(c)
	}
	return c
}

func WithChainID(id uint64) Option      { return func(c *ChainConfig) { c.ChainID = id } }
func WithHRP(hrp string) Option         { return func(c *ChainConfig) { c.HRP = hrp } }
func WithCoinType(ct uint32) Option     { return func(c *ChainConfig) { c.CoinType = ct } }
func WithSymbol(sym string) Option      { return func(c *ChainConfig) { c.Symbol = sym } }
func WithDecimals(d int) Option         { return func(c *ChainConfig) { c.Decimals = d } }
func WithExplorerHint(h string) Option  { return func(c *ChainConfig) { c.ExplorerHint = h } }

// WithCAIP2 overrides the derived CAIP-2 namespace/reference pair directly.
func WithCAIP2(namespace, reference string) Option {
	return func(c *ChainConfig) {
		c.caip2Namespace = namespace
		c.caip2Reference = reference
	}
}

func defaultCAIP2(c *ChainConfig) (namespace, reference string) {
	switch c.Family {
	case FamilyEVM, FamilyERC4337:
		return "eip155", fmt.Sprintf("%d", c.ChainID)
	case FamilyBitcoin:
		return "bip122", c.HRP
	case FamilyCosmos:
		return "cosmos", c.HRP
	case FamilySolana:
		return "solana", "mainnet"
	default:
		return string(c.Family), ""
	}
}

// CAIP2 returns the "namespace:reference" Chain-Agnostic identifier for this
// config, per the CAIP glossary entry.
func (c *ChainConfig) CAIP2() string {
	return fmt.Sprintf("%s:%s", c.caip2Namespace, c.caip2Reference)
}

// CAIP10 returns the "namespace:reference:address" identifier for an
// address under this config.
func (c *ChainConfig) CAIP10(address string) string {
	return fmt.Sprintf("%s:%s", c.CAIP2(), address)
}
