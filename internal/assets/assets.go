package assets

// Asset describes one cryptocurrency supported by the platform. Balances are
// keyed by Slug everywhere: in profile wallets, deposit/withdraw requests and
// the price table.
type Asset struct {
	Slug        string
	Symbol      string
	DisplayName string
	// CoinGeckoID is the identifier used by the market-data API, which does
	// not always match the platform slug.
	CoinGeckoID string
	// Precision is the number of decimals shown for token amounts.
	Precision int
}

var supported = []Asset{
	{Slug: "bitcoin", Symbol: "BTC", DisplayName: "Bitcoin (BTC)", CoinGeckoID: "bitcoin", Precision: 6},
	{Slug: "ethereum", Symbol: "ETH", DisplayName: "Ethereum (ETH)", CoinGeckoID: "ethereum", Precision: 4},
	{Slug: "tether", Symbol: "USDT", DisplayName: "Tether (USDT)", CoinGeckoID: "tether", Precision: 2},
	{Slug: "binance-coin", Symbol: "BNB", DisplayName: "Binance Coin (BNB)", CoinGeckoID: "binancecoin", Precision: 4},
	{Slug: "solana", Symbol: "SOL", DisplayName: "Solana (SOL)", CoinGeckoID: "solana", Precision: 2},
	{Slug: "dogecoin", Symbol: "DOGE", DisplayName: "Dogecoin (DOGE)", CoinGeckoID: "dogecoin", Precision: 0},
	{Slug: "ripple", Symbol: "XRP", DisplayName: "Ripple (XRP)", CoinGeckoID: "ripple", Precision: 0},
	{Slug: "stellar", Symbol: "XLM", DisplayName: "Stellar (XLM)", CoinGeckoID: "stellar", Precision: 0},
	{Slug: "tron", Symbol: "TRX", DisplayName: "Tron (TRX)", CoinGeckoID: "tron", Precision: 0},
	{Slug: "toncoin", Symbol: "TON", DisplayName: "Toncoin (TON)", CoinGeckoID: "the-open-network", Precision: 2},
}

var bySlug = func() map[string]Asset {
	m := make(map[string]Asset, len(supported))
	for _, a := range supported {
		m[a.Slug] = a
	}
	return m
}()

// All returns the supported assets in display order.
func All() []Asset {
	out := make([]Asset, len(supported))
	copy(out, supported)
	return out
}

// Lookup returns the asset for a platform slug.
func Lookup(slug string) (Asset, bool) {
	a, ok := bySlug[slug]
	return a, ok
}

// IsSupported reports whether the slug names a supported asset.
func IsSupported(slug string) bool {
	_, ok := bySlug[slug]
	return ok
}
