package market

// catalog is the static mock universe backing the search service. Ranks
// are frozen market-cap positions; a zero rank means unranked.
var catalog = []Candidate{
	{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Rank: 1},
	{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Rank: 2},
	{ID: "tether", Symbol: "USDT", Name: "Tether", Rank: 3},
	{ID: "binancecoin", Symbol: "BNB", Name: "BNB", Rank: 4},
	{ID: "solana", Symbol: "SOL", Name: "Solana", Rank: 5},
	{ID: "ripple", Symbol: "XRP", Name: "XRP", Rank: 6},
	{ID: "usd-coin", Symbol: "USDC", Name: "USDC", Rank: 7},
	{ID: "cardano", Symbol: "ADA", Name: "Cardano", Rank: 8},
	{ID: "dogecoin", Symbol: "DOGE", Name: "Dogecoin", Rank: 9},
	{ID: "avalanche-2", Symbol: "AVAX", Name: "Avalanche", Rank: 10},
	{ID: "tron", Symbol: "TRX", Name: "TRON", Rank: 11},
	{ID: "polkadot", Symbol: "DOT", Name: "Polkadot", Rank: 12},
	{ID: "chainlink", Symbol: "LINK", Name: "Chainlink", Rank: 13},
	{ID: "matic-network", Symbol: "MATIC", Name: "Polygon", Rank: 14},
	{ID: "wrapped-bitcoin", Symbol: "WBTC", Name: "Wrapped Bitcoin", Rank: 15},
	{ID: "litecoin", Symbol: "LTC", Name: "Litecoin", Rank: 16},
	{ID: "shiba-inu", Symbol: "SHIB", Name: "Shiba Inu", Rank: 17},
	{ID: "uniswap", Symbol: "UNI", Name: "Uniswap", Rank: 18},
	{ID: "cosmos", Symbol: "ATOM", Name: "Cosmos Hub", Rank: 19},
	{ID: "stellar", Symbol: "XLM", Name: "Stellar", Rank: 20},
	{ID: "monero", Symbol: "XMR", Name: "Monero", Rank: 21},
	{ID: "ethereum-classic", Symbol: "ETC", Name: "Ethereum Classic", Rank: 22},
	{ID: "filecoin", Symbol: "FIL", Name: "Filecoin", Rank: 23},
	{ID: "aptos", Symbol: "APT", Name: "Aptos", Rank: 24},
	{ID: "arbitrum", Symbol: "ARB", Name: "Arbitrum", Rank: 25},
	{ID: "near", Symbol: "NEAR", Name: "NEAR Protocol", Rank: 26},
	{ID: "optimism", Symbol: "OP", Name: "Optimism", Rank: 27},
	{ID: "aave", Symbol: "AAVE", Name: "Aave", Rank: 28},
	{ID: "maker", Symbol: "MKR", Name: "Maker", Rank: 29},
	{ID: "algorand", Symbol: "ALGO", Name: "Algorand", Rank: 30},
	{ID: "injective-protocol", Symbol: "INJ", Name: "Injective", Rank: 31},
	{ID: "render-token", Symbol: "RNDR", Name: "Render", Rank: 32},
	{ID: "the-graph", Symbol: "GRT", Name: "The Graph", Rank: 33},
	{ID: "fantom", Symbol: "FTM", Name: "Fantom", Rank: 34},
	{ID: "pepe", Symbol: "PEPE", Name: "Pepe"},
	{ID: "bonk", Symbol: "BONK", Name: "Bonk"},
}
