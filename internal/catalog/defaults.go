package catalog

// Default is the demo catalog seeded into a fresh database. Deposit
// addresses are placeholders and point nowhere.
func Default() Catalog {
	return Catalog{
		Networks: []Network{
			{ID: "trc20", Name: "TRON (TRC-20)", Short: "TRC20"},
			{ID: "erc20", Name: "Ethereum (ERC-20)", Short: "ERC20"},
			{ID: "bep20", Name: "BNB Smart Chain (BEP-20)", Short: "BEP20"},
			{ID: "solana", Name: "Solana (SPL)", Short: "SOL"},
		},
		Plans: []Plan{
			{Amount: "3k", Fee: "20"},
			{Amount: "5k", Fee: "27"},
			{Amount: "10k", Fee: "40"},
			{Amount: "20k", Fee: "70"},
			{Amount: "50k", Fee: "130"},
			{Amount: "100k", Fee: "210"},
		},
		PaymentMethods: []PaymentMethod{
			{Name: "USDT (TRC20)", Network: "TRON", Address: "T000000000000000000000000EXAMPLE"},
			{Name: "USDT (BEP20)", Network: "BSC", Address: "0x000000000000000000000000000000000000dEaD"},
			{Name: "ETH (ERC20)", Network: "Ethereum", Address: "0x000000000000000000000000000000000000dEaD"},
			{Name: "BTC", Network: "Bitcoin", Address: "bc1q000000000000000000000000000000example"},
			{Name: "SOL", Network: "Solana", Address: "11111111111111111111111111111111"},
		},
		Credential: "demo-access-key",
		SupportURL: "https://example.com/support",
	}
}
