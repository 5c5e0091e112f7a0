package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorNeutral = 0x313136 // Embed gray
	ColorDark    = 0x2B2D31
)

// Currency glyphs
const (
	CoinSymbol  = "⏣"
	WalletEmoji = "🪙"
	BankEmoji   = "🏦"
)

// MaxAmountLength bounds typed amounts, matching the modal input limit
const MaxAmountLength = 16
