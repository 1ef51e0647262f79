package constants

// Palette (beige paper, tan card, saddle-brown ink)
const (
	ColorBackground = "#F5F5DC"
	ColorCard       = "#D2B48C"
	ColorInk        = "#8B4513"
	ColorParticle   = "#FDE047"
	ColorSparkle    = "#FFD700"
	ColorHeart      = "#E11D48"
)

// Card geometry in terminal cells
const (
	// GiftBoxWidth and GiftBoxHeight size the closed gift box
	GiftBoxWidth  = 40
	GiftBoxHeight = 13

	// GreetingWidth and GreetingHeight size the greeting card panel
	GreetingWidth  = 48
	GreetingHeight = 15

	// LetterWidth is the maximum width of the letter panel
	LetterWidth = 72

	// CarouselWidth is the maximum width of the carousel panel
	CarouselWidth = 60

	// PhotoHeight is the photo area height inside the carousel panel
	PhotoHeight = 14

	// BlessingWidth is the maximum width of the blessing panel
	BlessingWidth = 56

	// PanelPaddingX and PanelPaddingY are the inner margins of every panel
	PanelPaddingX = 3
	PanelPaddingY = 1

	// MinWidth and MinHeight are the smallest terminal the card lays out in
	MinWidth  = 40
	MinHeight = 16
)

// Glyphs
const (
	GlyphCaret       = '|'
	GlyphParticle    = '●'
	GlyphDotActive   = '●'
	GlyphDotInactive = '○'
	GlyphArrowLeft   = '‹'
	GlyphArrowRight  = '›'
	GlyphMusicOn     = '♫'
	GlyphMusicOff    = '♪'
	GlyphRestart     = '↺'
	GlyphHeart       = '♥'
	GlyphStar        = '★'
	GlyphRibbonCross = '┼'
	GlyphRibbonV     = '│'
	GlyphRibbonH     = '─'
)

// Sparkle glyphs cycle through this set as they twinkle
var SparkleGlyphs = []rune{'·', '+', '*', '✦', '✧', '*', '+'}

// Confetti glyphs released by the opening gift
var ConfettiGlyphs = []rune{'*', '•', '◆', '▪', '~', '✿'}
