package card

// Layer is one of the five full-screen views of the card, in presentation order
type Layer int

const (
	LayerGiftBox Layer = iota
	LayerGreeting
	LayerLetter
	LayerCarousel
	LayerBlessing
)

// LayerCount is the number of layers
const LayerCount = 5

// FirstLayer and LastLayer bound the valid range
const (
	FirstLayer = LayerGiftBox
	LastLayer  = LayerBlessing
)

var layerNames = [LayerCount]string{
	"GiftBox",
	"Greeting",
	"Letter",
	"Carousel",
	"Blessing",
}

// String returns the layer name
func (l Layer) String() string {
	if !l.Valid() {
		return "Unknown"
	}
	return layerNames[l]
}

// Valid reports whether l is one of the defined layers
func (l Layer) Valid() bool {
	return l >= FirstLayer && l <= LastLayer
}

// Terminal reports whether l is the last layer
func (l Layer) Terminal() bool {
	return l == LastLayer
}

// Next returns the following layer, clamped at LastLayer
func (l Layer) Next() Layer {
	if l >= LastLayer {
		return LastLayer
	}
	if l < FirstLayer {
		return FirstLayer
	}
	return l + 1
}
