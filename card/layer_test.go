package card

import "testing"

func TestLayerNext(t *testing.T) {
	tests := []struct {
		from Layer
		want Layer
	}{
		{LayerGiftBox, LayerGreeting},
		{LayerGreeting, LayerLetter},
		{LayerLetter, LayerCarousel},
		{LayerCarousel, LayerBlessing},
		{LayerBlessing, LayerBlessing},
		{Layer(-3), LayerGiftBox},
		{Layer(9), LayerBlessing},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%v.Next() = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	if LayerCarousel.String() != "Carousel" {
		t.Errorf("String() = %q", LayerCarousel.String())
	}
	if Layer(LayerCount).String() != "Unknown" {
		t.Errorf("out of range layer = %q, want Unknown", Layer(LayerCount).String())
	}
	for l := FirstLayer; l <= LastLayer; l++ {
		if l.Terminal() != (l == LayerBlessing) {
			t.Errorf("%v.Terminal() = %v", l, l.Terminal())
		}
	}
}
