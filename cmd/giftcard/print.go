package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/content"
	"github.com/lixenwraith/giftcard/render"
)

func newPrintCmd(opts *rootOptions) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the whole card as styled text",
		Long:  `Print renders every layer of the card at once, for terminals without mouse or for sharing.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel())

			c, err := loadContent(cfg.Card.Content)
			if err != nil {
				return err
			}
			logger.Debug("printing card", "source", c.Source, "width", width, "photos", len(c.Photos))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), printCard(c, width))
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", constants.CarouselWidth, "card width in columns")
	return cmd
}

// printCard lays every layer out as one column of bordered panels, at most width cells wide
func printCard(c *content.Content, width int) string {
	width = max(width, constants.MinWidth)
	ink := lipgloss.Color(constants.ColorInk)
	heart := lipgloss.Color(constants.ColorHeart)

	// Border takes one column each side
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ink).
		Foreground(ink).
		Padding(constants.PanelPaddingY, constants.PanelPaddingX).
		Width(width - 2)
	centred := panel.Align(lipgloss.Center)
	textW := width - 2 - 2*constants.PanelPaddingX

	bold := lipgloss.NewStyle().Bold(true)
	wrap := func(s string) string {
		return strings.Join(render.Wrap(s, textW), "\n")
	}

	title := centred.Render(bold.Render(wrap(c.Title)))

	greeting := centred.Render(strings.Join([]string{
		wrap(c.Greeting.Lead),
		"",
		bold.Render(wrap(c.Greeting.Emphasis)),
		"",
		strings.Repeat("━", min(12, textW)),
		wrap(c.Greeting.Footer),
	}, "\n"))

	letter := panel.Render(wrap(c.Letter))

	photos := []string{bold.Render(wrap(c.Memories)), ""}
	for i, p := range c.Photos {
		photos = append(photos, wrap(fmt.Sprintf("%d/%d  %s", i+1, len(c.Photos), p.Caption)))
	}
	memories := centred.Render(strings.Join(photos, "\n"))

	blessing := []string{string(constants.GlyphStar), "", bold.Render(wrap(c.Blessing.Heading)), ""}
	for _, line := range c.Blessing.Lines {
		blessing = append(blessing, wrap(line))
	}
	blessing = append(blessing, "", lipgloss.NewStyle().Foreground(heart).Render(string(constants.GlyphHeart)))

	return lipgloss.JoinVertical(lipgloss.Center,
		title,
		greeting,
		letter,
		memories,
		centred.Render(strings.Join(blessing, "\n")),
	)
}
