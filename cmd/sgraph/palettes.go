package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matsen/simgraph/internal/viz"
)

// PaletteResponse describes one palette.
type PaletteResponse struct {
	Name    string   `json:"name"`
	Colors  []string `json:"colors"`
	Default bool     `json:"default,omitempty"`
}

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List node palettes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var out []PaletteResponse
		for _, name := range viz.PaletteNames() {
			p, _ := viz.PaletteByName(name)
			out = append(out, PaletteResponse{
				Name:    name,
				Colors:  p.Hex(),
				Default: name == viz.DefaultPalette,
			})
		}

		if !humanOutput {
			outputJSON(out)
			return
		}
		for _, p := range out {
			pal, _ := viz.PaletteByName(p.Name)
			marker := " "
			if p.Default {
				marker = "*"
			}
			fmt.Printf("%s %-12s %s\n", marker, p.Name, swatches(pal))
		}
		fmt.Printf("\n  %-12s %s origin  %s default field  %s link  %s hovered link\n", "accents",
			swatch(viz.OriginColor), swatch(viz.DefaultFieldColor), swatch(viz.LinkColor), swatch(viz.HoverLinkColor))
	},
}

func init() {
	rootCmd.AddCommand(palettesCmd)
}

func swatch(c viz.RGB) string {
	return color.BgRGB(int(c.R), int(c.G), int(c.B)).Sprint("  ")
}

func swatches(p viz.Palette) string {
	var b strings.Builder
	for _, c := range p {
		b.WriteString(swatch(c))
		b.WriteString(" ")
	}
	return b.String()
}
