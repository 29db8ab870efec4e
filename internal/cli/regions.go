package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"topomap/internal/config"
	"topomap/internal/geom"
	"topomap/internal/info"
)

func newRegionsCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "regions [source]",
		Short: "List the regions of the first topology object",
		Long: `regions decodes the source the same way the viewer does and prints one row
per feature: its index, id, name, polygon and ring counts and its bounding box
in source coordinates.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := load(cmd, *flags, args)
			if err != nil {
				return err
			}
			writeRegions(cmd.OutOrStdout(), fc)
			return nil
		},
	}
}

func writeRegions(w io.Writer, fc geom.FeatureCollection) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "ID", "Name", "Polygons", "Rings", "BBox"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	drawable := 0
	for i := range fc.Features {
		f := &fc.Features[i]
		id, _ := info.ID(f)
		rings := 0
		for _, p := range f.Geometry.Polygons {
			rings += len(p)
		}
		bbox := "-"
		if b, ok := (geom.FeatureCollection{Features: fc.Features[i : i+1]}).BBox(); ok {
			bbox = fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY)
			drawable++
		}
		table.Append([]string{
			fmt.Sprintf("%d", i), id, info.Headline(f),
			fmt.Sprintf("%d", len(f.Geometry.Polygons)), fmt.Sprintf("%d", rings), bbox,
		})
	}
	table.SetFooter([]string{"", "", fc.Name, fmt.Sprintf("%d features", len(fc.Features)), fmt.Sprintf("%d drawable", drawable), ""})
	table.Render()
}
