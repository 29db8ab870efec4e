package cli

import (
	"github.com/spf13/cobra"

	"topomap/internal/config"
	"topomap/internal/geom"
)

func newDecodeCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:          "decode [source]",
		Short:        "Write the first topology object as GeoJSON",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := load(cmd, *flags, args)
			if err != nil {
				return err
			}
			return geom.WriteGeoJSON(cmd.OutOrStdout(), fc)
		},
	}
}
