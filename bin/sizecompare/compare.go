package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"github.com/indobig/sizecompare/comparison"
	"github.com/indobig/sizecompare/stats_collector"
)

var printOverlay bool

var compareCmd = &cobra.Command{
	Use:   "compare <country>",
	Short: "Print how the reference country compares to <country>",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries that can be compared",
	Args:  cobra.NoArgs,
	RunE:  runCountries,
}

var atCmd = &cobra.Command{
	Use:   "at <lat> <lon>",
	Short: "List the countries containing a point",
	Example: `  sizecompare at 52.5 13.4
  sizecompare at -- -6.2 106.8`,
	Args: cobra.ExactArgs(2),
	RunE: runAt,
}

func init() {
	compareCmd.Flags().BoolVar(&printOverlay, "overlay", false, "also print the overlay as a GeoJSON feature")
}

func oneShotComparator(cmd *cobra.Command) (*comparison.Comparator, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := cliLogger(cfg, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return loadComparator(ctx, logger, cfg, stats_collector.NewNoopStatsCollector())
}

func runCompare(cmd *cobra.Command, args []string) error {
	cmp, err := oneShotComparator(cmd)
	if err != nil {
		return err
	}

	result := cmp.SelectCountry(args[0])
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, result.Message)
	if result.ScaleFactor.Valid {
		fmt.Fprintf(out, "scale factor: %.3f\n", result.ScaleFactor.Float64)
	}

	if printOverlay && result.Overlay != nil {
		feature := geojson.NewFeature(result.Overlay)
		feature.Properties["reference"] = cmp.Registry().ReferenceName()
		feature.Properties["country"] = args[0]
		feature.Properties["style"] = comparison.OverlayStyle

		b, err := json.Marshal(feature)
		if err != nil {
			return fmt.Errorf("failed to encode overlay: %w", err)
		}
		fmt.Fprintln(out, string(b))
	}

	return nil
}

func runCountries(cmd *cobra.Command, args []string) error {
	cmp, err := oneShotComparator(cmd)
	if err != nil {
		return err
	}

	reg := cmp.Registry()
	out := cmd.OutOrStdout()

	for _, region := range reg.Selectable() {
		if area, ok := reg.Area(region.Name); ok {
			fmt.Fprintf(out, "%s\t%.0f km2\n", region.Name, area)
		} else {
			fmt.Fprintf(out, "%s\tno area data\n", region.Name)
		}
	}

	return nil
}

func runAt(cmd *cobra.Command, args []string) error {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil || lat < -90 || lat > 90 {
		return fmt.Errorf("bad latitude '%s'", args[0])
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil || lon < -180 || lon > 180 {
		return fmt.Errorf("bad longitude '%s'", args[1])
	}

	cmp, err := oneShotComparator(cmd)
	if err != nil {
		return err
	}

	regions := cmp.Registry().At(lon, lat)
	if len(regions) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no country at that point")
		return nil
	}

	for _, region := range regions {
		fmt.Fprintln(cmd.OutOrStdout(), region.Name)
	}

	return nil
}
