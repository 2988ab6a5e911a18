package cli

import (
	"github.com/urfave/cli/v2"

	"go.viam.com/geocam/geodesy"
)

// ToGlobalAction prints the WGS84 longitude, latitude and elevation, in degrees and meters, of a
// point given in the coordinates of an LVCS file.
func ToGlobalAction(c *cli.Context) error {
	local, err := parseVector(c, "x", "y", "z")
	if err != nil {
		return err
	}
	lvcs, err := geodesy.ReadLVCSFile(c.Path(lvcsFlag))
	if err != nil {
		return err
	}
	global, err := lvcs.LocalToGlobal(local, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", formatFloats(global.X, global.Y, global.Z))
	return nil
}

// ToLocalAction prints the coordinates in an LVCS file of a WGS84 longitude, latitude and
// elevation in degrees and meters.
func ToLocalAction(c *cli.Context) error {
	global, err := parseVector(c, "lon", "lat", "elev")
	if err != nil {
		return err
	}
	lvcs, err := geodesy.ReadLVCSFile(c.Path(lvcsFlag))
	if err != nil {
		return err
	}
	local, err := lvcs.GlobalToLocal(global, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", formatFloats(local.X, local.Y, local.Z))
	return nil
}
