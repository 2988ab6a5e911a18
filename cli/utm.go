package cli

import (
	"math"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/geocam/geodesy"
)

func hemisphere(south bool) string {
	if south {
		return "S"
	}
	return "N"
}

// ToUTMAction prints the WGS84 UTM easting, northing, zone and hemisphere of a longitude and
// latitude in degrees.
func ToUTMAction(c *cli.Context) error {
	values, err := parseFloatArgs(c, "lon", "lat")
	if err != nil {
		return err
	}
	lon, lat := values[0], values[1]
	if math.Abs(lat) > 84 {
		warningf(c.App.ErrWriter, "latitude %v is outside the UTM range of [-80, 84]", lat)
	}
	easting, northing, zone, south := geodesy.WGS84UTM.LonLatToUTM(lon, lat)
	printf(c.App.Writer, "%s %d%s", formatFloats(easting, northing), zone, hemisphere(south))
	return nil
}

// ToLonLatAction prints the WGS84 longitude and latitude in degrees of a UTM position.
func ToLonLatAction(c *cli.Context) error {
	values, err := parseFloatArgs(c, "easting", "northing", "zone")
	if err != nil {
		return err
	}
	zone := values[2]
	if zone != math.Trunc(zone) {
		return errors.Errorf("zone must be an integer, got %v", zone)
	}
	lon, lat, err := geodesy.WGS84UTM.UTMToLonLat(values[0], values[1], int(zone), c.Bool(southFlag))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", formatFloats(lon, lat))
	return nil
}
