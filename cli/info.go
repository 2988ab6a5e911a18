package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"go.viam.com/geocam/camera"
	"go.viam.com/geocam/config"
	"go.viam.com/geocam/utils"
)

// InfoAction prints the parameters of a camera file as a table.
func InfoAction(c *cli.Context) error {
	cam, err := loadCamera(c.Path(cameraFlag))
	if err != nil {
		return err
	}
	info, err := describeCamera(cam)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", info)
	return nil
}

// describeCamera renders the scale/offsets of a rational camera, plus the LVCS of a local one,
// or the geotransform of a geo camera.
func describeCamera(cam camera.Camera) (string, error) {
	t := table.NewWriter()
	t.SetTitle(cam.TypeName())

	var rational *camera.RationalCamera
	var footer string
	switch cam := cam.(type) {
	case *camera.LocalRationalCamera:
		rational = &cam.RationalCamera
		footer = "lvcs: " + strings.ReplaceAll(cam.LVCS().String(), "\n", " ")
	case *camera.RationalCamera:
		rational = cam
	case *camera.GeoCamera:
		t.AppendHeader(table.Row{"Parameter", "Value"})
		gt := cam.GeoTransform()
		t.AppendRow(table.Row{"origin", fmt.Sprintf("%v, %v", gt[0], gt[3])})
		t.AppendRow(table.Row{"pixel size", fmt.Sprintf("%v, %v", gt[1], gt[5])})
		t.AppendRow(table.Row{"rotation", fmt.Sprintf("%v, %v", gt[2], gt[4])})
		if zone, south, ok := cam.UTM(); ok {
			t.AppendRow(table.Row{"projection", fmt.Sprintf("utm %d%s", zone, hemisphere(south))})
		} else {
			t.AppendRow(table.Row{"projection", "geographic"})
		}
		gsd, err := cam.GroundSampleDistance()
		if err != nil {
			return "", err
		}
		t.AppendRow(table.Row{"ground sample distance (m)", gsd})
		return t.Render(), nil
	default:
		return "", utils.NewUnexpectedTypeError(&camera.RationalCamera{}, cam)
	}

	t.AppendHeader(table.Row{"Axis", "Scale", "Offset"})
	for axis, so := range rational.ScaleOffsets() {
		t.AppendRow(table.Row{camera.Axis(axis).String(), so.Scale, so.Offset})
	}
	out := t.Render()
	if footer != "" {
		out += "\n" + footer
	}
	return out, nil
}

// SchemaAction prints the JSON schema of crop job files.
func SchemaAction(c *cli.Context) error {
	out, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

// FootprintAction prints the outline of a GeoTIFF raster as a GeoJSON feature.
func FootprintAction(c *cli.Context) error {
	cam, header, err := camera.ReadGeoTIFF(c.Path(cameraFlag))
	if err != nil {
		return err
	}
	feature, err := cam.FootprintFeature(header)
	if err != nil {
		return err
	}
	out, err := feature.MarshalJSON()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
