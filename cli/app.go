// Package cli contains the geocam command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	debugFlag       = "debug"
	cameraFlag      = "camera"
	configFlag      = "config"
	lvcsFlag        = "lvcs"
	southFlag       = "south"
	widthFlag       = "width"
	heightFlag      = "height"
	lowerLeftFlag   = "lower-left"
	upperRightFlag  = "upper-right"
	uncertaintyFlag = "uncertainty"
	outputFlag      = "output"
	orderFlag       = "order"
	pointsFlag      = "points"
	logFileFlag     = "log-file"
)

var app = &cli.App{
	Name:            "geocam",
	Usage:           "project, crop and convert with satellite camera models",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.PathFlag{
			Name:  logFileFlag,
			Usage: "also write logs to `FILE`",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "project",
			Usage:     "project world points into an image",
			ArgsUsage: "<x> <y> <z>",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     cameraFlag,
					Required: true,
					Usage:    "rational, local rational or GeoTIFF camera `FILE`",
				},
				&cli.PathFlag{
					Name:  pointsFlag,
					Usage: "project every \"x y z\" line of `FILE` instead of the arguments",
				},
			},
			Action: ProjectAction,
		},
		{
			Name:  "crop",
			Usage: "compute the image region of a scene box and write the local rational camera of the crop",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:    configFlag,
					Aliases: []string{"c"},
					Usage:   "read the crop job from a json `FILE`; the remaining flags are ignored",
				},
				&cli.PathFlag{
					Name:  cameraFlag,
					Usage: "rational or local rational camera `FILE`",
				},
				&cli.IntFlag{
					Name:  widthFlag,
					Usage: "image width in pixels",
				},
				&cli.IntFlag{
					Name:  heightFlag,
					Usage: "image height in pixels",
				},
				&cli.Float64SliceFlag{
					Name:  lowerLeftFlag,
					Usage: "lower left scene corner as `LON,LAT,ELEV` (WGS84 degrees and meters)",
				},
				&cli.Float64SliceFlag{
					Name:  upperRightFlag,
					Usage: "upper right scene corner as `LON,LAT,ELEV` (WGS84 degrees and meters)",
				},
				&cli.Float64Flag{
					Name:  uncertaintyFlag,
					Usage: "uncertainty of the camera ground offset in meters",
				},
				&cli.PathFlag{
					Name:  lvcsFlag,
					Usage: "local vertical coordinate system `FILE` for the cropped camera",
				},
				&cli.PathFlag{
					Name:  outputFlag,
					Usage: "where to write the local rational camera of the crop",
				},
				&cli.StringFlag{
					Name:  orderFlag,
					Value: "RPC00B",
					Usage: "coefficient order of the written camera, RPC00B or VXL",
				},
			},
			Action: CropAction,
		},
		{
			Name:            "utm",
			Usage:           "convert between WGS84 longitude/latitude and UTM",
			HideHelpCommand: true,
			Subcommands: []*cli.Command{
				{
					Name:      "to-utm",
					Usage:     "print easting, northing, zone and hemisphere",
					ArgsUsage: "<lon> <lat>",
					Action:    ToUTMAction,
				},
				{
					Name:      "to-lonlat",
					Usage:     "print longitude and latitude in degrees",
					ArgsUsage: "<easting> <northing> <zone>",
					Flags: []cli.Flag{
						&cli.BoolFlag{
							Name:  southFlag,
							Usage: "the zone is in the southern hemisphere",
						},
					},
					Action: ToLonLatAction,
				},
			},
		},
		{
			Name:            "lvcs",
			Usage:           "convert between a local vertical coordinate system and WGS84",
			HideHelpCommand: true,
			Subcommands: []*cli.Command{
				{
					Name:      "to-global",
					Usage:     "print the WGS84 longitude, latitude and elevation of a local point",
					ArgsUsage: "<x> <y> <z>",
					Flags: []cli.Flag{
						&cli.PathFlag{
							Name:     lvcsFlag,
							Required: true,
							Usage:    "local vertical coordinate system `FILE`",
						},
					},
					Action: ToGlobalAction,
				},
				{
					Name:      "to-local",
					Usage:     "print the local coordinates of a WGS84 longitude, latitude and elevation",
					ArgsUsage: "<lon> <lat> <elev>",
					Flags: []cli.Flag{
						&cli.PathFlag{
							Name:     lvcsFlag,
							Required: true,
							Usage:    "local vertical coordinate system `FILE`",
						},
					},
					Action: ToLocalAction,
				},
			},
		},
		{
			Name:  "info",
			Usage: "print the parameters of a camera file",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     cameraFlag,
					Required: true,
					Usage:    "rational, local rational or GeoTIFF camera `FILE`",
				},
			},
			Action: InfoAction,
		},
		{
			Name:  "footprint",
			Usage: "print the WGS84 outline of a GeoTIFF raster as a GeoJSON feature",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     cameraFlag,
					Required: true,
					Usage:    "GeoTIFF `FILE`",
				},
			},
			Action: FootprintAction,
		},
		{
			Name:   "schema",
			Usage:  "print the json schema of crop job files",
			Action: SchemaAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
