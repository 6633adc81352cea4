package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bodgit/photoframe"
	"github.com/bodgit/photoframe/bmp"
	"github.com/bodgit/photoframe/palette"
	"github.com/bodgit/photoframe/upload"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB     = "photoframe.db"
	defaultDevice = "spectra6"
	defaultCanvas = "600x800"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

var editFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "rotate",
		Usage: "rotate the image `N` times by 90 degrees clockwise",
	},
	&cli.StringSliceFlag{
		Name:  "drag",
		Usage: "drag the pointer across the canvas from x1,y1 to x2,y2, may be repeated",
	},
}

// export loads the image named by the first argument, applies the edits
// given on the command line and exports the resulting crop.
func export(c *cli.Context, pf *photoframe.PhotoFrame, logger *log.Logger) (*photoframe.Export, error) {
	canvas, err := parseCanvas(c.String("canvas"))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := photoframe.Decode(f)
	if err != nil {
		return nil, err
	}
	logger.Printf("Loaded %dx%d image from %s\n", m.Bounds().Dx(), m.Bounds().Dy(), f.Name())

	e := photoframe.NewEditor(canvas)
	e.Load(m)

	if err := replay(e, c.Int("rotate"), c.StringSlice("drag")); err != nil {
		return nil, err
	}

	s := e.State()
	logger.Printf("Cropping %.1fx%.1f at %.1f,%.1f with rotation %d\n", s.Crop.W, s.Crop.H, s.Crop.X, s.Crop.Y, e.Rotation())

	snapshot, _ := e.Snapshot()

	return pf.Export(c.Context, snapshot)
}

func main() {
	app := cli.NewApp()

	app.Name = "photoframe"
	app.Usage = "Spectra 6 e-paper photo frame utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PHOTOFRAME_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to upload history database",
		},
		&cli.StringFlag{
			Name:    "endpoint",
			EnvVars: []string{"PHOTOFRAME_ENDPOINT"},
			Usage:   "URL that hands out upload destinations",
		},
		&cli.StringFlag{
			Name:    "device",
			EnvVars: []string{"PHOTOFRAME_DEVICE"},
			Value:   defaultDevice,
			Usage:   "target display colour set",
		},
		&cli.StringFlag{
			Name:  "canvas",
			Value: defaultCanvas,
			Usage: "size of the editing canvas the drag coordinates refer to",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: time.Minute,
			Usage: "give up uploading after this long",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Crop and convert an image to a device bitmap",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Flags:       editFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				pf, err := photoframe.New(palette.ErrorDiffusion{}, nil, nil, c.String("device"), logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer pf.Close()

				e, err := export(c, pf, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), e.Bitmap, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "upload",
			Usage:       "Crop and convert an image then upload it to the device",
			Description: "",
			ArgsUsage:   "INPUT",
			Flags:       editFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				history, err := photoframe.NewHistory(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				uploader := upload.New(c.String("endpoint"), nil)

				pf, err := photoframe.New(palette.ErrorDiffusion{}, uploader, history, c.String("device"), logger)
				if err != nil {
					history.Close()
					return cli.NewExitError(err, 1)
				}
				defer pf.Close()

				e, err := export(c, pf, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
				defer cancel()

				url, err := pf.Upload(ctx, e)
				if err != nil {
					return cli.NewExitError(fmt.Errorf("upload failed: %w", err), 1)
				}

				fmt.Println(url)

				return nil
			},
		},
		{
			Name:        "history",
			Usage:       "List previous uploads",
			Description: "",
			Action: func(c *cli.Context) error {
				history, err := photoframe.NewHistory(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer history.Close()

				records, err := history.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, r := range records {
					fmt.Printf("%d\t%s\t%s\t%s\t%dx%d\t%s\n", r.ID, r.Created.Format(time.RFC3339), r.Device, r.SHA1, r.Width, r.Height, r.URL)
				}

				return nil
			},
		},
		{
			Name:        "thumbnail",
			Usage:       "Write the PNG thumbnail of a previous upload",
			Description: "",
			ArgsUsage:   "ID OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := strconv.ParseInt(c.Args().First(), 10, 64)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				history, err := photoframe.NewHistory(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer history.Close()

				b, err := history.Thumbnail(id)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if len(b) == 0 {
					return cli.NewExitError(fmt.Sprintf("no thumbnail for upload %d", id), 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), b, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "inspect",
			Usage:       "Print the headers of a bitmap",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				h, err := bmp.DecodeHeader(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("Size:\t\t%d\n", h.File.Size)
				fmt.Printf("Offset:\t\t%d\n", h.File.OffBits)
				fmt.Printf("Dimensions:\t%dx%d\n", h.Info.Width, h.Info.Height)
				fmt.Printf("Bit count:\t%d\n", h.Info.BitCount)
				fmt.Printf("Stride:\t\t%d\n", h.Stride())
				fmt.Printf("Image size:\t%d\n", h.Info.SizeImage)
				fmt.Printf("Resolution:\t%dx%d\n", h.Info.XPelsPerMeter, h.Info.YPelsPerMeter)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
