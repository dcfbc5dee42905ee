package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/JosephCatrambone/catpicture"
	"github.com/JosephCatrambone/catpicture/imageutil"
)

func main() {
	app := &cli.App{
		Name:      "catpicture",
		Usage:     "render an image as colored text on the terminal",
		ArgsUsage: "[FILE]",
		Description: "Renders FILE as an ANSI-escaped character grid. " +
			"If FILE is omitted or '-', the image is read from stdin.",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "use full 24-bit color instead of the nearest terminal color",
			},
			&cli.UintFlag{
				Name:    "width",
				Aliases: []string{"w"},
				Usage:   "output width in characters",
			},
			&cli.UintFlag{
				Name:    "height",
				Aliases: []string{"H"},
				Usage:   "output height in characters (-H since -h shows help)",
			},
			&cli.StringFlag{
				Name:    "region",
				Aliases: []string{"r"},
				Usage:   "cut the region `LEFT,TOP,RIGHT,BOTTOM` from the picture before display",
			},
			&cli.BoolFlag{
				Name:    "grey",
				Aliases: []string{"g"},
				Usage:   "force greyscale on the image",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"d"},
				Value:   "block",
				Usage: "draw mode: block (background fill), char (fixed character), " +
					"line (gradient line glyphs), or art (best matching glyph)",
			},
			&cli.StringFlag{
				Name:  "char",
				Value: "#",
				Usage: "character used by char mode",
			},
			&cli.Float64Flag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Usage:   "luma (0-255) below which nothing is drawn, so dark cells stay blank",
			},
			&cli.StringFlag{
				Name:  "font",
				Usage: "TTF font or glyph strip image for art mode",
			},
			&cli.BoolFlag{
				Name:  "compress",
				Usage: "merge adjacent same-colored cells into shared escapes",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "increase verbosity",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger = log.New(os.Stderr, "catpicture: ", 0)
	}

	opts := []catpicture.RendererOption{
		catpicture.WithDimensions(int(c.Uint("width")), int(c.Uint("height"))),
		catpicture.WithTrueColor(c.Bool("color")),
		catpicture.WithForceGrey(c.Bool("grey")),
		catpicture.WithDrawThreshold(c.Float64("threshold")),
		catpicture.WithCompression(c.Bool("compress")),
		catpicture.WithLogger(logger),
	}

	mode, err := catpicture.ParseDrawMode(c.String("mode"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	opts = append(opts, catpicture.WithDrawMode(mode))

	if mode == catpicture.ModeChar {
		chars := []rune(c.String("char"))
		if len(chars) != 1 {
			return cli.Exit(fmt.Sprintf("char mode needs exactly one character, got %q",
				c.String("char")), 1)
		}
		opts = append(opts, catpicture.WithChar(chars[0]))
	}

	if c.IsSet("region") {
		left, top, right, bottom, err := parseRegion(c.String("region"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		opts = append(opts, catpicture.WithRegion(left, top, right, bottom))
	}

	if c.IsSet("font") {
		glyphs, err := catpicture.LoadGlyphSetFile(c.String("font"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		opts = append(opts, catpicture.WithGlyphSet(glyphs))
	}

	img, err := loadInput(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	r := catpicture.NewRenderer(opts...)
	if err := r.Render(img, os.Stdout); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

// loadInput decodes the source image from a file path, or from stdin
// when the path is empty or "-".
func loadInput(path string) (*imageutil.RGBAImage, error) {
	var img *imageutil.RGBAImage
	var err error
	if path == "" || path == "-" {
		img, err = imageutil.DecodeImage(os.Stdin)
	} else {
		img, err = imageutil.LoadImage(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catpicture.ErrImageDecode, err)
	}
	return img, nil
}

// parseRegion parses a crop region given as four comma-separated
// non-negative pixel coordinates: left,top,right,bottom.
func parseRegion(s string) (left, top, right, bottom int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf(
			"region must be LEFT,TOP,RIGHT,BOTTOM, got %q", s)
	}
	coords := make([]int, 4)
	for i, part := range parts {
		coords[i], err = strconv.Atoi(strings.TrimSpace(part))
		if err != nil || coords[i] < 0 {
			return 0, 0, 0, 0, fmt.Errorf(
				"region coordinate %q is not a non-negative integer", part)
		}
	}
	return coords[0], coords[1], coords[2], coords[3], nil
}
