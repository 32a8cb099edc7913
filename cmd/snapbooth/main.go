// snapbooth — Photobooth strip and print composition.
//
// Usage:
//
//	snapbooth -o <file> --request <path> [options]
//	snapbooth serve [--port 8080]
//	snapbooth init
//	snapbooth testimage -o <file> [--color <hex>] [options]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/disintegration/imaging"

	"github.com/snapbooth/snapbooth/clients/server"
	"github.com/snapbooth/snapbooth/pkg/compose"
	"github.com/snapbooth/snapbooth/pkg/export"
	"github.com/snapbooth/snapbooth/pkg/filter"
	"github.com/snapbooth/snapbooth/pkg/layout"
	"github.com/snapbooth/snapbooth/pkg/overlay"
	"github.com/snapbooth/snapbooth/pkg/style"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		if err := runInit(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "serve":
		if err := server.RunServe(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "testimage":
		if err := runTestImage(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: compose mode (all flags on root).
		if err := run(os.Args[1:]); err != nil {
			fatal(err)
		}
	}
}

// cliRequest is the on-disk request format: a compose.Request whose photos
// are file paths instead of raw bytes.
type cliRequest struct {
	Mode            compose.Mode             `json:"mode"`
	PhotoPaths      []string                 `json:"photoPaths"`
	PhotoCount      int                      `json:"photoCount"`
	Filter          filter.ID                `json:"filterId"`
	ThemeID         string                   `json:"themeId"`
	OverlayIDs      []string                 `json:"overlayIds"`
	CustomTexts     map[string]string        `json:"customTexts"`
	IncludeDatetime bool                     `json:"includeDatetime"`
	Layout          layout.PrintLayoutConfig `json:"layout"`
	DuplicateStrip  bool                     `json:"duplicateStrip"`
}

func run(args []string) error {
	fs := flag.NewFlagSet("snapbooth", flag.ExitOnError)

	var (
		output      string
		requestPath string
		mode        string
		fontPath    string
		quality     float64
	)

	fs.StringVar(&output, "o", "", "Output file path (.png, .jpg or .jpeg)")
	fs.StringVar(&output, "output", "", "Output file path (.png, .jpg or .jpeg)")
	fs.StringVar(&requestPath, "request", "", "Path to request JSON")
	fs.StringVar(&mode, "mode", "", "Override mode: strip or print")
	fs.StringVar(&fontPath, "font", "", "Path to a TTF font for overlays (optional)")
	fs.Float64Var(&quality, "quality", export.DefaultJPEGQuality, "JPEG quality as a 0-1 fraction")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	if output == "" {
		printUsage()
		return fmt.Errorf("output file is required (-o)")
	}
	if requestPath == "" {
		printUsage()
		return fmt.Errorf("request file is required (--request)")
	}

	var cli cliRequest
	if err := readJSON(requestPath, &cli); err != nil {
		return fmt.Errorf("load request: %w", err)
	}
	if mode != "" {
		cli.Mode = compose.Mode(mode)
	}

	req := &compose.Request{
		Mode:            cli.Mode,
		PhotoCount:      cli.PhotoCount,
		Filter:          cli.Filter,
		Theme:           style.BuiltinThemes().GetOrDefault(cli.ThemeID),
		OverlayIDs:      cli.OverlayIDs,
		CustomTexts:     cli.CustomTexts,
		IncludeDatetime: cli.IncludeDatetime,
		Layout:          cli.Layout,
		DuplicateStrip:  cli.DuplicateStrip,
	}
	for _, path := range cli.PhotoPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read photo %s: %w", path, err)
		}
		info, _ := os.Stat(path)
		p := compose.CapturedPhoto{ID: path, Data: data}
		if info != nil {
			p.Timestamp = info.ModTime()
		}
		req.Photos = append(req.Photos, p)
	}

	for _, w := range req.Normalize() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	renderer, err := overlay.NewRenderer(style.BuiltinOverlays(), fontPath)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	composer := compose.New(renderer)

	fmt.Printf("Composing: %s\n", output)
	img, err := export.Render(context.Background(), composer, req)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}

	if err := export.WriteFile(output, img, quality); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

// runTestImage writes a solid-color capture fixture, handy for trying
// layouts without a camera.
func runTestImage(args []string) error {
	fs := flag.NewFlagSet("testimage", flag.ExitOnError)

	var (
		output string
		hex    string
		width  int
		height int
	)
	fs.StringVar(&output, "o", "", "Output file path (.png, .jpg or .jpeg)")
	fs.StringVar(&output, "output", "", "Output file path (.png, .jpg or .jpeg)")
	fs.StringVar(&hex, "color", "#4a90d9", "Fill color as #rrggbb")
	fs.IntVar(&width, "w", 800, "Width in pixels")
	fs.IntVar(&width, "width", 800, "Width in pixels")
	fs.IntVar(&height, "h", 600, "Height in pixels")
	fs.IntVar(&height, "height", 600, "Height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if output == "" {
		return fmt.Errorf("output file is required (-o)")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}

	img := imaging.New(width, height, style.ParseHexRGBA(hex))
	if err := export.WriteFile(output, img, export.DefaultJPEGQuality); err != nil {
		return err
	}
	fmt.Printf("Created: %s (%dx%d %s)\n", output, width, height, hex)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var requestOut string
	fs.StringVar(&requestOut, "request", "request.json", "Output path for sample request")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.WriteFile(requestOut, []byte(sampleRequestJSON), 0644); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	fmt.Printf("Created: %s\n", requestOut)
	fmt.Println("Run: snapbooth -o strip.png --request request.json")
	return nil
}

const sampleRequestJSON = `{
  "mode": "strip",
  "photoPaths": [
    "photo1.jpg",
    "photo2.jpg",
    "photo3.jpg",
    "photo4.jpg"
  ],
  "photoCount": 4,
  "filterId": "warm",
  "themeId": "classic",
  "overlayIds": ["event-title"],
  "customTexts": {
    "event-title": "Summer Party 2026"
  },
  "includeDatetime": true,
  "layout": {
    "format": "2x6-strip",
    "orientation": "portrait",
    "layoutPreset": "grid",
    "photoCount": 4,
    "margins": {"top": 2, "bottom": 8, "left": 3, "right": 3},
    "spacing": 2
  },
  "duplicateStrip": true
}
`

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`snapbooth — Photobooth strip and print composition

USAGE:
    snapbooth -o <file> --request <path> [options]
    snapbooth serve [--port 8080]
    snapbooth init [options]
    snapbooth testimage -o <file> [options]

COMPOSE MODE:
    --request <path>       Request JSON (see 'snapbooth init')
    -o, --output <path>    Output file (.png, .jpg or .jpeg)
    --mode <mode>          Override request mode: strip or print
    --font <path>          TTF font for text overlays (optional)
    --quality <q>          JPEG quality, 0-1 fraction (default: 0.92)

API SERVER:
    snapbooth serve [--port 8080] [--events-dir <dir>] [--font <path>]

INIT:
    snapbooth init [--request request.json]    Write a sample request

TEST IMAGES:
    snapbooth testimage -o photo.jpg [--color "#ff8800"] [-w 800] [-h 600]

EXAMPLES:
    snapbooth init
    snapbooth serve
    snapbooth testimage -o photo1.jpg --color "#cc3344"
    snapbooth -o strip.png --request request.json
    snapbooth -o print.jpg --request request.json --mode print --quality 0.95
`)
}
