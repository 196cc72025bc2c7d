// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ChainSafe/mips-decoder/decoder"
	"github.com/ChainSafe/mips-decoder/profile"
	"github.com/ChainSafe/mips-decoder/program"
	"github.com/ChainSafe/mips-decoder/renderer"
	"github.com/urfave/cli/v2"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the decoder profile config file",
		Required: false,
	}
	TextBaseFlag = &cli.StringFlag{
		Name:        "text",
		Aliases:     []string{"t"},
		Usage:       "start address of text segment",
		Required:    false,
		DefaultText: "0x00003000",
	}
	DataBaseFlag = &cli.StringFlag{
		Name:        "data",
		Aliases:     []string{"d"},
		Usage:       "start address of data segment",
		Required:    false,
		DefaultText: "0x00000000",
	}
	MarsFlag = &cli.BoolFlag{
		Name:     "mars",
		Aliases:  []string{"m"},
		Usage:    "generate code assemblable in Mars",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:     "format",
		Usage:    "format of the output. Options: json, text",
		Required: false,
		Value:    "text",
	}
	OutputPathFlag = &cli.PathFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "output file path. Default: stdout",
		Required: false,
	}
	ColorFlag = &cli.BoolFlag{
		Name:     "color",
		Usage:    "highlight labels when writing to a terminal",
		Required: false,
		Value:    true,
	}
	VerboseFlag = &cli.BoolFlag{
		Name:     "verbose",
		Usage:    "log pass summaries to stderr",
		Required: false,
	}
)

func CreateDecodeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "decode",
		Usage:       "Translates hex machine code into MIPS-C assembly",
		Description: "Translates hex machine code, one 32-bit word per line, into MIPS-C assembly",
		ArgsUsage:   "FILENAME",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			TextBaseFlag,
			DataBaseFlag,
			MarsFlag,
			FormatFlag,
			OutputPathFlag,
			ColorFlag,
			VerboseFlag,
		},
	}
}

var DecodeCommand = CreateDecodeCommand(DecodeProgram)

func DecodeProgram(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}

	listing, err := decode(ctx, prof)
	if err != nil {
		return err
	}

	var rendererInstance renderer.Renderer
	switch format := ctx.String(FormatFlag.Name); format {
	case "text":
		rendererInstance = renderer.NewTextRenderer(ctx.Bool(ColorFlag.Name))
	case "json":
		rendererInstance = renderer.NewJSONRenderer()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}

	if err := writeOutput(listing, rendererInstance, ctx.Path(OutputPathFlag.Name)); err != nil {
		return fmt.Errorf("unable to write listing: %w", err)
	}
	return nil
}

// loadProfile reads the profile file, if any, and applies flag overrides.
func loadProfile(ctx *cli.Context) (*profile.Profile, error) {
	prof := profile.Default()
	if path := ctx.Path(ProfileFlag.Name); path != "" {
		var err error
		prof, err = profile.LoadProfile(path)
		if err != nil {
			return nil, fmt.Errorf("error loading profile: %w", err)
		}
	}

	if ctx.IsSet(TextBaseFlag.Name) {
		base, err := parseAddress(ctx.String(TextBaseFlag.Name))
		if err != nil {
			return nil, fmt.Errorf("invalid text segment address: %w", err)
		}
		prof.TextBase = base
	}
	if ctx.IsSet(DataBaseFlag.Name) {
		base, err := parseAddress(ctx.String(DataBaseFlag.Name))
		if err != nil {
			return nil, fmt.Errorf("invalid data segment address: %w", err)
		}
		prof.DataBase = base
	}
	if ctx.IsSet(MarsFlag.Name) {
		prof.Dialect = profile.DialectPlain
		if ctx.Bool(MarsFlag.Name) {
			prof.Dialect = profile.DialectMars
		}
	}
	return prof, nil
}

// decode reads the input file and runs the engine over it.
func decode(ctx *cli.Context, prof *profile.Profile) (*decoder.Listing, error) {
	source := ctx.Args().First()
	if source == "" {
		return nil, fmt.Errorf("missing input file")
	}
	verbose := ctx.Bool(VerboseFlag.Name)

	words, err := program.ParseFile(source, program.Options{
		TextBase:   prof.TextBase,
		SkipMarker: prof.SkipMarker,
	})
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", source, err)
	}

	engine := decoder.NewEngine(decoder.ConfigFromProfile(prof))
	labels, err := engine.CollectLabels(words)
	if err != nil {
		return nil, fmt.Errorf("decoding failed: %w", err)
	}
	if verbose {
		log.Printf("pass 1: %d words, %d labels (profile %s, text 0x%08x)", len(words), labels.Len(), prof.Name, prof.TextBase)
	}

	listing, err := engine.Emit(words, labels)
	if err != nil {
		return nil, fmt.Errorf("decoding failed: %w", err)
	}
	if verbose {
		log.Printf("pass 2: %d lines", len(listing.Lines))
		for _, label := range listing.DanglingLabels() {
			log.Printf("label %s targets 0x%08x outside the program", label.Name, label.Address)
		}
	}
	return listing, nil
}

// writeOutput renders the listing to stdout or to outputPath.
func writeOutput(listing *decoder.Listing, r renderer.Renderer, outputPath string) error {
	var output *os.File
	if outputPath == "" {
		output = os.Stdout
	} else {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("unable to determine absolute path: %w", err)
		}
		output, err = os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			_ = output.Close()
		}()
	}
	return r.Render(listing, output)
}

// parseAddress accepts decimal or 0x-prefixed hex.
func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
