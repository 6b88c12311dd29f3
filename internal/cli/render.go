package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codeshot/pkg/background"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/highlight"
	"github.com/matzehuels/codeshot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// req holds flag values; only flags the user set override the config.
type renderOpts struct {
	req    pipeline.Request
	params background.Params
	engine engineOpts
	output string // output file path (default: temp file)
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		req:    pipeline.DefaultRequest(),
		params: background.DefaultParams(""),
	}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render source code to a PNG screenshot",
		Long: `Render source code to a PNG screenshot.

The code is read from file, or from stdin when file is "-" or omitted.
Without --language the language is detected from the file name and content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			req := c.Config.Request()
			overlayFlags(cmd.Flags().Changed, &req, opts)
			return c.runRender(cmd.Context(), input, req, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output PNG path (default: temp file)")
	f.StringVarP(&opts.req.Language, "language", "l", "", "language (default: detect)")
	f.StringVarP(&opts.req.Theme, "theme", "t", opts.req.Theme, "color theme")
	f.IntVarP(&opts.req.Width, "width", "w", opts.req.Width, "window width in logical pixels")
	f.IntVar(&opts.req.FontSize, "font-size", opts.req.FontSize, "font size in logical pixels")
	f.IntVar(&opts.req.Padding, "padding", opts.req.Padding, "window padding in logical pixels")
	f.BoolVarP(&opts.req.LineNumbers, "line-numbers", "n", opts.req.LineNumbers, "show line numbers")
	f.BoolVar(&opts.req.WindowChrome, "chrome", opts.req.WindowChrome, "draw the window title bar")
	f.BoolVar(&opts.req.LineWrap, "wrap", opts.req.LineWrap, "wrap long lines")
	f.StringVar(&opts.req.Shader, "shader", "", "background shader: "+strings.Join(background.Names(), ", ")+", flat (default: theme's)")
	f.Float64Var(&opts.params.Intensity, "shader-intensity", opts.params.Intensity, "shader intensity")
	f.Float64Var(&opts.params.Scale, "shader-scale", opts.params.Scale, "shader scale")
	f.Float64Var(&opts.params.Time, "shader-time", 0, "shader time")
	f.StringVar(&opts.req.BackgroundColor, "background", "", "background color override (#rrggbb)")
	f.BoolVar(&opts.engine.noCache, "no-cache", false, "disable the screenshot and emoji cache")
	f.StringVar(&opts.engine.themesDir, "themes-dir", "", "directory of extra theme TOML files")
	f.StringVar(&opts.engine.font, "font", "", "font name or TTF path (default: Go Mono)")
	f.StringVar(&opts.engine.emojiDir, "emoji-dir", "", "directory of <codepoints>.png emoji glyphs")
	f.BoolVar(&opts.engine.offline, "offline", false, "never download emoji glyphs")

	_ = cmd.RegisterFlagCompletionFunc("shader", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return append(background.Names(), background.Flat), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("theme", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		catalog, err := c.newCatalog("")
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// overlayFlags copies the flags the user set from opts into req.
func overlayFlags(changed func(string) bool, req *pipeline.Request, opts renderOpts) {
	src := opts.req
	if changed("language") {
		req.Language = src.Language
	}
	if changed("theme") {
		req.Theme = src.Theme
	}
	if changed("width") {
		req.Width = src.Width
	}
	if changed("font-size") {
		req.FontSize = src.FontSize
	}
	if changed("padding") {
		req.Padding = src.Padding
	}
	if changed("line-numbers") {
		req.LineNumbers = src.LineNumbers
	}
	if changed("chrome") {
		req.WindowChrome = src.WindowChrome
	}
	if changed("wrap") {
		req.LineWrap = src.LineWrap
	}
	if changed("shader") {
		req.Shader = src.Shader
	}
	if changed("background") {
		req.BackgroundColor = src.BackgroundColor
	}
	if changed("shader-intensity") || changed("shader-scale") || changed("shader-time") {
		p := background.DefaultParams(req.Shader)
		if changed("shader-intensity") {
			p.Intensity = opts.params.Intensity
		}
		if changed("shader-scale") {
			p.Scale = opts.params.Scale
		}
		if changed("shader-time") {
			p.Time = opts.params.Time
		}
		req.ShaderParams = &p
	}
}

// runRender reads the input, renders it and writes the PNG.
func (c *CLI) runRender(ctx context.Context, input string, req pipeline.Request, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	code, err := readInput(input)
	if err != nil {
		return err
	}
	req.Code = code
	if req.Language == "" {
		filename := ""
		if input != "-" {
			filename = input
		}
		req.Language = highlight.DetectLanguage(filename, code)
		logger.Debug("detected language", "language", req.Language)
	}

	runner, err := c.newRunner(opts.engine)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, os.Stderr, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, req)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("render: %s", errors.UserMessage(err))
	}
	prog.done("rendered screenshot", "cached", result.CacheHit)

	path, err := writeOutput(opts.output, result.PNG)
	if err != nil {
		return err
	}

	for _, w := range result.Stats.Warnings {
		printWarning("%s", errors.UserMessage(w))
	}
	printSuccess("Rendered %s", StyleHighlight.Render(fmt.Sprintf("%dx%d", result.Width, result.Height)))
	printRenderStats(result.Stats, result.CacheHit)
	printFile(path)
	return nil
}

// readInput reads path, or stdin for "-". One trailing newline is dropped
// so files do not render an empty last line.
func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// writeOutput writes data to path, or to a new temp file when path is empty.
func writeOutput(path string, data []byte) (string, error) {
	if path == "" {
		return pipeline.WriteTemp("", data)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
