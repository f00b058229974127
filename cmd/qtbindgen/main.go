// Command qtbindgen generates native and host binding sources from IR files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/qtbind/eventloop"
	"github.com/wippyai/qtbind/generator"
	"github.com/wippyai/qtbind/generator/headers"
	"github.com/wippyai/qtbind/generator/host"
	"github.com/wippyai/qtbind/handle"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
	"github.com/wippyai/qtbind/meta"
	"github.com/wippyai/qtbind/qobject"
	"github.com/wippyai/qtbind/signal"
	"github.com/wippyai/qtbind/threading"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	out    io.Writer
	logger *zap.Logger
}

func newApp(out io.Writer) *cli.Command {
	a := &app{out: out, logger: zap.NewNop()}

	return &cli.Command{
		Name:    "qtbindgen",
		Usage:   "Generate Qt bindings for Go host logic",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable development logging",
			},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate binding sources from an IR file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ir",
						Usage:    "IR file (YAML or JSON)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
					&cli.BoolFlag{
						Name:  "headers",
						Usage: "Also write the runtime headers",
					},
					&cli.BoolFlag{
						Name:  "no-plugin",
						Usage: "Do not generate the QML extension plugin",
					},
					&cli.StringFlag{
						Name:  "include-prefix",
						Usage: "Prefix for generated #include directives",
					},
					&cli.StringFlag{
						Name:  "runtime",
						Usage: "Import path of the Go runtime packages",
						Value: host.DefaultRuntime,
					},
					modelFlag(),
				},
				Action: a.generate,
			},
			{
				Name:  "headers",
				Usage: "Write the runtime headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
				},
				Action: a.headers,
			},
			{
				Name:      "inspect",
				Usage:     "Summarize the objects of an IR file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "interactive",
						Aliases: []string{"i"},
						Usage:   "Browse objects interactively",
					},
				},
				Action: a.inspect,
			},
			{
				Name:      "layout",
				Usage:     "Print the layout proofs of value types",
				ArgsUsage: "<file>",
				Flags:     []cli.Flag{modelFlag()},
				Action:    a.layout,
			},
		},
	}
}

func modelFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "model",
		Usage: "Native pointer width in bits (32 or 64)",
		Value: 64,
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	l, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return ctx, err
	}
	a.logger = l
	installLogger(l)
	return ctx, nil
}

func (a *app) after(context.Context, *cli.Command) error {
	_ = a.logger.Sync()
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

func installLogger(l *zap.Logger) {
	handle.SetLogger(l.Named("handle"))
	eventloop.SetLogger(l.Named("eventloop"))
	threading.SetLogger(l.Named("threading"))
	signal.SetLogger(l.Named("signal"))
	qobject.SetLogger(l.Named("qobject"))
	meta.SetLogger(l.Named("meta"))
	generator.SetLogger(l.Named("generator"))
	headers.SetLogger(l.Named("headers"))
}

func parseModel(bits int64) (marshal.DataModel, error) {
	switch bits {
	case 32:
		return marshal.ILP32, nil
	case 64:
		return marshal.LP64, nil
	}
	return 0, fmt.Errorf("unsupported data model: %d-bit", bits)
}

func (a *app) generate(ctx context.Context, cmd *cli.Command) error {
	model, err := parseModel(int64(cmd.Int("model")))
	if err != nil {
		return err
	}

	f, err := ir.LoadFile(cmd.String("ir"))
	if err != nil {
		return err
	}

	out := generator.Generate(f, generator.Options{
		IncludePrefix: cmd.String("include-prefix"),
		RuntimeImport: cmd.String("runtime"),
		NoQMLPlugin:   cmd.Bool("no-plugin"),
		Headers:       cmd.Bool("headers"),
		Model:         model,
	})

	dir := cmd.String("out")
	if err := out.Write(dir); err != nil {
		return err
	}
	for _, file := range out.Files {
		fmt.Fprintf(a.out, "%s %s\n", kindStyle(file.Kind).Render(fmt.Sprintf("%-7s", file.Kind)), file.Path)
	}
	return nil
}

func (a *app) headers(ctx context.Context, cmd *cli.Command) error {
	written, err := headers.Write(cmd.String("out"))
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(a.out, path)
	}
	return nil
}

func (a *app) inspect(ctx context.Context, cmd *cli.Command) error {
	f, err := loadArg(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("interactive") {
		if !isTerminal() {
			return fmt.Errorf("interactive mode requires a terminal")
		}
		return runInteractive(cmd.Args().First(), f)
	}
	fmt.Fprint(a.out, summary(f))
	return nil
}

func (a *app) layout(ctx context.Context, cmd *cli.Command) error {
	model, err := parseModel(int64(cmd.Int("model")))
	if err != nil {
		return err
	}
	f, err := loadArg(cmd)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, layoutReport(f, model))
	return nil
}

func loadArg(cmd *cli.Command) (*ir.File, error) {
	if cmd.NArg() < 1 {
		return nil, fmt.Errorf("usage: qtbindgen %s <file>", cmd.Name)
	}
	return ir.LoadFile(cmd.Args().First())
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
