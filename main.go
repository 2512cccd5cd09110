package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"qgrover/circuit"
	"qgrover/config"
	"qgrover/sim"
	"qgrover/synth"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		color.Red("qgrover: %v", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	myApp := cli.NewApp()
	myApp.Name = "qgrover"
	myApp.Usage = "Toffoli-ladder MCX, Grover oracle and diffuser synthesis"
	myApp.Version = VERSION
	myApp.Writer = out
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "YAML config file",
			EnvVar: "QGROVER_CONFIG",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "development logging at debug level",
		},
		cli.StringFlag{
			Name:  "log",
			Usage: "write JSON logs to file",
		},
	}

	outputFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "format, f",
			Value: "diagram",
			Usage: "diagram, qasm, stats",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "write to file instead of stdout",
		},
	}

	for _, b := range synth.Builders {
		myApp.Commands = append(myApp.Commands, builderCommand(b, outputFlags))
	}
	myApp.Commands = append(myApp.Commands,
		cli.Command{
			Name:      "run",
			Usage:     "sample a circuit on the statevector simulator",
			ArgsUsage: "BUILDER ARGS... | --qasm FILE",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "qasm", Usage: "sample an OpenQASM file instead of a builder"},
				cli.StringFlag{Name: "input, i", Usage: "basis state for the input qubits, e.g. 0101"},
				cli.BoolFlag{Name: "uniform, u", Usage: "start the input qubits in uniform superposition"},
				cli.IntFlag{Name: "shots, s", Usage: "number of samples (overrides config)"},
				cli.Int64Flag{Name: "seed", Usage: "random seed (overrides config)"},
				cli.IntFlag{Name: "workers, w", Usage: "sampling goroutines (overrides config)"},
				cli.IntFlag{Name: "top", Value: 16, Usage: "rows to print, 0 for all"},
			},
			Action: runAction,
		},
		cli.Command{
			Name:      "view",
			Usage:     "browse circuits in the terminal viewer",
			ArgsUsage: "[BUILDER ARGS...] | --qasm FILE",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "qasm", Usage: "open an OpenQASM file"},
			},
			Action: viewAction,
		},
		cli.Command{
			Name:      "init-config",
			Usage:     "write the effective configuration to a YAML file",
			ArgsUsage: "FILE",
			Action:    initConfigAction,
		},
	)
	return myApp
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if path := c.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, nil, err
		}
	}
	if c.GlobalBool("debug") {
		cfg.Debug = true
	}
	if path := c.GlobalString("log"); path != "" {
		cfg.LogFile = path
	}
	if c.IsSet("shots") {
		cfg.Shots = c.Int("shots")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := cfg.CreateLogger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// built is a circuit produced by a named builder, with the ladder layout of
// its register.
type built struct {
	builder synth.Builder
	args    []int
	circuit *circuit.Circuit
	layout  *synth.Layout
}

// buildFromArgs resolves "BUILDER ARGS..." into a circuit.
func buildFromArgs(args []string) (built, error) {
	if len(args) == 0 {
		return built{}, errors.Errorf("missing builder, one of %s", builderNames())
	}
	b, ok := synth.Lookup(args[0])
	if !ok {
		return built{}, errors.Errorf("unknown builder %q, one of %s", args[0], builderNames())
	}
	values, err := parseArgList(args[1:])
	if err != nil {
		return built{builder: b}, err
	}
	circ, layout, err := b.BuildLayout(values...)
	if err != nil {
		return built{builder: b, args: values}, err
	}
	return built{builder: b, args: values, circuit: circ, layout: &layout}, nil
}

func builderNames() string {
	names := make([]string, len(synth.Builders))
	for i, b := range synth.Builders {
		names[i] = b.Name
	}
	return strings.Join(names, ", ")
}

func readQASM(path string) (*circuit.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read qasm")
	}
	circ, err := circuit.ParseQASM(string(data))
	return circ, errors.Wrapf(err, "parse %s", path)
}

func builderCommand(b synth.Builder, flags []cli.Flag) cli.Command {
	return cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		ArgsUsage: strings.ToUpper(strings.ReplaceAll(argHint(b), ",", " ")),
		Flags:     flags,
		Action: func(c *cli.Context) error {
			_, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			bc, err := buildFromArgs(append([]string{b.Name}, c.Args()...))
			if err != nil {
				return err
			}
			logger.Debug("built circuit",
				zap.String("builder", b.Name),
				zap.Ints("args", bc.args),
				zap.Int("qubits", bc.circuit.NumQubits()),
				zap.Int("gates", bc.circuit.Len()),
				zap.Int("depth", bc.circuit.Depth()))

			path := c.String("out")
			if path == "" {
				return emit(c.App.Writer, bc.circuit, bc.layout, c.String("format"))
			}
			return emitFile(path, bc.circuit, bc.layout, c.String("format"))
		},
	}
}

// emitFile writes a circuit to path, reporting a failed close like a failed
// write.
func emitFile(path string, c *circuit.Circuit, layout *synth.Layout, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close output")
		}
	}()
	return emit(f, c, layout, format)
}

// emit writes a circuit in the requested format.
func emit(w io.Writer, c *circuit.Circuit, layout *synth.Layout, format string) error {
	var err error
	switch format {
	case "diagram":
		g := layoutGrid(c, layout)
		if _, err = fmt.Fprint(w, renderDiagram(g, 0, g.steps, -1)); err == nil {
			_, err = fmt.Fprintln(w, renderStats(c))
		}
	case "qasm":
		_, err = fmt.Fprint(w, c.ToQASM())
	case "stats":
		err = writeStats(w, c)
	default:
		return errors.Errorf("unknown format %q: use diagram, qasm or stats", format)
	}
	return errors.Wrap(err, "write output")
}

func runAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var (
		circ   *circuit.Circuit
		layout *synth.Layout
	)
	if path := c.String("qasm"); path != "" {
		circ, err = readQASM(path)
	} else {
		var bc built
		bc, err = buildFromArgs(c.Args())
		circ, layout = bc.circuit, bc.layout
	}
	if err != nil {
		return err
	}

	bits, err := parseBitString(c.String("input"))
	if err != nil {
		return errors.Wrap(err, "input")
	}
	prepared, err := prepareInput(circ, layout, bits, c.Bool("uniform"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sampler := &sim.Sampler{Seed: cfg.Seed, Workers: cfg.Workers, Logger: logger}
	hist, err := sampler.Run(ctx, prepared, cfg.Shots)
	if err != nil {
		return err
	}
	logger.Info("sampled circuit",
		zap.Int("shots", cfg.Shots),
		zap.Int64("seed", cfg.Seed),
		zap.Int("outcomes", len(hist)))

	return writeHistogram(c.App.Writer, hist, layout, c.Int("top"))
}

func viewAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	m := initialModel(&sim.Sampler{Seed: cfg.Seed, Workers: cfg.Workers, Logger: logger}, cfg.Shots, logger)
	switch {
	case c.String("qasm") != "":
		circ, err := readQASM(c.String("qasm"))
		if err != nil {
			return err
		}
		m.savePath = c.String("qasm")
		m.setCircuit(circ, nil)
	case c.NArg() > 0:
		bc, err := buildFromArgs(c.Args())
		if err != nil {
			return err
		}
		m.show(bc)
	default:
		if err := m.load(circuitMenu[1].builder, []int{5, 4}); err != nil {
			return err
		}
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return errors.Wrap(err, "viewer")
}

func initConfigAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("init-config takes exactly one FILE argument")
	}
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Save(c.Args().First()); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.App.Writer, "wrote %s\n", c.Args().First())
	return nil
}
