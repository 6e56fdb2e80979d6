// proctitle relabels its own process from its command line and reports what
// process listings now show. It is a quick way to check how the library
// behaves on a given host.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrzor/proctitle"
	"github.com/mrzor/proctitle/internal/config"
	"github.com/mrzor/proctitle/internal/otel"
	"github.com/mrzor/proctitle/internal/procmeta"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Version information injected by GoReleaser at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	format string
	noExe  bool
	show   bool
	hold   bool
}

func main() {
	// Before cobra holds on to any argument strings.
	proctitle.Init(os.Args)

	if err := newRootCmd(os.Args).Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func newRootCmd(argv []string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "proctitle [flags] [-- args...]",
		Short: "Set this process's title from its command line and show the result",
		Long: `proctitle sets its own process title the way the library does for any
program: argv[0] is replaced by the resolved executable and the remaining
arguments follow. Use --show to print what /proc reports afterwards and
--hold to keep running so ps and top can be inspected.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), argv, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "title expression, overrides PROCTITLE_FORMAT")
	cmd.Flags().BoolVar(&opts.noExe, "no-exe", false, "keep argv[0] instead of the resolved executable")
	cmd.Flags().BoolVarP(&opts.show, "show", "s", false, "print cmdline, comm and exe as /proc reports them")
	cmd.Flags().BoolVar(&opts.hold, "hold", false, "keep running until SIGINT or SIGTERM")

	return cmd
}

// setupOTEL returns a tracer exporting to the configured endpoint, or a
// no-op tracer when none is configured.
func setupOTEL() (trace.Tracer, func(), error) {
	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse OTEL config: %w", err)
	}
	if !otelCfg.Enabled() {
		return noop.NewTracerProvider().Tracer("proctitle"), func() {}, nil
	}

	tp, err := otel.InitProvider(otelCfg, fmt.Sprintf("%s (%s)", version, commit))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OTEL provider: %w", err)
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otel.ShutdownProvider(shutdownCtx, tp); err != nil {
			log.Printf("Error shutting down OTEL provider: %v", err)
		}
	}

	return tp.Tracer("proctitle"), cleanup, nil
}

func run(ctx context.Context, out io.Writer, argv []string, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.ParseTitleConfig()
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.noExe {
		cfg.ExeLink = ""
	}

	tracer, cleanupOTEL, err := setupOTEL()
	if err != nil {
		return err
	}
	defer cleanupOTEL()

	titler, err := proctitle.NewFromConfig(cfg,
		proctitle.WithTracer(tracer),
		proctitle.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	title := titler.SetFromCommandLine(ctx, argv)
	log.Printf("Title set via %s: %q", titler.Setter().Name(), title.Text)

	if opts.show {
		if err := show(out); err != nil {
			return err
		}
	}

	if opts.hold {
		fmt.Fprintf(out, "Holding as PID %d, interrupt to exit...\n", os.Getpid())
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}
	}

	return nil
}

func show(out io.Writer) error {
	md, err := procmeta.ReadSelf()
	if err != nil {
		return fmt.Errorf("reading /proc: %w", err)
	}

	fmt.Fprintf(out, "pid:     %d\n", md.Pid)
	fmt.Fprintf(out, "cmdline: %s\n", md.CmdlineFull)
	fmt.Fprintf(out, "comm:    %s\n", md.Comm)
	fmt.Fprintf(out, "exe:     %s\n", md.Exe)
	return nil
}
