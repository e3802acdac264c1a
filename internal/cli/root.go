// Package cli implements the dwarfdump command.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arloliu/memdwarf/config"
	"github.com/arloliu/memdwarf/internal/logging"
	"github.com/arloliu/memdwarf/objaccess"
	"github.com/arloliu/memdwarf/reader"
	"github.com/arloliu/memdwarf/sample"
	"github.com/arloliu/memdwarf/section"
)

type flags struct {
	config    string
	types     bool
	logLevel  string
	logPretty bool
	maxUnits  int
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.config, "config", "c", "", "YAML section table (default: built-in sample object)")
	fs.BoolVar(&f.types, "types", false, "also dump .debug_types units")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error, disabled)")
	fs.BoolVar(&f.logPretty, "log-pretty", true, "human-readable log output")
	fs.IntVar(&f.maxUnits, "max-units", 0, "maximum units to dump per area (0 for all)")
}

// NewRootCmd creates the dwarfdump command.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "dwarfdump",
		Short: "Dump DWARF units from an in-memory section table",
		Long: `Reads DWARF debug sections held in memory and prints, for every unit,
its header and the tree of debugging records with their attributes.

Without --config the built-in sample object is dumped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.maxUnits < 0 {
				return fmt.Errorf("invalid --max-units %d", f.maxUnits)
			}

			logger := logging.NewWithComponent(logging.Config{
				Level:  f.logLevel,
				Pretty: f.logPretty,
				Output: cmd.ErrOrStderr(),
			}, "dwarfdump")

			return run(cmd, f, logger)
		},
	}
	f.register(cmd.Flags())

	return cmd
}

func run(cmd *cobra.Command, f *flags, logger zerolog.Logger) error {
	store, err := buildStore(f.config)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("sections", store.SectionCount()).
		Uint("pointer_size_bits", store.PointerSizeBits()).
		Msg("section store ready")

	sess, err := reader.Open(objaccess.NewStoreAdapter(store), reader.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer sess.Finish()

	return Dump(cmd.OutOrStdout(), sess, DumpOptions{Types: f.types, MaxUnits: f.maxUnits})
}

func buildStore(path string) (*section.Store, error) {
	if path == "" {
		store, err := sample.NewStore()
		if err != nil {
			return nil, fmt.Errorf("build sample store: %w", err)
		}

		return store, nil
	}

	table, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	store, err := table.NewStore()
	if err != nil {
		return nil, fmt.Errorf("build section store: %w", err)
	}

	return store, nil
}

// Execute runs the dwarfdump command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}
