package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	schemasDir string
	outDir     string
	verbose    bool

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "schemagen",
	Short: "Generate client models from JSON schemas",
	Long: `schemagen reads *.schema.json files and emits TypeScript interfaces,
Dart data classes and Firestore validation rules for them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := initLogger(verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "schemagen.yaml", "path to the generator config")
	rootCmd.PersistentFlags().StringVar(&schemasDir, "schemas", "", "directory with *.schema.json files (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	for _, c := range []*cobra.Command{typesCmd, dartCmd, rulesCmd} {
		c.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides config)")
	}

	rootCmd.AddCommand(validateCmd, typesCmd, dartCmd, rulesCmd, allCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLogger(debug bool) (*zap.SugaredLogger, error) {
	conf := zap.NewDevelopmentConfig()
	conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	conf.DisableStacktrace = true
	if !debug {
		conf.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := conf.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}
