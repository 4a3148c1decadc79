package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tinlanh/church-admin/internal/schemagen"
)

var watch bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check schemas before generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}

		results, err := schemagen.ValidateDir(conf.Schemas)
		if err != nil {
			return err
		}

		valid := true
		for _, res := range results {
			for _, e := range res.Errors {
				logger.Errorw("schema error", "file", res.File, "err", e)
			}
			for _, w := range res.Warnings {
				logger.Warnw("schema warning", "file", res.File, "warning", w)
			}
			if res.Valid() {
				logger.Infow("schema ok", "file", res.File)
			} else {
				valid = false
			}
		}

		if !valid {
			return fmt.Errorf("schema validation failed")
		}
		logger.Infow("all schemas are valid", "count", len(results))
		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Generate TypeScript interfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		if outDir != "" {
			conf.TypeScript = outDir
		}

		written, err := schemagen.NewGenerator(conf, logger).TypeScript()
		if err != nil {
			return err
		}
		logger.Infow("typescript generated", "files", len(written), "dir", conf.TypeScript)
		return nil
	},
}

var dartCmd = &cobra.Command{
	Use:   "dart",
	Short: "Generate Dart data classes",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		if outDir != "" {
			conf.Dart = outDir
		}

		written, err := schemagen.NewGenerator(conf, logger).Dart()
		if err != nil {
			return err
		}
		logger.Infow("dart generated", "files", len(written), "dir", conf.Dart)
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Generate Firestore validation rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		if outDir != "" {
			conf.Rules = outDir
		}

		if _, err := schemagen.NewGenerator(conf, logger).Rules(); err != nil {
			return err
		}
		logger.Infow("rules generated", "dir", conf.Rules)
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}

		g := schemagen.NewGenerator(conf, logger)
		if err := g.All(); err != nil {
			return err
		}
		if !watch {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return schemagen.Watch(ctx, conf.Schemas, 0, logger, func() {
			if err := g.All(); err != nil {
				logger.Errorw("regeneration failed", "err", err)
				return
			}
			logger.Infow("regenerated")
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <schema> <document.json>...",
	Short: "Evaluate the generated rules against JSON documents",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if res := schemagen.Validate(args[0], content); !res.Valid() {
			return fmt.Errorf("%s: invalid schema: %v", args[0], res.Errors)
		}

		schema, err := schemagen.Parse(filepath.Base(args[0]), content)
		if err != nil {
			return err
		}
		rules := schemagen.NewRuleSet(schema)

		failed := 0
		for _, path := range args[1:] {
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			violations := rules.Violations(doc)
			unknown := rules.UnknownFields(doc)
			if len(violations) == 0 && len(unknown) == 0 {
				logger.Infow("document ok", "file", path)
				continue
			}

			failed++
			for _, v := range violations {
				logger.Errorw("rule violation", "file", path, "err", v)
			}
			if len(unknown) != 0 {
				logger.Errorw("fields not allowed", "file", path, "fields", unknown)
			}
		}

		if failed != 0 {
			return fmt.Errorf("%d of %d documents rejected", failed, len(args)-1)
		}
		return nil
	},
}

func init() {
	allCmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when schemas change")
}

func loadConfig() (schemagen.Config, error) {
	conf, err := schemagen.LoadConfig(configPath)
	if err != nil {
		return conf, err
	}
	if schemasDir != "" {
		conf.Schemas = schemasDir
	}
	return conf, nil
}
