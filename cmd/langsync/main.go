// Package main is the entry point for the langsync command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/langsync/internal/classify"
	"github.com/dshills/langsync/internal/config"
	"github.com/dshills/langsync/internal/editor"
	"github.com/dshills/langsync/internal/language"
	"github.com/dshills/langsync/internal/logging"
	"github.com/dshills/langsync/internal/modelsync"
	"github.com/dshills/langsync/internal/schedule"
	"github.com/dshills/langsync/internal/setup"
	"github.com/dshills/langsync/internal/workspace"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "langsync",
	Short: "Language detection and model synchronization for editor buffers",
	Long: `langsync keeps editor buffers, their language assignments, and the
typed language service consistent with each other and with the
workspace document on disk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("langsync %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Classify a file's language from its content and name",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize buffer languages with the workspace document",
	Long: `Opens the workspace document, creates a buffer for the active file,
and aligns the buffer's language with the file's classified content.
With --watch, keeps running and resynchronizes whenever the document
changes on disk.`,
	RunE: runSync,
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Demonstrate the cross-language diagnostic repair ladder",
	RunE:  runRepair,
}

var watchFlag bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	syncCmd.Flags().BoolVar(&watchFlag, "watch", false, "keep watching the workspace document")
	rootCmd.AddCommand(versionCmd, detectCmd, syncCmd, repairCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	v := classify.Classify(string(data), filepath.Base(path))

	fmt.Printf("Language:     %s\n", v.Language)
	fmt.Printf("Confidence:   %.2f\n", v.Confidence)
	fmt.Printf("Extension:    %s\n", v.Language.Extension())
	if v.HasTypeAnnotations {
		fmt.Println("Type syntax:  yes")
	}
	if v.HasJSXSyntax {
		fmt.Println("JSX syntax:   yes")
	}
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := workspace.OpenStore(cfg.Workspace.Path, workspace.WithLogger(logger))
	if err != nil {
		return err
	}

	host := editor.NewMemHost()
	eng := modelsync.New(
		modelsync.WithScheduler(&schedule.Immediate{}),
		modelsync.WithLogger(logger),
		modelsync.WithWorkspaceAccessor(store),
	)
	setup.Init(cmd.Context(), host, cfg, eng, filepath.Dir(cfg.Workspace.Path), logger)

	// Detected languages flow back into the workspace document.
	eng.RegisterSyncCallback(func(fileID string, lang workspace.Language) {
		rec := store.File(fileID)
		if rec == nil {
			return
		}
		if rec.Language == lang {
			return
		}
		rec.Language = lang
		if err := store.UpsertFile(*rec); err != nil {
			logger.Warn("workspace update failed", zap.String("file_id", fileID), zap.Error(err))
		}
	})

	buffers := make(map[string]editor.Buffer)
	syncActive := func() {
		rec := store.ActiveFile()
		if rec == nil {
			fmt.Println("workspace has no active file")
			return
		}
		buf, ok := buffers[rec.FileID]
		if !ok || buf.Disposed() {
			lang, known := language.ForFilename(rec.Name)
			if !known {
				lang = language.PlainText
			}
			var err error
			buf, err = host.CreateBuffer("inmemory://workspace/"+rec.FileID, lang, rec.Content)
			if err != nil {
				logger.Warn("buffer create failed", zap.String("file_id", rec.FileID), zap.Error(err))
				return
			}
			buffers[rec.FileID] = buf
		}
		host.SetActiveBuffer(buf)
		changed := eng.SyncWithWorkspace(buf, host)
		fmt.Printf("%s (%s): language %s", rec.Name, rec.FileID, buf.Language())
		if changed {
			fmt.Print(" [updated]")
		}
		fmt.Println()
	}

	syncActive()
	if !watchFlag {
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	w, err := workspace.Watch(ctx, store, logger, workspace.WithOnReload(syncActive))
	if err != nil {
		return err
	}
	defer w.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	return nil
}

func runRepair(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	host := editor.NewMemHost()
	eng := modelsync.New(
		modelsync.WithScheduler(&schedule.Immediate{}),
		modelsync.WithLogger(logger),
	)
	setup.Init(cmd.Context(), host, cfg, eng, filepath.Dir(cfg.Workspace.Path), logger)

	// A typed buffer stuck under an untyped identifier, showing the
	// cross-language diagnostic.
	buf, err := host.CreateBuffer("file:///demo/app.js", language.TypeScript,
		"const greeting: string = \"hello\";\n")
	if err != nil {
		return err
	}
	host.SetMarkers(buf, editor.OwnerTypeScript, []editor.Marker{{
		Owner:    editor.OwnerTypeScript,
		Code:     modelsync.TypeSyntaxInJSCode,
		Message:  "Type annotations can only be used in TypeScript files.",
		Severity: editor.SeverityError,
	}})

	fmt.Printf("before: uri=%s language=%s symptomatic=%v\n",
		buf.URI(), buf.Language(), modelsync.HasCrossLanguageDiagnostic(host, buf))

	ok := eng.DeepRepair(buf, host, "")

	fmt.Printf("after:  uri=%s language=%s symptomatic=%v consistent=%v\n",
		buf.URI(), buf.Language(), modelsync.HasCrossLanguageDiagnostic(host, buf), ok)
	return nil
}
