package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vet-patient-records/internal/config"
	"vet-patient-records/internal/domain/patients"
	"vet-patient-records/internal/domain/users"
	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/ports/kv"
	"vet-patient-records/internal/router"
	"vet-patient-records/internal/storage"

	"github.com/spf13/cobra"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "vet-patient-records",
		Short:         "Fichas de pacientes de la clínica veterinaria",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", ".env", "Path to the env config file")

	rootCmd.AddCommand(serveCmd(&configFile))
	rootCmd.AddCommand(seedCmd(&configFile))
	rootCmd.AddCommand(patientsCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app agrupa lo que necesitan los subcomandos.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	kv    kv.Store
	store *storage.Adapter
	close func()
}

func bootstrap(ctx context.Context, configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Writer: os.Stderr,
	})

	kvStore, closeFn, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:   cfg,
		log:   log,
		kv:    kvStore,
		store: storage.NewAdapter(kvStore, storage.Options{Logger: log, Namespace: cfg.KVNamespace}),
		close: closeFn,
	}, nil
}

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *configFile)
			if err != nil {
				return err
			}
			defer a.close()
			log := a.log

			srv := &http.Server{
				Addr:         a.cfg.Addr(),
				Handler:      router.NewRouter(router.Options{Store: a.kv, Logger: log, Namespace: a.cfg.KVNamespace}),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting server", map[string]any{"addr": srv.Addr})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func seedCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Ensure the default account exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), *configFile)
			if err != nil {
				return err
			}
			defer a.close()

			if err := users.NewManager(a.store, a.log).EnsureDefaultAccount(cmd.Context()); err != nil {
				return fmt.Errorf("seed default account: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default account ready: %s\n", users.DefaultEmail)
			return nil
		},
	}
}

func patientsCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Inspect stored patient records",
	}

	// patients list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List patients, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, _ := cmd.Flags().GetString("q")

			a, err := bootstrap(cmd.Context(), *configFile)
			if err != nil {
				return err
			}
			defer a.close()

			svc := patients.NewService(patients.NewStoreRepository(a.store))
			printTable(cmd.OutOrStdout(), svc.List(cmd.Context(), patients.ListFilter{Query: q}))
			return nil
		},
	}
	listCmd.Flags().String("q", "", "Filter by patient, species, breed or owner")
	cmd.AddCommand(listCmd)

	// patients export
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print every patient as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("format")
			format, err := patients.ParseExportFormat(raw)
			if err != nil {
				return err
			}

			a, err := bootstrap(cmd.Context(), *configFile)
			if err != nil {
				return err
			}
			defer a.close()

			svc := patients.NewService(patients.NewStoreRepository(a.store))
			return patients.Encode(cmd.OutOrStdout(), format, svc.List(cmd.Context(), patients.ListFilter{}))
		},
	}
	exportCmd.Flags().String("format", "json", "Output format: json or yaml")
	cmd.AddCommand(exportCmd)

	return cmd
}

func printTable(w io.Writer, items []patients.Patient) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No hay pacientes registrados.")
		return
	}

	fmt.Fprintf(w, "%-24s %-16s %-12s %-6s %-20s %s\n", "CREATED AT", "PATIENT", "SPECIES", "AGE", "OWNER", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, p := range items {
		fmt.Fprintf(w, "%-24s %-16s %-12s %-6s %-20s %s\n",
			p.CreatedAt.String(), p.PatientName, p.Species, string(p.Age), p.OwnerName, p.ID)
	}
}
