package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goodric/api-docs-tool/internal/history"
	"github.com/goodric/api-docs-tool/internal/logger"
	"github.com/goodric/api-docs-tool/pkg/apiget"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// Scan flags
	baseURL      string
	limit        int
	includeAll   bool
	methodFilter string
	noRequest    bool
	probeTimeout int
	workers      int
	delay        int
	outDir       string
	historyDB    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "apiget",
		Short: "apiget - API documentation prober",
		Long: `apiget - Discover and probe the endpoints of an OpenAPI/Swagger document.

Fetches a machine-readable API specification, extracts every documented
endpoint, probes each one with a live request, and writes an HTML report
plus a CSV export of the observed responses.`,
		Version: version,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [document-url]",
		Short: "Scan an API documentation URL",
		Long:  "Fetch the specification document, probe its endpoints, and write the report files.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scan runs",
		RunE:  runHistory,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug logging")

	scanCmd.Flags().StringVarP(&baseURL, "base-url", "b", "", "Base URL override for endpoint resolution")
	scanCmd.Flags().IntVarP(&limit, "limit", "l", 0, "Probe only the first N endpoints")
	scanCmd.Flags().BoolVar(&includeAll, "all", false, "Probe all endpoints, including DELETE")
	scanCmd.Flags().StringVarP(&methodFilter, "method", "m", "", "Only probe these HTTP methods (e.g. get,post)")
	scanCmd.Flags().BoolVar(&noRequest, "no-request", false, "Extract endpoints without probing them")
	scanCmd.Flags().IntVarP(&probeTimeout, "timeout", "t", 10, "Per-probe timeout in seconds")
	scanCmd.Flags().IntVarP(&workers, "workers", "w", 5, "Number of concurrent probe workers")
	scanCmd.Flags().IntVar(&delay, "delay", 100, "Pacing delay between probes in milliseconds")
	scanCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory for report files")
	scanCmd.Flags().StringVar(&historyDB, "history-db", "", "Record the run in this history database")

	historyCmd.Flags().StringVar(&historyDB, "history-db", "", "History database to read")
	historyCmd.MarkFlagRequired("history-db")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	config := apiget.DefaultConfig()

	if configFile != "" {
		fileConfig, err := apiget.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
		config = fileConfig
	}

	config.DocumentURL = args[0]
	if cmd.Flags().Changed("base-url") {
		config.BaseURL = baseURL
	}
	if cmd.Flags().Changed("limit") {
		config.Limit = limit
	}
	if cmd.Flags().Changed("all") {
		config.IncludeDelete = includeAll
	}
	if cmd.Flags().Changed("method") {
		config.MethodFilter = methodFilter
	}
	if cmd.Flags().Changed("no-request") {
		config.SkipProbing = noRequest
	}
	if cmd.Flags().Changed("timeout") {
		config.ProbeTimeout = time.Duration(probeTimeout) * time.Second
	}
	if cmd.Flags().Changed("workers") {
		config.Workers = workers
	}
	if cmd.Flags().Changed("delay") {
		config.Delay = time.Duration(delay) * time.Millisecond
	}
	if cmd.Flags().Changed("out-dir") {
		config.OutputDir = outDir
	}
	if cmd.Flags().Changed("history-db") {
		config.HistoryPath = historyDB
	}
	config.Verbose = config.Verbose || verbose || debug

	logCfg := logger.DefaultConfig()
	if config.Verbose {
		logCfg.Level = logger.DebugLevel
	}
	log := logger.New(logCfg)

	scanner, err := apiget.New(
		apiget.WithConfig(config),
		apiget.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
		cancel()
	}()

	start := time.Now()
	result, err := scanner.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(result, time.Since(start))
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %-40s  %d endpoints (%d probed, %d skipped)  %s\n",
			rec.When.Format("2006-01-02 15:04:05"),
			rec.DocumentURL, rec.Total, rec.Probed, rec.Skipped, rec.HTMLPath)
	}
	return nil
}

func printSummary(result *apiget.Result, duration time.Duration) {
	fmt.Println()
	fmt.Printf("Scan complete in %v\n", duration.Round(time.Millisecond))
	fmt.Printf("Endpoints:  %d\n", len(result.Endpoints))
	fmt.Printf("Probed:     %d\n", result.Probed)
	fmt.Printf("Skipped:    %d\n", result.Skipped)
	fmt.Printf("HTML:       %s\n", result.HTMLPath)
	fmt.Printf("CSV:        %s\n", result.CSVPath)
}
