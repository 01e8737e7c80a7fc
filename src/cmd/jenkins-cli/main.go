// Package main provides the unified Jenkins agent CLI.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jenkins-agent/src/audit"
	"jenkins-agent/src/config"
	"jenkins-agent/src/events"
	"jenkins-agent/src/facade"
	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/logger"
	"jenkins-agent/src/mcp"
	"jenkins-agent/src/tui"
)

var (
	appConfig *config.Config
	debug     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jenkins-agent",
	Short: "Jenkins agent - resource management for a Jenkins server",
	Long: `Jenkins agent manages jobs, builds, nodes, views and credentials on a
Jenkins server, and exposes the full operation catalog to AI agents over
the Model Context Protocol.

Configuration comes from the environment:
  JENKINS_URL        Jenkins server base URL (required)
  JENKINS_USERNAME   account for authentication (required)
  JENKINS_API_TOKEN  API token or password (required)
  DATABASE_URL       Postgres DSN for the operation audit trail (optional)
  REDPANDA_BROKERS   comma-separated brokers for operation events (optional)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		appConfig, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
	},
}

// newFacade builds an authenticated facade from the loaded configuration.
func newFacade(lg logger.Logger) *facade.Facade {
	client := jenkins.NewClient(appConfig.URL, appConfig.Username, appConfig.APIToken,
		jenkins.WithTimeout(appConfig.Timeout),
		jenkins.WithLogger(lg),
	)
	return facade.New(client, facade.WithLogger(lg))
}

func newLogger() logger.Logger {
	lg, err := logger.NewZapLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return lg
}

// serveCmd runs the MCP server on stdio
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Run the Model Context Protocol server on stdin/stdout, exposing the
Jenkins operation catalog as tools. Mutating operations are recorded in the
audit trail and announced on the event stream when those are configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		lg := newLogger()
		f := newFacade(lg)

		auditLog, err := audit.Open(appConfig.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Audit log error: %v\n", err)
			os.Exit(1)
		}
		defer auditLog.Close()

		publisher, err := events.Open(appConfig.Brokers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Event publisher error: %v\n", err)
			os.Exit(1)
		}
		defer publisher.Close()

		server, err := mcp.NewServer(f,
			mcp.WithAuditLog(auditLog),
			mcp.WithPublisher(publisher),
			mcp.WithLogger(lg),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}

		if err := server.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

// checkCmd verifies connectivity and credentials
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify connectivity and credentials",
	Run: func(cmd *cobra.Command, args []string) {
		f := newFacade(newLogger())

		info, err := f.CheckConnection(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Server:   %s\n", info.URL)
		fmt.Printf("Version:  %s\n", info.Version)
		fmt.Printf("User:     %s\n", info.Username)
	},
}

// jobsCmd launches the interactive job dashboard
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse jobs in an interactive dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		f := newFacade(logger.NewSilentLogger())

		p := tea.NewProgram(tui.NewModel(f), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Dashboard error: %v\n", err)
			os.Exit(1)
		}
	},
}

// auditCmd lists recent recorded operations
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent operations from the audit trail",
	Long:  `Query the audit trail for recently recorded operations. Requires DATABASE_URL.`,
	Run: func(cmd *cobra.Command, args []string) {
		if appConfig.DatabaseURL == "" {
			fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable is required for the audit command")
			os.Exit(1)
		}

		log, err := audit.NewPostgresLog(appConfig.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to Postgres: %v\n", err)
			os.Exit(1)
		}
		defer log.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := log.Recent(context.Background(), limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to query audit trail: %v\n", err)
			os.Exit(1)
		}

		if len(entries) == 0 {
			fmt.Println("No recorded operations.")
			return
		}

		for _, e := range entries {
			fmt.Printf("%s  %-22s %-10s %-30s %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Tool, e.Status, e.Target, e.Detail)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	auditCmd.Flags().Int("limit", 20, "maximum entries to show")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(auditCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
