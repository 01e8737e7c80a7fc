// Package main provides the MCP server entry point for the Jenkins agent.
// The server implements the Model Context Protocol over stdio, exposing the
// Jenkins operation catalog as tools.
package main

import (
	"log"

	"jenkins-agent/src/audit"
	"jenkins-agent/src/config"
	"jenkins-agent/src/events"
	"jenkins-agent/src/facade"
	"jenkins-agent/src/jenkins"
	"jenkins-agent/src/logger"
	"jenkins-agent/src/mcp"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Stdout carries the MCP transport, so all logging goes to stderr.
	lg, err := logger.NewZapLogger(false)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer lg.Sync()

	client := jenkins.NewClient(cfg.URL, cfg.Username, cfg.APIToken,
		jenkins.WithTimeout(cfg.Timeout),
		jenkins.WithLogger(lg),
	)
	f := facade.New(client, facade.WithLogger(lg))

	auditLog, err := audit.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Audit log error: %v", err)
	}
	defer auditLog.Close()

	publisher, err := events.Open(cfg.Brokers)
	if err != nil {
		log.Fatalf("Event publisher error: %v", err)
	}
	defer publisher.Close()

	server, err := mcp.NewServer(f,
		mcp.WithAuditLog(auditLog),
		mcp.WithPublisher(publisher),
		mcp.WithLogger(lg),
	)
	if err != nil {
		log.Fatalf("MCP server error: %v", err)
	}

	if err := server.Run(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
