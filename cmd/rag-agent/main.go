// Command rag-agent answers questions over the Sofia Imamia NoorBakshia
// knowledge base. It runs either as an MCP server on stdio or as a one-shot
// CLI for a single question or topic listing.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	rag "github.com/shahsyedai/rag-agent"
	"github.com/shahsyedai/rag-agent/common/logger"
	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/prompts"
	"github.com/shahsyedai/rag-agent/schema"
)

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:           "rag-agent",
		Short:         "Topic-filtered retrieval question answering for Islamic knowledge",
		Version:       rag.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Missing .env is fine; credentials may come from the real env.
			_ = godotenv.Load()
			level, err := logger.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return prompts.ValidateAll()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newAskCmd(), newTopicsCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newAskCmd() *cobra.Command {
	var topicFolder string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question and print the response as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp := client.Ask(cmd.Context(), schema.Request{
				Question:    args[0],
				TopicFolder: topicFolder,
			})
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringVarP(&topicFolder, "topic", "t", "", "restrict search to one topic folder")
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the topic categories available for filtered search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			return printJSON(cmd, client.Topics(cmd.Context()))
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ask and list-topics tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			mcpServer, client, err := rag.NewServer("rag-agent", cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			logger.Infof("main: serving MCP on stdio, collection=%s", cfg.VectorDB.Collection)
			return server.ServeStdio(mcpServer)
		},
	}
}

func newClient() (*rag.RAGClient, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return rag.NewRAGClient(cfg)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
