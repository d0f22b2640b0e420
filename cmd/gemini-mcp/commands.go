package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/Veraticus/gemini-mcp/internal/config"
	"github.com/Veraticus/gemini-mcp/internal/gemini"
	"github.com/Veraticus/gemini-mcp/internal/tools"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gemini-mcp",
		Short: "Expose the Gemini CLI as MCP tools",
		Long: `gemini-mcp serves the Gemini command-line tool over the Model Context
Protocol so that another AI assistant can ask Gemini for a second opinion.

Without a subcommand it serves MCP on stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(),
		newStatusCmd(),
		newPromptCmd(),
		newAnalyzeCmd(),
		newMCPConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start an MCP (Model Context Protocol) server on stdio.

Example configuration for .mcp.json:
  {
    "mcpServers": {
      "gemini-cli": {
        "command": "gemini-mcp",
        "args": ["serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	c, err := initializeComponents(cmd.Flags())
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	c.server.Announce(ctx)
	return c.server.Run(ctx, &mcp.StdioTransport{})
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report Gemini CLI availability as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := initializeComponents(cmd.Flags())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), c.facade.Status(cmd.Context()))
		},
	}
}

func newPromptCmd() *cobra.Command {
	var (
		inputFile string
		dir       string
		opts      gemini.Options
	)
	cmd := &cobra.Command{
		Use:   "prompt TEXT",
		Short: "Send one prompt to Gemini and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if strings.TrimSpace(prompt) == "" {
				return &gemini.ValidationError{Field: "prompt", Message: "Prompt cannot be empty"}
			}

			c, err := initializeComponents(cmd.Flags())
			if err != nil {
				return err
			}

			var input *string
			if inputFile != "" {
				payload, loadErr := config.LoadInputFile(inputFile, cmd.InOrStdin())
				if loadErr != nil {
					return loadErr
				}
				input = &payload
			}

			if dir != "" {
				if opts.Dir, err = gemini.ResolveDirectory(dir); err != nil {
					return err
				}
			}

			reply, err := c.client.Execute(cmd.Context(), prompt, c.config.DefaultModel, input, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}
	cmd.Flags().StringVar(&inputFile, "input-file", "", "file piped to gemini's stdin, - for stdin")
	cmd.Flags().StringVar(&dir, "dir", "", "working directory for gemini")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "pass --debug to gemini")
	cmd.Flags().BoolVar(&opts.AllFiles, "all-files", false, "pass --all_files to gemini")
	cmd.Flags().BoolVar(&opts.ShowMemoryUsage, "show-memory-usage", false, "pass --show_memory_usage to gemini")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "analyze QUESTION",
		Short: "Ask Gemini a question about a whole directory tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initializeComponents(cmd.Flags())
			if err != nil {
				return err
			}
			resp := c.facade.AnalyzeDirectory(cmd.Context(), strings.Join(args, " "), path, "")
			if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("analysis failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", tools.DefaultPath, "directory to analyze")
	return cmd
}

func newMCPConfigCmd() *cobra.Command {
	var (
		output  string
		command string
	)
	cmd := &cobra.Command{
		Use:   "mcp-config",
		Short: "Print or write a .mcp.json entry that launches this server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if command == "" {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("failed to locate executable: %w", err)
				}
				command = exe
			}

			entry := config.GenerateMCPConfig(tools.ServerName, command, []string{"serve"}, passthroughEnv())
			if output == "" {
				data, err := config.MarshalMCPConfig(entry)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			merged := entry
			if existing, err := config.LoadMCPConfig(output); err == nil {
				merged = config.MergeMCPConfig(existing, entry)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.WriteMCPConfig(merged, output); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Clean(output))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "merge the entry into this .mcp.json instead of printing")
	cmd.Flags().StringVar(&command, "command", "", "server command to register (default: this executable)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tools.ServerName, version)
		},
	}
}

// passthroughEnv copies GEMINI_MCP_* settings into the registration entry.
func passthroughEnv() map[string]string {
	env := map[string]string{}
	for _, key := range []string{
		config.EnvBinary,
		config.EnvModel,
		config.EnvProbeTimeout,
		config.EnvExecTimeout,
		config.EnvLogLevel,
	} {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}
	if len(env) == 0 {
		return nil
	}
	return env
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
