package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/daemon"
)

const statusTimeout = 3 * time.Second

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the status of a running bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			base, err := apiBaseURL(cfg.Paths.APIBind)
			if err != nil {
				return err
			}

			status, err := fetchStatus(cmd.Context(), base)
			out := cmd.OutOrStdout()
			if asJSON {
				if err != nil {
					return err
				}
				return writeJSON(cmd, status)
			}

			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Marquee", colorize) {
				fmt.Fprintln(out, line)
			}
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Daemon", statusError, "not reachable at "+base, colorize))
				return nil
			}
			if status.Running {
				fmt.Fprintln(out, renderStatusLine("Daemon", statusOK, "running", colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Daemon", statusWarn, "stopped", colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Bot", statusInfo, "@"+orDash(status.BotUsername), colorize))
			fmt.Fprintln(out, renderStatusLine("Uptime", statusInfo,
				(time.Duration(status.UptimeSeconds) * time.Second).String(), colorize))
			fmt.Fprintln(out, renderStatusLine("Handled", statusInfo, fmt.Sprintf("%d requests", status.Handled), colorize))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

// apiBaseURL maps a listen address to a URL reachable from this host.
func apiBaseURL(bind string) (string, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return "", fmt.Errorf("paths.api_bind is empty; the status API is disabled")
	}
	host, port, err := net.SplitHostPort(bind)
	if err != nil {
		return "", fmt.Errorf("parse paths.api_bind %q: %w", bind, err)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port), nil
}

func fetchStatus(ctx context.Context, base string) (daemon.Status, error) {
	var status daemon.Status
	reqCtx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, base+"/api/status", nil)
	if err != nil {
		return status, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return status, fmt.Errorf("query daemon: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("query daemon: unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, fmt.Errorf("decode daemon status: %w", err)
	}
	return status, nil
}
