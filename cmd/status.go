package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"dockhand/internal/agent"
	"dockhand/internal/dto"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the registered nodes of a running server",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

var (
	statusHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	token, err := agent.MintToken([]byte(cfg.Admin.SessionSecret), "cli")
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d/api/v1/nodes", cfg.Http.Port)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("is the server running? %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var nodes dto.NodesResponse
	if err := json.NewDecoder(resp.Body).Decode(&nodes); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return statusHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("NAME", "TYPE", "ADDRESS", "STATUS")

	for _, n := range nodes.Nodes {
		status := n.Status
		if status == dto.NodeStatusRunning {
			status = statusOKStyle.Render(status)
		} else {
			status = statusErrStyle.Render(status)
		}
		addr := n.Address
		if addr == "" {
			addr = "local"
		}
		t.Row(n.Name, n.Type, addr, status)
	}

	fmt.Println(t.Render())
	return nil
}
