package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	clubID string
	raceTo int
)

func init() {
	createCmd.Flags().StringVar(&clubID, "club", "", "Club the tournament belongs to")
	createCmd.Flags().IntVar(&raceTo, "race-to", 0, "Frames needed to win a match (0 uses the server default)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(readyCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var createCmd = &cobra.Command{
	Use:   "create <groupA comma-separated> <groupB comma-separated>",
	Short: "Create a tournament from two 16-player groups",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{
			"club_id": clubID,
			"group_a": strings.Split(args[0], ","),
			"group_b": strings.Split(args[1], ","),
			"race_to": raceTo,
		}
		return performPostRequest("/tournaments", payload)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state <tournamentID>",
	Short: "Show a tournament's full bracket state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments/state?tournamentID=" + args[0])
	},
}

var readyCmd = &cobra.Command{
	Use:   "ready <tournamentID> [group]",
	Short: "List matches that can accept a score",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/tournaments/ready?tournamentID=" + args[0]
		if len(args) == 2 {
			endpoint += "&group=" + args[1]
		}
		return performGetRequest(endpoint)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <tournamentID> <matchID> <score1> <score2>",
	Short: "Submit a match result",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		score1, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("score1 must be an integer: %w", err)
		}
		score2, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("score2 must be an integer: %w", err)
		}
		payload := map[string]any{
			"tournament_id": args[0],
			"match_id":      args[1],
			"score1":        score1,
			"score2":        score2,
		}
		return performPostRequest("/tournaments/score", payload)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
