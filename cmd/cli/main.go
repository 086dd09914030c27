package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	rootCmd   = &cobra.Command{
		Use:   "mediafetch",
		Short: "MediaFetch CLI - Save photos, videos and reels from social platforms",
		Long:  `A command-line interface for retrieving content from YouTube, Facebook and Instagram through a MediaFetch server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(healthCmd)

	fetchCmd.Flags().StringP("content-type", "t", "", "Content type for Instagram (Photo, Reel)")
	fetchCmd.Flags().StringP("quality", "q", "", "Video quality (defaults to 720p when available)")
	fetchCmd.Flags().Bool("info", false, "Only look up metadata, do not download")
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesDeleteCmd)
	savesListCmd.Flags().StringP("platform", "p", "", "Filter by platform")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [platform] [url]",
	Short: "Retrieve content from a platform URL",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		platform, url := args[0], args[1]
		contentType, _ := cmd.Flags().GetString("content-type")
		quality, _ := cmd.Flags().GetString("quality")
		infoOnly, _ := cmd.Flags().GetBool("info")

		// Open a session for the platform
		session := post("/api/v1/sessions", map[string]string{"platform": platform}, http.StatusCreated)
		sessionID := session["id"].(string)
		defer func() {
			req, _ := http.NewRequest(http.MethodDelete, serverURL+"/api/v1/sessions/"+sessionID, nil)
			http.DefaultClient.Do(req)
		}()

		base := "/api/v1/sessions/" + sessionID

		if contentType != "" {
			post(base+"/content-type", map[string]string{"content_type": contentType}, http.StatusOK)
		}

		snapshot := post(base+"/url", map[string]string{"url": url}, http.StatusOK)
		if snapshot["phase"] == "awaiting_content_type" {
			fmt.Fprintln(os.Stderr, "Error: this platform needs --content-type (Photo or Reel)")
			os.Exit(1)
		}

		printSnapshot(snapshot)

		if infoOnly {
			return
		}

		payload := map[string]string{}
		if quality != "" {
			payload["quality"] = quality
		}
		result := post(base+"/download", payload, http.StatusOK)

		if asset, ok := result["asset"].(map[string]interface{}); ok {
			fmt.Printf("\nSaved %s (%v bytes)\n", asset["file_path"], asset["size_bytes"])
		}
	},
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage saved assets",
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved assets",
	Run: func(cmd *cobra.Command, args []string) {
		platform, _ := cmd.Flags().GetString("platform")

		url := serverURL + "/api/v1/saves"
		if platform != "" {
			url += "?platform=" + platform
		}

		resp, err := http.Get(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var saves []map[string]interface{}
		json.Unmarshal(body, &saves)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPLATFORM\tKIND\tQUALITY\tFILE\tCREATED")
		for _, s := range saves {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				truncate(s["id"].(string), 8),
				s["platform"],
				s["content_kind"],
				s["quality"],
				s["file_name"],
				s["created_at"])
		}
		w.Flush()
	},
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a save record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req, _ := http.NewRequest(http.MethodDelete, serverURL+"/api/v1/saves/"+args[0], nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}
		fmt.Println("Save deleted")
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/health")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var health map[string]interface{}
		json.Unmarshal(body, &health)

		fmt.Printf("Status:   %v\n", health["status"])
		fmt.Printf("Version:  %v\n", health["version"])
		fmt.Printf("Sessions: %v\n", health["sessions"])
	},
}

// post sends a JSON body and decodes the response, exiting on any status
// other than want.
func post(path string, payload map[string]string, want int) map[string]interface{} {
	data, _ := json.Marshal(payload)
	resp, err := http.Post(serverURL+path, "application/json", bytes.NewBuffer(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		var failure map[string]interface{}
		if json.Unmarshal(body, &failure) == nil && failure["error"] != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", failure["error"])
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		}
		os.Exit(1)
	}

	var result map[string]interface{}
	json.Unmarshal(body, &result)
	return result
}

func printSnapshot(snapshot map[string]interface{}) {
	descriptor, ok := snapshot["descriptor"].(map[string]interface{})
	if !ok {
		return
	}

	fmt.Printf("Found %v content\n", descriptor["type"])
	fmt.Printf("  Description: %v\n", descriptor["description"])
	if display, ok := snapshot["duration_display"].(string); ok && display != "" {
		fmt.Printf("  Duration:    %s\n", display)
	}
	if qualities, ok := descriptor["qualities"].([]interface{}); ok && len(qualities) > 0 {
		fmt.Printf("  Qualities:   %v\n", qualities)
		fmt.Printf("  Selected:    %v\n", snapshot["selected_quality"])
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
