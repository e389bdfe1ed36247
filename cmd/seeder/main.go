package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

// ddragonChampion is the slice of champion.json we need: the numeric key and
// the role tags. The first tag is what the category table resolves to.
type ddragonChampion struct {
	Name string   `json:"name"`
	Key  string   `json:"key"`
	Tags []string `json:"tags"`
}

type tableEntry struct {
	Key  int      `json:"key"`
	Tags []string `json:"tags"`
}

func main() {
	out := flag.String("out", "champion_table.json", "path to write the category table")
	version := flag.String("version", "", "Data Dragon version (default: latest)")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	v := *version
	if v == "" {
		latest, err := latestVersion(client)
		if err != nil {
			log.Fatalf("Failed to resolve Data Dragon version: %v", err)
		}
		v = latest
	}

	champURL := fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/data/en_US/champion.json", v)
	resp, err := client.Get(champURL)
	if err != nil {
		log.Fatalf("Failed to fetch champions: %v", err)
	}
	defer resp.Body.Close()

	var champData struct {
		Data map[string]ddragonChampion `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&champData); err != nil {
		log.Fatalf("Failed to parse champions: %v", err)
	}

	table := make(map[string]tableEntry, len(champData.Data))
	for _, champ := range champData.Data {
		if len(champ.Tags) == 0 {
			log.Printf("Skipping %s: no tags", champ.Name)
			continue
		}
		key, err := strconv.Atoi(champ.Key)
		if err != nil {
			log.Printf("Skipping %s: bad key %q", champ.Name, champ.Key)
			continue
		}
		// Keyed by display name: that is what match documents carry in
		// championName.
		table[champ.Name] = tableEntry{Key: key, Tags: champ.Tags}
	}

	if len(table) == 0 {
		log.Fatal("No champions in Data Dragon response")
	}

	payload, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal table: %v", err)
	}
	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Wrote %d champions (Data Dragon v%s) to %s\n", len(table), v, *out)
}

func latestVersion(client *http.Client) (string, error) {
	resp, err := client.Get("https://ddragon.leagueoflegends.com/api/versions.json")
	if err != nil {
		return "", fmt.Errorf("fetch versions: %w", err)
	}
	defer resp.Body.Close()

	var versions []string
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", fmt.Errorf("parse versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}
	return versions[0], nil
}
