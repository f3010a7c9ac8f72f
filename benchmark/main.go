// Package main provides a performance benchmarking tool for the cofail CLI.
// It measures mining times across dataset sizes and command types, running each
// test multiple times, treating the first successful run as cold and averaging
// the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - cofail binary installed and available in PATH
//
// Usage: go run benchmark/main.go [data-dir]
//
//	data-dir: Directory where synthetic complaint files are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (serial average, cold run and average of warm parallel runs).
type BenchmarkResult struct {
	Dataset    string
	Command    string
	SerialTime string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir      string
	Timeout      time.Duration
	Workers      int
	SerialRuns   int
	ParallelRuns int
	DatasetSizes map[string]int
}

// componentPool is the vocabulary for synthetic complaint components.
var componentPool = []string{
	"ENGINE", "BRAKES", "STEERING", "SUSPENSION", "ELECTRICAL SYSTEM",
	"AIR BAGS", "FUEL SYSTEM", "POWER TRAIN", "SEAT BELTS", "VISIBILITY",
	"STRUCTURE", "WHEELS", "TIRES", "EXTERIOR LIGHTING", "SERVICE BRAKES",
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}
	dataDir := os.Args[1]

	config := BenchmarkConfig{
		DataDir:      dataDir,
		Timeout:      5 * time.Minute,
		Workers:      14,
		SerialRuns:   3,
		ParallelRuns: 4,
		DatasetSizes: map[string]int{
			"small":  10_000,
			"medium": 100_000,
			"large":  500_000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies the cofail binary exists and generates any
// missing synthetic datasets.
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if cofail is available
	if _, err := exec.LookPath("cofail"); err != nil {
		return fmt.Errorf("cofail binary not found in PATH")
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("cannot create data dir: %w", err)
	}

	for name, rows := range config.DatasetSizes {
		path := datasetPath(config, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Printf("Generating %s dataset (%d rows)\n", name, rows)
			if err := generateDataset(path, rows); err != nil {
				return fmt.Errorf("failed to generate %s: %w", name, err)
			}
		}
	}

	return nil
}

func datasetPath(config BenchmarkConfig, name string) string {
	return filepath.Join(config.DataDir, fmt.Sprintf("complaints_%s.txt", name))
}

// generateDataset writes a tab-separated complaint file with a skewed
// component distribution so mining finds non-trivial co-occurrences.
func generateDataset(path string, rows int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", path, closeErr)
		}
	}()

	rng := rand.New(rand.NewSource(42))

	header := []string{
		"CMPLID", "ODINO", "MFR_NAME", "MAKETXT", "MODELTXT", "YEARTXT",
		"CRASH", "FAILDATE", "FIRE", "INJURED", "DEATHS", "COMPDESC",
		"CITY", "STATE", "VIN", "DATEA", "LDATE", "MILES", "OCCURENCES", "CDESCR",
	}
	if _, err := fmt.Fprintln(file, strings.Join(header, "\t")); err != nil {
		return err
	}

	numVehicles := rows / 4
	if numVehicles == 0 {
		numVehicles = 1
	}
	for i := range rows {
		vehicle := rng.Intn(numVehicles)
		// Zipf-ish skew keeps a handful of components dominant
		component := componentPool[int(rng.ExpFloat64()*2)%len(componentPool)]
		fields := []string{
			fmt.Sprintf("%d", i+1),
			"10101",
			"ACME MOTORS",
			"ACME",
			fmt.Sprintf("MODEL-%d", vehicle%50),
			fmt.Sprintf("%d", 2010+vehicle%15),
			"N",
			fmt.Sprintf("2020%02d%02d", 1+rng.Intn(12), 1+rng.Intn(28)),
			"N",
			"0",
			"0",
			component,
			"DETROIT",
			"MI",
			fmt.Sprintf("1FAKE%011d", vehicle),
			fmt.Sprintf("2020%02d%02d", 1+rng.Intn(12), 1+rng.Intn(28)),
			fmt.Sprintf("2020%02d%02d", 1+rng.Intn(12), 1+rng.Intn(28)),
			fmt.Sprintf("%d", 1000+rng.Intn(200000)),
			"1",
			"Component failed during operation.",
		}
		if _, err := fmt.Fprintln(file, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, serial: %d runs, parallel: %d runs\n",
		len(config.DatasetSizes), config.Timeout, config.Workers, config.SerialRuns, config.ParallelRuns)

	for _, name := range []string{"small", "medium", "large"} {
		fmt.Printf("Benchmarking %s\n", name)

		path := datasetPath(config, name)

		// Itemset mining
		result := runBenchmarkSuite(config, name, path, "mine", "itemset mining", "")
		results = append(results, result)

		// Rule generation with the default lift metric
		result = runBenchmarkSuite(config, name, path, "rules", "rule generation (lift)", "--metric lift --min-threshold 1.0")
		results = append(results, result)

		// Rule generation with a confidence filter
		result = runBenchmarkSuite(config, name, path, "rules", "rule generation (confidence)", "--metric confidence --min-threshold 0.6")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both serial and parallel benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, dataPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(workers, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataPath, command, extraArgs, workers, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: Serial runs
	_, serialAvg := runPhase(1, config.SerialRuns, "Serial")

	// Phase 2: Parallel runs
	coldTime, warmAvg := runPhase(config.Workers, config.ParallelRuns, "Parallel")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Serial average: %s, Cold time: %s, Warm average: %s\n", serialAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:    dataset,
		Command:    command,
		SerialTime: serialAvg,
		ColdTime:   coldTimeStr,
		WarmTime:   warmAvg,
	}
}

// runBenchmark executes a cofail command multiple times with the specified worker count and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataPath, command, extraArgs string, workers, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, dataPath, "--workers", fmt.Sprintf("%d", workers)}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("cofail", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/cofail_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "serial_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.SerialTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "mine", "Itemset Mining:")
	printCommandSummary(results, "rules", "Rule Generation:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Serial: %s, Cold: %s, Warm: %s\n", result.Dataset, result.SerialTime, result.ColdTime, result.WarmTime)
		}
	}
}
