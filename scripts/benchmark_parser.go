package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Payload     string
	Variant     string // "stack", "bump", "pool", "mapped", or a heap baseline
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult represents one arena variant measured against the
// Go heap baseline of the same operation and payload.
type ComparisonResult struct {
	Operation   string
	Payload     string
	Variant     string
	ArenaNs     float64
	HeapNs      float64
	Speedup     float64
	ArenaMem    int64
	HeapMem     int64
	ArenaAllocs int64
	HeapAllocs  int64
	ArenaOnly   bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	// Parse benchmarks
	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	// Generate comparisons
	comparisons := generateComparisons(results)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	// Generate markdown report
	report := generateMarkdownReport(comparisons, results)

	// Write output
	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	// Close input file if opened
	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkRawAlloc/stack/16B-8    10000    12.4 ns/op    0 B/op    0 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		// Parse benchmark line
		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64

		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		// Parse name into operation, variant, and payload
		// Format: Benchmark<Operation>/<variant>/<payload>-<procs>
		// Or: Benchmark<Operation>/<variant>-<procs>
		// Or: Benchmark<Operation>-<procs> (whole-loop benchmarks with no split)
		parts := strings.Split(name, "/")

		operation := strings.TrimPrefix(parts[0], "Benchmark")
		variant := "arena"
		payload := ""

		switch {
		case len(parts) >= 3:
			variant = parts[1]
			payload = stripProcs(parts[len(parts)-1])
		case len(parts) == 2:
			variant = stripProcs(parts[1])
		default:
			operation = stripProcs(operation)
		}

		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Payload:     payload,
			Variant:     variant,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// stripProcs removes the trailing -N GOMAXPROCS suffix from a name segment.
func stripProcs(s string) string {
	if idx := strings.LastIndex(s, "-"); idx > 0 {
		return s[:idx]
	}
	return s
}

// isHeapBaseline reports whether a variant is the Go heap reference
// that the arena variants are measured against.
func isHeapBaseline(variant string) bool {
	return variant == "goheap" || variant == "heap"
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	// Group results by operation and payload
	type key struct {
		operation string
		payload   string
	}

	grouped := make(map[key]map[string]BenchmarkResult)

	for _, result := range results {
		k := key{result.Operation, result.Payload}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][result.Variant] = result
	}

	// Generate comparisons
	var comparisons []ComparisonResult

	for k, variants := range grouped {
		var heap BenchmarkResult
		hasHeap := false
		for v, r := range variants {
			if isHeapBaseline(v) {
				heap = r
				hasHeap = true
			}
		}

		for v, arena := range variants {
			if isHeapBaseline(v) {
				continue
			}

			if hasHeap {
				// Baseline exists for this group - compare against it
				speedup := heap.NsPerOp / arena.NsPerOp

				comparisons = append(comparisons, ComparisonResult{
					Operation:   k.operation,
					Payload:     k.payload,
					Variant:     v,
					ArenaNs:     arena.NsPerOp,
					HeapNs:      heap.NsPerOp,
					Speedup:     speedup,
					ArenaMem:    arena.BytesPerOp,
					HeapMem:     heap.BytesPerOp,
					ArenaAllocs: arena.AllocsPerOp,
					HeapAllocs:  heap.AllocsPerOp,
					ArenaOnly:   false,
				})
			} else {
				// Whole-loop benchmark with no heap counterpart
				comparisons = append(comparisons, ComparisonResult{
					Operation:   k.operation,
					Payload:     k.payload,
					Variant:     v,
					ArenaNs:     arena.NsPerOp,
					ArenaMem:    arena.BytesPerOp,
					ArenaAllocs: arena.AllocsPerOp,
					ArenaOnly:   true,
				})
			}
		}
	}

	// Sort by operation, then variant, then payload
	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		if comparisons[i].Variant != comparisons[j].Variant {
			return comparisons[i].Variant < comparisons[j].Variant
		}
		return comparisons[i].Payload < comparisons[j].Payload
	})

	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult, _ []BenchmarkResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Allocator Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	// Summary statistics
	arenaFaster := 0
	heapFaster := 0
	arenaOnly := 0
	totalSpeedup := 0.0

	for _, comp := range comparisons {
		if comp.ArenaOnly {
			arenaOnly++
		} else {
			if comp.Speedup > 1.0 {
				arenaFaster++
			} else if comp.Speedup < 1.0 {
				heapFaster++
			}
			totalSpeedup += comp.Speedup
		}
	}

	comparableCount := len(comparisons) - arenaOnly
	avgSpeedup := 0.0
	if comparableCount > 0 {
		avgSpeedup = totalSpeedup / float64(comparableCount)
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(comparisons)))
	sb.WriteString(fmt.Sprintf("- **Comparable** (heap baseline present): %d\n", comparableCount))
	if comparableCount > 0 {
		sb.WriteString(
			fmt.Sprintf(
				"  - arena faster: %d (%.1f%%)\n",
				arenaFaster,
				float64(arenaFaster)/float64(comparableCount)*100,
			),
		)
		sb.WriteString(
			fmt.Sprintf(
				"  - go heap faster: %d (%.1f%%)\n",
				heapFaster,
				float64(heapFaster)/float64(comparableCount)*100,
			),
		)
		sb.WriteString(fmt.Sprintf("  - Average speedup: **%.2fx**\n", avgSpeedup))
	}
	sb.WriteString(fmt.Sprintf("- **Arena-only loops**: %d\n", arenaOnly))
	sb.WriteString("\n")

	// Detailed results table
	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString(
		"| Operation | Variant | Payload | arena (ns/op) | go heap (ns/op) | Speedup | Memory (B/op) | Allocs |\n",
	)
	sb.WriteString(
		"|-----------|---------|---------|---------------|-----------------|---------|---------------|--------|\n",
	)

	for _, comp := range comparisons {
		payload := comp.Payload
		if payload == "" {
			payload = "-"
		}

		if comp.ArenaOnly {
			// Whole-loop benchmark
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | *N/A* | *arena only* | %s | %s |\n",
				comp.Operation,
				comp.Variant,
				payload,
				formatNumber(comp.ArenaNs),
				formatBytes(comp.ArenaMem),
				formatNumber(float64(comp.ArenaAllocs)),
			))
		} else {
			// Comparison benchmark
			indicator := "✓"
			speedupStyle := "**"
			if comp.Speedup < 1.0 {
				indicator = "✗"
				speedupStyle = ""
			}

			memIndicator := ""
			if comp.ArenaMem < comp.HeapMem {
				memIndicator = " ✓"
			} else if comp.ArenaMem > comp.HeapMem {
				memIndicator = " ✗"
			}

			allocIndicator := ""
			if comp.ArenaAllocs < comp.HeapAllocs {
				allocIndicator = " ✓"
			} else if comp.ArenaAllocs > comp.HeapAllocs {
				allocIndicator = " ✗"
			}

			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s%.2fx%s %s | %s vs %s%s | %s vs %s%s |\n",
				comp.Operation,
				comp.Variant,
				payload,
				formatNumber(comp.ArenaNs),
				formatNumber(comp.HeapNs),
				speedupStyle,
				comp.Speedup,
				speedupStyle,
				indicator,
				formatBytes(comp.ArenaMem),
				formatBytes(comp.HeapMem),
				memIndicator,
				formatNumber(float64(comp.ArenaAllocs)),
				formatNumber(float64(comp.HeapAllocs)),
				allocIndicator,
			))
		}
	}

	sb.WriteString("\n")

	// Category summaries
	sb.WriteString("## Performance by Category\n\n")

	categories := categorizeOperations(comparisons)
	for _, category := range categoryOrder {
		comps := categories[category]
		if len(comps) == 0 {
			continue
		}

		avgSpeed := 0.0
		count := 0
		for _, comp := range comps {
			if !comp.ArenaOnly {
				avgSpeed += comp.Speedup
				count++
			}
		}

		if count > 0 {
			avgSpeed /= float64(count)
			status := "✓"
			if avgSpeed < 1.0 {
				status = "✗"
			}
			sb.WriteString(fmt.Sprintf("- %s **%s**: %.2fx average speedup %s\n",
				status, category, avgSpeed, status))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s**: no heap baseline\n", category))
		}
	}

	sb.WriteString("\n")

	// Notes
	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **Speedup > 1.0**: the arena variant is faster ✓\n")
	sb.WriteString("- **Speedup < 1.0**: the Go heap is faster ✗\n")
	sb.WriteString("- **Memory comparison**: Lower is better\n")
	sb.WriteString("- **Allocations**: Fewer is better\n")
	sb.WriteString("- **Arena-only**: whole-loop benchmarks with no heap counterpart\n")

	return sb.String()
}

var categoryOrder = []string{
	"Raw Allocation",
	"Memory Backing",
	"Object Churn",
	"Whole Loops",
}

func categorizeOperations(comparisons []ComparisonResult) map[string][]ComparisonResult {
	categories := map[string][]ComparisonResult{
		"Raw Allocation": {},
		"Memory Backing": {},
		"Object Churn":   {},
		"Whole Loops":    {},
	}

	for _, comp := range comparisons {
		op := strings.ToLower(comp.Operation)

		switch {
		case comp.ArenaOnly:
			categories["Whole Loops"] = append(categories["Whole Loops"], comp)
		case strings.Contains(op, "backing") || strings.Contains(op, "mapped"):
			categories["Memory Backing"] = append(categories["Memory Backing"], comp)
		case strings.Contains(op, "churn") || strings.Contains(op, "pool"):
			categories["Object Churn"] = append(categories["Object Churn"], comp)
		default:
			categories["Raw Allocation"] = append(categories["Raw Allocation"], comp)
		}
	}

	return categories
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
