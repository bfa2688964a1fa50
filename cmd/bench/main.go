// Bench is a benchmarking tool for measuring zengin load time, lookup and
// search throughput, and memory usage.
//
// Usage:
//
//	go run ./cmd/bench -queries 1000000
//	go run ./cmd/bench -dir ./zengin-code/data -workers 8
//
// Flags:
//
//	-dir         Dataset directory in zengin-code layout (default: bundled dataset)
//	-workers     Number of branch files read concurrently (default: 1)
//	-queries     Number of code lookups to time (default: 1,000,000)
//	-searches    Number of regex searches to time (default: 10,000)
//	-pattern     Pattern used for search timing (default: 東京)
//	-cpuprofile  Write a CPU profile of the query phase to file
package main

import (
	"flag"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/tamirms/zengin"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

type codePair struct {
	bank, branch string
}

func main() {
	dirFlag := flag.String("dir", "", "dataset directory (default: bundled dataset)")
	workersFlag := flag.Int("workers", 1, "number of branch files read concurrently")
	queriesFlag := flag.Int("queries", 1_000_000, "number of code lookups")
	searchesFlag := flag.Int("searches", 10_000, "number of regex searches")
	patternFlag := flag.String("pattern", "東京", "search pattern")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (query phase only)")
	flag.Parse()

	runtime.GC()
	var baseline runtime.MemStats
	runtime.ReadMemStats(&baseline)
	baselineRSS := getMaxRSS()

	fmt.Println("Loading dataset...")
	opts := []zengin.Option{zengin.WithWorkers(*workersFlag)}
	loadStart := time.Now()
	var (
		z   *zengin.Zengin
		err error
	)
	if *dirFlag == "" {
		z, err = zengin.New(opts...)
	} else {
		z, err = zengin.NewFromDir(*dirFlag, opts...)
	}
	loadDuration := time.Since(loadStart)
	if err != nil {
		fmt.Printf("Load failed: %v\n", err)
		os.Exit(1)
	}

	runtime.GC()
	var loaded runtime.MemStats
	runtime.ReadMemStats(&loaded)

	fmt.Println("Round-tripping snapshot...")
	tmp, err := os.CreateTemp("", "zengin-bench-*.snap")
	if err != nil {
		fmt.Printf("Failed to create temp file: %v\n", err)
		os.Exit(1)
	}
	snapPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(snapPath) }()

	writeStart := time.Now()
	if err := z.WriteSnapshotFile(snapPath); err != nil {
		fmt.Printf("WriteSnapshotFile failed: %v\n", err)
		return
	}
	writeDuration := time.Since(writeStart)

	openStart := time.Now()
	snap, err := zengin.OpenSnapshot(snapPath)
	openDuration := time.Since(openStart)
	if err != nil {
		fmt.Printf("OpenSnapshot failed: %v\n", err)
		return
	}
	if snap.Fingerprint() != z.Fingerprint() {
		fmt.Printf("Fingerprint mismatch: %s vs %s\n", snap.Fingerprint(), z.Fingerprint())
		return
	}
	info, _ := os.Stat(snapPath)

	var pairs []codePair
	for _, b := range z.Banks() {
		for _, br := range b.Branches() {
			pairs = append(pairs, codePair{b.Code, br.Code})
		}
	}
	if len(pairs) == 0 {
		fmt.Println("Dataset has no branches; nothing to benchmark")
		return
	}
	order := mrand.Perm(len(pairs))

	fmt.Println("Hashing codes...")
	hashStart := time.Now()
	seed := uint32(0x1234)
	for i := 0; i < *queriesFlag; i++ {
		p := pairs[order[i%len(pairs)]]
		murmur3.Sum128WithSeed([]byte(p.bank+p.branch), seed)
	}
	hashDuration := time.Since(hashStart)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			return
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			return
		}
	}

	fmt.Println("Benchmarking lookups...")
	misses := 0
	lookupStart := time.Now()
	for i := 0; i < *queriesFlag; i++ {
		p := pairs[order[i%len(pairs)]]
		if _, ok := z.Branch(p.bank, p.branch); !ok {
			misses++
		}
	}
	lookupDuration := time.Since(lookupStart)
	if misses > 0 {
		fmt.Printf("%d lookups missed\n", misses)
	}

	fmt.Println("Benchmarking searches...")
	banks := z.Banks()
	matches := 0
	searchStart := time.Now()
	for i := 0; i < *searchesFlag; i++ {
		found, err := z.FindBranchesByName(banks[i%len(banks)].Code, *patternFlag)
		if err != nil {
			fmt.Printf("Search failed: %v\n", err)
			return
		}
		matches += len(found)
	}
	searchDuration := time.Since(searchStart)

	if *cpuprofile != "" {
		pprof.StopCPUProfile()
	}

	lookupLatency := float64(lookupDuration.Nanoseconds()) / float64(*queriesFlag)
	hashLatency := float64(hashDuration.Nanoseconds()) / float64(*queriesFlag)
	searchLatency := float64(searchDuration.Nanoseconds()) / float64(*searchesFlag) / 1000
	heapMem := loaded.HeapAlloc - min(loaded.HeapAlloc, baseline.HeapAlloc)
	rssMem := getMaxRSS() - baselineRSS

	fmt.Printf("\n")
	fmt.Printf("╔═════════════════════╦════════════════════════════════════╗\n")
	fmt.Printf("║ Metric              ║ Value                              ║\n")
	fmt.Printf("╠═════════════════════╬════════════════════════════════════╣\n")
	fmt.Printf("║ Banks               ║ %-34d ║\n", z.NumBanks())
	fmt.Printf("║ Branches            ║ %-34d ║\n", z.NumBranches())
	fmt.Printf("║ Fingerprint         ║ %-34s ║\n", z.Fingerprint())
	fmt.Printf("║ Load time           ║ %8.2f ms                        ║\n", float64(loadDuration.Microseconds())/1000)
	fmt.Printf("║ Snapshot size       ║ %8.1f KB                        ║\n", float64(info.Size())/1000)
	fmt.Printf("║ Snapshot write      ║ %8.2f ms                        ║\n", float64(writeDuration.Microseconds())/1000)
	fmt.Printf("║ Snapshot open       ║ %8.2f ms                        ║\n", float64(openDuration.Microseconds())/1000)
	fmt.Printf("║ Lookup latency      ║ %8.1f ns                        ║\n", lookupLatency)
	fmt.Printf("║ murmur3 baseline    ║ %8.1f ns                        ║\n", hashLatency)
	fmt.Printf("║ Search latency      ║ %8.2f μs                        ║\n", searchLatency)
	fmt.Printf("║ Search matches      ║ %-34d ║\n", matches)
	fmt.Printf("║ Heap after load     ║ %8.1f MB                        ║\n", float64(heapMem)/1_000_000)
	fmt.Printf("║ Peak RSS growth     ║ %8.1f MB                        ║\n", float64(rssMem)/1_000_000)
	fmt.Printf("╚═════════════════════╩════════════════════════════════════╝\n")
}
