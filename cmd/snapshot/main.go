// Snapshot compiles a zengin-code dataset into a snapshot file, or verifies
// an existing snapshot and prints its contents summary.
//
// Usage:
//
//	go run ./cmd/snapshot -out zengin.snap
//	go run ./cmd/snapshot -dir ./zengin-code/data -workers 8 -out zengin.snap
//	go run ./cmd/snapshot -verify zengin.snap
//
// Flags:
//
//	-dir      Dataset directory in zengin-code layout (default: bundled dataset)
//	-workers  Number of branch files read concurrently (default: 1)
//	-out      Snapshot file to write
//	-verify   Snapshot file to open and check
//	-compare  With -verify, also load -dir (or the bundled dataset) and compare fingerprints
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tamirms/zengin"
)

func main() {
	dirFlag := flag.String("dir", "", "dataset directory (default: bundled dataset)")
	workersFlag := flag.Int("workers", 1, "number of branch files read concurrently")
	outFlag := flag.String("out", "", "snapshot file to write")
	verifyFlag := flag.String("verify", "", "snapshot file to verify")
	compareFlag := flag.Bool("compare", false, "with -verify, compare against the dataset")
	flag.Parse()

	switch {
	case *verifyFlag != "":
		if err := verify(*verifyFlag, *dirFlag, *workersFlag, *compareFlag); err != nil {
			fmt.Fprintf(os.Stderr, "verify: %v\n", err)
			os.Exit(1)
		}
	case *outFlag != "":
		if err := compile(*dirFlag, *workersFlag, *outFlag); err != nil {
			fmt.Fprintf(os.Stderr, "compile: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func load(dir string, workers int) (*zengin.Zengin, error) {
	if dir == "" {
		return zengin.New(zengin.WithWorkers(workers))
	}
	return zengin.NewFromDir(dir, zengin.WithWorkers(workers))
}

func compile(dir string, workers int, out string) error {
	start := time.Now()
	z, err := load(dir, workers)
	if err != nil {
		return err
	}
	loadDuration := time.Since(start)

	start = time.Now()
	if err := z.WriteSnapshotFile(out); err != nil {
		return err
	}
	writeDuration := time.Since(start)

	info, err := os.Stat(out)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	fmt.Printf("  Banks:       %d\n", z.NumBanks())
	fmt.Printf("  Branches:    %d\n", z.NumBranches())
	fmt.Printf("  Fingerprint: %s\n", z.Fingerprint())
	fmt.Printf("  Size:        %d bytes\n", info.Size())
	fmt.Printf("  Load:        %v\n", loadDuration)
	fmt.Printf("  Write:       %v\n", writeDuration)
	return nil
}

func verify(path, dir string, workers int, compare bool) error {
	start := time.Now()
	z, err := zengin.OpenSnapshot(path)
	if err != nil {
		return err
	}
	openDuration := time.Since(start)

	fmt.Printf("OK %s\n", path)
	fmt.Printf("  Banks:       %d\n", z.NumBanks())
	fmt.Printf("  Branches:    %d\n", z.NumBranches())
	fmt.Printf("  Fingerprint: %s\n", z.Fingerprint())
	fmt.Printf("  Open:        %v\n", openDuration)

	if !compare {
		return nil
	}
	want, err := load(dir, workers)
	if err != nil {
		return err
	}
	if want.Fingerprint() != z.Fingerprint() {
		return fmt.Errorf("snapshot fingerprint %s does not match dataset fingerprint %s",
			z.Fingerprint(), want.Fingerprint())
	}
	fmt.Println("  Matches dataset")
	return nil
}
