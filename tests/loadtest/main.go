package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL      string
	webhookPath  string
	numWorkers   int
	testDuration time.Duration
	numUsers     int
)

var queries = []string{"today", "week", "total", "stats", "daily", "history"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Drive a running hourbot with simulated webhook traffic",
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://127.0.0.1:5000", "bot base URL")
	cmd.Flags().StringVar(&webhookPath, "path", "/whatsapp", "webhook path")
	cmd.Flags().IntVarP(&numWorkers, "workers", "w", 20, "concurrent workers")
	cmd.Flags().DurationVarP(&testDuration, "duration", "t", 10*time.Second, "duration of each phase")
	cmd.Flags().IntVarP(&numUsers, "users", "u", 50, "distinct sender identities")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() {
	fmt.Println("=== hourbot Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Users: %d\n\n", numWorkers, testDuration, numUsers)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Logging hours (log N) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doLog(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (30% log, 70% queries) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.30 {
			return doLog(rng)
		}
		return doQuery(rng)
	})

	fmt.Println("\n--- Phase 3: Read-only (queries and /health) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.90 {
			return doQuery(rng)
		}
		return doHealth()
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	commands := make([]string, 0, len(allResults))
	for c := range allResults {
		commands = append(commands, c)
	}
	sort.Strings(commands)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Command", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, c := range commands {
		s := allResults[c]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			c, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func sender(rng *rand.Rand) string {
	return fmt.Sprintf("whatsapp:+1555%07d", rng.Intn(numUsers))
}

// sendMessage posts one inbound message the way the messaging provider does.
// A reply is only counted as successful when it carries a TwiML Message.
func sendMessage(label, from, body string) result {
	form := url.Values{"From": {from}, "Body": {body}}
	start := time.Now()
	resp, err := httpClient.PostForm(baseURL+webhookPath, form)
	lat := time.Since(start)
	if err != nil {
		return result{label, 0, lat, true}
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	failed := resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "<Message>")
	return result{label, resp.StatusCode, lat, failed}
}

func doLog(rng *rand.Rand) result {
	hours := float64(rng.Intn(16)+1) / 4
	return sendMessage("log", sender(rng), fmt.Sprintf("log %g", hours))
}

func doQuery(rng *rand.Rand) result {
	q := queries[rng.Intn(len(queries))]
	return sendMessage(q, sender(rng), q)
}

func doHealth() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/health")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /health", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /health", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
