// README: Smoke-check cases; registers a throwaway user and walks the ride, stats and settings endpoints.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client

	// set by the register case, consumed by everything after it
	token  string
	rideID string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

var requiredTables = []string{"users", "settings", "rides"}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Schema: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				for _, t := range requiredTables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.doJSON(ctx, http.MethodGet, base+"/api/health", nil, "")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Auth: rides without token -> 401",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, err := r.doJSON(ctx, http.MethodGet, base+"/api/rides", nil, "")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusUnauthorized {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Auth: register throwaway user",
			Run: func(ctx context.Context, r *Runner) Result {
				email := fmt.Sprintf("smoke-%d@example.com", time.Now().UnixNano())
				status, body, err := r.doJSON(ctx, http.MethodPost, base+"/api/auth/register", map[string]any{
					"email":    email,
					"password": "smoke-check-pass",
					"name":     "Smoke Check",
				}, "")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusCreated {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				var resp struct {
					Token string `json:"access_token"`
				}
				if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
					return Result{Status: "FAIL", Note: "no access_token in response"}
				}
				r.token = resp.Token
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Settings: defaults present after register",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.token == "" {
					return Result{Status: "SKIP", Note: "no token"}
				}
				status, body, err := r.doJSON(ctx, http.MethodGet, base+"/api/settings", nil, r.token)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				var p struct {
					BaseRate float64 `json:"base_rate"`
				}
				if err := json.Unmarshal(body, &p); err != nil || p.BaseRate == 0 {
					return Result{Status: "FAIL", Note: "no base_rate in settings"}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Rides: create computes pay",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.token == "" {
					return Result{Status: "SKIP", Note: "no token"}
				}
				start := time.Now()
				status, body, err := r.doJSON(ctx, http.MethodPost, base+"/api/rides", map[string]any{
					"date":        "2024-01-15",
					"client_name": "Smoke Client",
					"car_brand":   "Mercedes",
					"car_model":   "S-Class",
					"start_time":  "08:00",
					"end_time":    "17:00",
					"extra_costs": 10.0,
					"wwv_km":      45.0,
				}, r.token)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusCreated {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				var ride struct {
					ID       string  `json:"id"`
					GrossPay float64 `json:"gross_pay"`
					NetPay   float64 `json:"net_pay"`
				}
				if err := json.Unmarshal(body, &ride); err != nil || ride.ID == "" {
					return Result{Status: "FAIL", Note: "no ride id in response"}
				}
				if math.Abs(ride.GrossPay-115.47) > 0.001 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("gross_pay=%v want 115.47", ride.GrossPay)}
				}
				r.rideID = ride.ID
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Rides: invalid time -> 400",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.token == "" {
					return Result{Status: "SKIP", Note: "no token"}
				}
				status, _, err := r.doJSON(ctx, http.MethodPost, base+"/api/rides", map[string]any{
					"date":       "2024-01-15",
					"start_time": "8 uur",
					"end_time":   "17:00",
				}, r.token)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Stats: report reflects created ride",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.token == "" {
					return Result{Status: "SKIP", Note: "no token"}
				}
				start := time.Now()
				status, body, err := r.doJSON(ctx, http.MethodGet, base+"/api/stats", nil, r.token)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				var rep struct {
					TotalRides int `json:"total_rides"`
				}
				if err := json.Unmarshal(body, &rep); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if rep.TotalRides < 1 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("total_rides=%d", rep.TotalRides)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Export: xlsx download",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.token == "" {
					return Result{Status: "SKIP", Note: "no token"}
				}
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/export/rides", nil)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				req.Header.Set("Authorization", "Bearer "+r.token)
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer resp.Body.Close()
				_, _ = io.Copy(io.Discard, resp.Body)
				if resp.StatusCode != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", resp.StatusCode)}
				}
				ct := resp.Header.Get("Content-Type")
				if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
					return Result{Status: "FAIL", Note: "content-type=" + ct}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Rides: delete cleans up",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.token == "" || r.rideID == "" {
					return Result{Status: "SKIP", Note: "no ride created"}
				}
				status, _, err := r.doJSON(ctx, http.MethodDelete, base+"/api/rides/"+r.rideID, nil, r.token)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Perf: stats under load",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.token == "" {
					return Result{Status: "SKIP", Note: "no token"}
				}
				return perfLoad(ctx, r, base+"/api/stats")
			},
		},
	}
}

func (r *Runner) doJSON(ctx context.Context, method, url string, payload any, token string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, b, nil
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				req.Header.Set("Authorization", "Bearer "+r.token)
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}
