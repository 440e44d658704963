package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	csvPath     = flag.String("csv", "", "Path to the source CSV (required)")
	dsn         = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun      = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
	confirm     = flag.Bool("confirm", false, "Required to write to the database")
	advisoryKey = flag.Int64("advisory-lock", 0, "Optional Postgres advisory lock key (e.g., 424242). 0 = disabled")
)

// CSV contract
// sequence_id,title,description,problem_short,problem_long,category,priority,timeline,key_points
// key_points are semicolon-separated; sequence_id is the stable manifesto number
// and drives the upsert, so re-running the import updates rows in place.

type AgendaCSV struct {
	SequenceID   int
	Title        string
	Description  string
	ProblemShort string
	ProblemLong  string
	Category     string
	Priority     string
	Timeline     string
	KeyPoints    []string
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *csvPath == "" {
		fatalf("--csv is required")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	rows, err := loadCSV(*csvPath)
	if err != nil {
		fatalf("CSV error: %v", err)
	}

	if err := validateRows(rows); err != nil {
		fatalf("CSV validation failed: %v", err)
	}

	fmt.Printf("Loaded %d agendas from %s\n", len(rows), *csvPath)

	if *dryRun {
		printPlan(rows)
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	// Optional advisory lock to avoid concurrent runs
	if *advisoryKey != 0 {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, *advisoryKey); err != nil {
			fatalf("advisory lock: %v", err)
		}
	}

	before, err := countAgendas(ctx, tx)
	if err != nil {
		fatalf("pre-count: %v", err)
	}
	fmt.Printf("Before: agendas=%d\n", before)

	inserted, updated, err := upsertAll(ctx, tx, rows)
	if err != nil {
		fatalf("upsert data: %v", err)
	}

	after, err := countAgendas(ctx, tx)
	if err != nil {
		fatalf("post-count: %v", err)
	}
	fmt.Printf("After:  agendas=%d (inserted=%d updated=%d)\n", after, inserted, updated)

	// sanity: every source row landed somewhere
	if inserted+updated != len(rows) {
		fatalf("sanity check failed: inserted=%d updated=%d rows=%d", inserted, updated, len(rows))
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}
	fmt.Println("Import complete ✅")
}

func loadCSV(path string) ([]AgendaCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	r := csv.NewReader(br)
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	required := []string{"sequence_id", "title", "description", "category"}
	for _, k := range required {
		if _, ok := idx[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	// Optional columns fall back to zero values when absent
	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []AgendaCSV
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}

		seq, err := strconv.Atoi(field(rec, "sequence_id"))
		if err != nil {
			return nil, fmt.Errorf("bad sequence_id '%s': %w", field(rec, "sequence_id"), err)
		}

		row := AgendaCSV{
			SequenceID:   seq,
			Title:        field(rec, "title"),
			Description:  field(rec, "description"),
			ProblemShort: field(rec, "problem_short"),
			ProblemLong:  field(rec, "problem_long"),
			Category:     field(rec, "category"),
			Priority:     field(rec, "priority"),
			Timeline:     field(rec, "timeline"),
		}
		if row.Priority == "" {
			row.Priority = "Medium"
		}

		points := field(rec, "key_points")
		if points != "" {
			for _, p := range strings.Split(points, ";") {
				if kp := strings.TrimSpace(p); kp != "" {
					row.KeyPoints = append(row.KeyPoints, kp)
				}
			}
		}

		out = append(out, row)
	}
	return out, nil
}

func validateRows(rows []AgendaCSV) error {
	if len(rows) == 0 {
		return fmt.Errorf("CSV has no data rows")
	}
	seen := make(map[int]struct{}, len(rows))
	for i, r := range rows {
		if r.SequenceID <= 0 {
			return fmt.Errorf("row %d: sequence_id must be positive", i+2)
		}
		if r.Title == "" {
			return fmt.Errorf("row %d: title is empty", i+2)
		}
		if r.Description == "" {
			return fmt.Errorf("row %d: description is empty", i+2)
		}
		if r.Category == "" {
			return fmt.Errorf("row %d: category is empty", i+2)
		}
		switch r.Priority {
		case "Low", "Medium", "High":
		default:
			return fmt.Errorf("row %d: priority must be Low, Medium or High, got '%s'", i+2, r.Priority)
		}
		if _, dup := seen[r.SequenceID]; dup {
			return fmt.Errorf("row %d: duplicate sequence_id %d", i+2, r.SequenceID)
		}
		seen[r.SequenceID] = struct{}{}
	}
	return nil
}

func printPlan(rows []AgendaCSV) {
	cats := map[string]struct{}{}
	for _, r := range rows {
		cats[r.Category] = struct{}{}
	}
	fmt.Println("Plan preview:")
	fmt.Printf("  Agendas to upsert: %d\n", len(rows))
	fmt.Printf("  Distinct categories: %d\n", len(cats))
	fmt.Println("  Tables affected (non-destructive upsert): catalog.agendas")
}

func countAgendas(ctx context.Context, tx *sql.Tx) (int64, error) {
	var n int64
	err := tx.QueryRowContext(ctx, `SELECT count(*) FROM catalog.agendas`).Scan(&n)
	return n, err
}

func upsertAll(ctx context.Context, tx *sql.Tx, rows []AgendaCSV) (inserted, updated int, err error) {
	// Upsert on sequence_id keeps the row's uuid stable, so existing votes
	// and suggestions keep pointing at the same agenda after a re-import.
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog.agendas
			(id, sequence_id, title, description, problem_short, problem_long,
			 category, priority, timeline, key_points, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
		ON CONFLICT (sequence_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			problem_short = EXCLUDED.problem_short,
			problem_long = EXCLUDED.problem_long,
			category = EXCLUDED.category,
			priority = EXCLUDED.priority,
			timeline = EXCLUDED.timeline,
			key_points = EXCLUDED.key_points,
			updated_at = now()
		RETURNING (xmax = 0)`)
	if err != nil {
		return 0, 0, err
	}
	defer stmt.Close()

	for _, r := range rows {
		var isInsert bool
		err := stmt.QueryRowContext(ctx, uuid.New(), r.SequenceID, r.Title, r.Description,
			r.ProblemShort, r.ProblemLong, r.Category, r.Priority, r.Timeline, r.KeyPoints).Scan(&isInsert)
		if err != nil {
			return 0, 0, fmt.Errorf("upsert agenda %d '%s': %w", r.SequenceID, r.Title, err)
		}
		if isInsert {
			inserted++
		} else {
			updated++
		}
	}
	return inserted, updated, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
