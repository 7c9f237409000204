package export

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/warpdl/cookex/pkg/logger"
)

type stubSource struct {
	name    string
	records []Record
	err     error
	delay   time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Records(ctx context.Context) ([]Record, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.records, s.err
}

func rec(source, name string) Record {
	return Record{Source: source, Domain: ".example.com", Name: name, Path: "/", Expires: "Session"}
}

func TestRunner_PreservesSourceOrder(t *testing.T) {
	sources := []Source{
		&stubSource{name: "Chrome", records: []Record{rec("Chrome", "a"), rec("Chrome", "b")}},
		&stubSource{name: "Safari", records: []Record{rec("Safari", "c")}},
		&stubSource{name: "Firefox", records: []Record{rec("Firefox", "d")}},
	}
	want := []Record{rec("Chrome", "a"), rec("Chrome", "b"), rec("Safari", "c"), rec("Firefox", "d")}

	for _, parallel := range []bool{false, true} {
		r := &Runner{Parallel: parallel}
		got := r.Run(context.Background(), sources)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("parallel=%v: Run = %+v, want %+v", parallel, got, want)
		}
	}
}

func TestRunner_ParallelOrderWithSkew(t *testing.T) {
	// The first source finishes last; its records must still come first.
	sources := []Source{
		&stubSource{name: "Chrome", records: []Record{rec("Chrome", "a")}, delay: 50 * time.Millisecond},
		&stubSource{name: "Safari", records: []Record{rec("Safari", "b")}},
	}
	r := &Runner{Parallel: true}
	got := r.Run(context.Background(), sources)
	if len(got) != 2 || got[0].Source != "Chrome" || got[1].Source != "Safari" {
		t.Errorf("Run = %+v", got)
	}
}

func TestRunner_FailingSourceIsSkipped(t *testing.T) {
	log := logger.NewMockLogger()
	sources := []Source{
		&stubSource{name: "Chrome", err: errors.New("database is locked")},
		&stubSource{name: "Firefox", records: []Record{rec("Firefox", "a")}},
	}
	r := &Runner{Log: log}
	got := r.Run(context.Background(), sources)
	if len(got) != 1 || got[0].Source != "Firefox" {
		t.Errorf("Run = %+v", got)
	}
	if len(log.WarningCalls) != 1 || !strings.Contains(log.WarningCalls[0], "Chrome") {
		t.Errorf("WarningCalls = %v", log.WarningCalls)
	}
}

func TestRunner_NoDeduplication(t *testing.T) {
	same := rec("X", "sid")
	sources := []Source{
		&stubSource{name: "Chrome", records: []Record{same}},
		&stubSource{name: "Brave", records: []Record{same}},
	}
	got := (&Runner{}).Run(context.Background(), sources)
	if len(got) != 2 {
		t.Errorf("identical tuples from different browsers must both survive, got %d", len(got))
	}
}

func TestRunner_OnSourceDone(t *testing.T) {
	var mu sync.Mutex
	counts := map[string]int{}
	r := &Runner{
		OnSourceDone: func(name string, count int) {
			mu.Lock()
			counts[name] = count
			mu.Unlock()
		},
	}
	r.Run(context.Background(), []Source{
		&stubSource{name: "Chrome", records: []Record{rec("Chrome", "a")}},
		&stubSource{name: "Safari", err: errors.New("nope")},
	})
	if counts["Chrome"] != 1 || counts["Safari"] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{Source: "Chrome", Domain: ".example.com", Name: "sid", Value: "abc", Path: "/", Expires: "2025-07-24 22:56:20", Secure: true, HTTPOnly: true, SameSite: 1},
		{Source: "Safari", Domain: "quote\"domain", Name: "has,comma", Value: "", Path: "/", Expires: "Session"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "browser,domain,name,value,path,expires,secure,httponly,samesite\n" +
		"Chrome,.example.com,sid,abc,/,2025-07-24 22:56:20,true,true,1\n" +
		"Safari,\"quote\"\"domain\",\"has,comma\",,/,Session,false,false,0\n"
	if buf.String() != want {
		t.Errorf("WriteCSV output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteCSV_EmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(csvHeader, ",") {
		t.Errorf("header row = %q", got)
	}
}
