package participant

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Header is the first row of the participants CSV.
var Header = []string{"id", "name", "email", "activity", "skill", "role", "personalityScore", "personalityType"}

// Load reads participants from a CSV file. Rows that cannot be parsed are
// skipped with a warning and counted in skipped. A missing file yields an
// empty pool and no error.
func Load(path string) (participants []*Participant, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open participants file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses participants CSV data from r. The header row is skipped.
func Read(r io.Reader) ([]*Participant, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		participants []*Participant
		skipped      int
		line         int
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				slog.Warn("skipping unreadable participant row", "line", line, "error", err)
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("read participants: %w", err)
		}
		if line == 1 {
			continue
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		p, err := parseRecord(record)
		if err != nil {
			slog.Warn("skipping invalid participant row", "line", line, "row", strings.Join(record, ","), "error", err)
			skipped++
			continue
		}
		participants = append(participants, p)
	}
	return participants, skipped, nil
}

func parseRecord(record []string) (*Participant, error) {
	if len(record) != len(Header) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(Header), len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	id := record[0]
	if id == "" {
		return nil, errors.New("empty id")
	}
	activity, ok := ParseActivity(record[3])
	if !ok {
		return nil, fmt.Errorf("unknown activity %q", record[3])
	}
	skill, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, fmt.Errorf("skill: %w", err)
	}
	if err := ValidateSkill(skill); err != nil {
		return nil, err
	}
	role, ok := ParseRole(record[5])
	if !ok {
		return nil, fmt.Errorf("unknown role %q", record[5])
	}
	score, err := strconv.Atoi(record[6])
	if err != nil {
		return nil, fmt.Errorf("personality score: %w", err)
	}
	stored, ok := ParsePersonality(record[7])
	if !ok {
		return nil, fmt.Errorf("unknown personality type %q", record[7])
	}

	p := New(id, record[1], record[2], activity, skill, role, score)
	if stored != p.Personality() {
		slog.Warn("stored personality type disagrees with score, using score",
			"id", id, "stored", stored, "score", score, "derived", p.Personality())
	}
	return p, nil
}

// Write encodes participants, header first.
func Write(w io.Writer, participants []*Participant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range participants {
		if err := cw.Write(p.Record()); err != nil {
			return fmt.Errorf("write participant %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveAll atomically rewrites the participants file.
func SaveAll(path string, participants []*Participant) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create participants dir: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create participants temp file: %w", err)
	}
	if err := Write(f, participants); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close participants temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename participants file: %w", err)
	}
	return nil
}

// Append adds a single row to the participants file, writing the header
// first when the file does not exist yet.
func Append(path string, p *Participant) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create participants dir: %w", err)
	}

	writeHeader := false
	if info, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat participants file: %w", err)
		}
		writeHeader = true
	} else if info.Size() == 0 {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open participants file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := cw.Write(p.Record()); err != nil {
		return fmt.Errorf("append participant %s: %w", p.ID, err)
	}
	cw.Flush()
	return cw.Error()
}
