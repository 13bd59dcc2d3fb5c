package team

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// CSVHeader is the first row of the formed-teams export.
var CSVHeader = []string{"teamId", "memberId", "name", "role", "personalityType", "activity"}

// WriteCSV writes one row per member, grouped by team in slice order.
func WriteCSV(w io.Writer, teams []*Team) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range teams {
		id := strconv.Itoa(t.ID)
		for _, m := range t.members {
			row := []string{id, m.ID, m.Name, string(m.Role), string(m.Personality()), string(m.Activity)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write team %d member %s: %w", t.ID, m.ID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the teams export to path, replacing any previous file.
func SaveCSV(path string, teams []*Team) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, teams)
	})
}

// Report is the YAML summary of one formation run.
type Report struct {
	RunID           string       `yaml:"run_id"`
	CreatedAt       time.Time    `yaml:"created_at"`
	Seed            uint64       `yaml:"seed"`
	TeamSize        int          `yaml:"team_size"`
	Participants    int          `yaml:"participants"`
	InitialVariance float64      `yaml:"initial_variance"`
	FinalVariance   float64      `yaml:"final_variance"`
	Iterations      int          `yaml:"iterations"`
	Swaps           int          `yaml:"swaps"`
	Exhausted       bool         `yaml:"exhausted"`
	Teams           []ReportTeam `yaml:"teams"`
}

type ReportTeam struct {
	ID           int            `yaml:"id"`
	AverageSkill float64        `yaml:"average_skill"`
	Roles        int            `yaml:"distinct_roles"`
	Members      []ReportMember `yaml:"members"`
}

type ReportMember struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Activity    string `yaml:"activity"`
	Skill       int    `yaml:"skill"`
	Role        string `yaml:"role"`
	Personality string `yaml:"personality"`
}

// Summarize fills r.Teams from teams.
func (r *Report) Summarize(teams []*Team) {
	r.Teams = make([]ReportTeam, 0, len(teams))
	for _, t := range teams {
		rt := ReportTeam{
			ID:           t.ID,
			AverageSkill: t.AverageSkill(),
			Roles:        t.DistinctRoleCount(),
		}
		for _, m := range t.members {
			rt.Members = append(rt.Members, ReportMember{
				ID:          m.ID,
				Name:        m.Name,
				Activity:    string(m.Activity),
				Skill:       m.Skill,
				Role:        string(m.Role),
				Personality: string(m.Personality()),
			})
		}
		r.Teams = append(r.Teams, rt)
	}
}

func WriteReport(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

func SaveReport(path string, r Report) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteReport(w, r)
	})
}

// LoadReport reads a report written by SaveReport.
func LoadReport(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("read report: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("unmarshal report: %w", err)
	}
	return r, nil
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename output file: %w", err)
	}
	return nil
}
