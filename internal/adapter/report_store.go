package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/coverprobe/internal/model"
)

const reportExt = ".yaml"

// ReportStore persists and retrieves execution reports.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.Report) error
	LoadReports(dir m.Path) ([]m.Report, error)
}

// LocalReportStore writes one YAML file per report, named by a hash of its
// content, so identical reports share a file.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

// SaveReports writes reports into dir, creating it if needed.
func (rs *LocalReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports dir: %w", err)
	}

	for _, report := range reports {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}

		name := rs.computeReportHash(data) + reportExt
		if err := os.WriteFile(filepath.Join(string(dir), name), data, 0o600); err != nil {
			return fmt.Errorf("failed to write report %s: %w", name, err)
		}
	}

	return nil
}

// LoadReports reads every report in dir, ordered by program and input. A
// missing directory holds no reports.
func (rs *LocalReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	entries, err := os.ReadDir(string(dir))
	if os.IsNotExist(err) {
		return []m.Report{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]m.Report, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != reportExt {
			continue
		}

		data, err := os.ReadFile(filepath.Join(string(dir), entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", entry.Name(), err)
		}

		var report m.Report
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", entry.Name(), err)
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Program != reports[j].Program {
			return reports[i].Program < reports[j].Program
		}

		return strings.Join(reports[i].Input, ",") < strings.Join(reports[j].Input, ",")
	})

	return reports, nil
}

// computeReportHash returns the first 16 hex digits of the SHA-256 of data.
func (rs *LocalReportStore) computeReportHash(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])[:16]
}
