package records

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/estate/internal/jsonl"
	"github.com/mesh-intelligence/estate/pkg/types"
)

// ExportFile returns the JSONL file name Export writes for table.
func ExportFile(table string) string {
	return table + ".jsonl"
}

// Export writes one JSONL file per table into dir, records in ascending id
// order. Empty tables produce empty files. All tables are read under one
// lock so the files form a consistent snapshot.
func (s *Service) Export(ctx context.Context, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := exportTable(dir, types.PropertiesTable, s.store.Properties); err != nil {
		return err
	}
	if err := exportTable(dir, types.LeaseAgreementsTable, s.store.LeaseAgreements); err != nil {
		return err
	}
	if err := exportTable(dir, types.MaintenanceRequestsTable, s.store.MaintenanceRequests); err != nil {
		return err
	}
	s.entry(ctx).WithField("dir", dir).Info("exported tables")
	return nil
}

func exportTable[R any](dir, name string, acquire acquireFunc[R]) error {
	recs, err := list(acquire)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", name, err)
	}
	if err := jsonl.Write(filepath.Join(dir, ExportFile(name)), recs); err != nil {
		return fmt.Errorf("exporting %s: %w", name, err)
	}
	return nil
}
