package records

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/estate/internal/jsonl"
	"github.com/mesh-intelligence/estate/pkg/types"
)

// ImportSummary counts the records Import stored per table.
type ImportSummary struct {
	Properties          int
	LeaseAgreements     int
	MaintenanceRequests int
}

// Import loads a directory written by Export into an empty store. Records
// keep their ids and created_at values, and the id counter moves past the
// largest imported id. Every file is read and checked before anything is
// stored; ids must be unique across all three tables.
func (s *Service) Import(ctx context.Context, dir string) (ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum ImportSummary
	props, err := readExport[types.Property](dir, types.PropertiesTable)
	if err != nil {
		return sum, err
	}
	leases, err := readExport[types.LeaseAgreement](dir, types.LeaseAgreementsTable)
	if err != nil {
		return sum, err
	}
	reqs, err := readExport[types.MaintenanceRequest](dir, types.MaintenanceRequestsTable)
	if err != nil {
		return sum, err
	}

	seen := make(map[uint64]string)
	if err := claimIDs(seen, types.PropertiesTable, props, func(r types.Property) uint64 { return r.ID }); err != nil {
		return sum, err
	}
	if err := claimIDs(seen, types.LeaseAgreementsTable, leases, func(r types.LeaseAgreement) uint64 { return r.ID }); err != nil {
		return sum, err
	}
	if err := claimIDs(seen, types.MaintenanceRequestsTable, reqs, func(r types.MaintenanceRequest) uint64 { return r.ID }); err != nil {
		return sum, err
	}

	if err := requireEmpty(types.PropertiesTable, s.store.Properties); err != nil {
		return sum, err
	}
	if err := requireEmpty(types.LeaseAgreementsTable, s.store.LeaseAgreements); err != nil {
		return sum, err
	}
	if err := requireEmpty(types.MaintenanceRequestsTable, s.store.MaintenanceRequests); err != nil {
		return sum, err
	}

	if err := storeAll(s.store.Properties, props, func(r types.Property) uint64 { return r.ID }); err != nil {
		return sum, err
	}
	sum.Properties = len(props)
	if err := storeAll(s.store.LeaseAgreements, leases, func(r types.LeaseAgreement) uint64 { return r.ID }); err != nil {
		return sum, err
	}
	sum.LeaseAgreements = len(leases)
	if err := storeAll(s.store.MaintenanceRequests, reqs, func(r types.MaintenanceRequest) uint64 { return r.ID }); err != nil {
		return sum, err
	}
	sum.MaintenanceRequests = len(reqs)

	if err := advanceCounter(s.store, seen); err != nil {
		return sum, err
	}
	s.entry(ctx).WithFields(logrus.Fields{
		"dir":                  dir,
		"properties":           sum.Properties,
		"lease_agreements":     sum.LeaseAgreements,
		"maintenance_requests": sum.MaintenanceRequests,
	}).Info("imported tables")
	return sum, nil
}

func readExport[R any](dir, name string) ([]R, error) {
	lines, err := jsonl.Read(filepath.Join(dir, ExportFile(name)))
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", name, err)
	}
	out := make([]R, 0, len(lines))
	for i, line := range lines {
		var r R
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("importing %s: record %d: %w", name, i+1, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// claimIDs adds the ids of recs to seen. The counter can never hand out
// MaxUint64, so an export holding it did not come from Export.
func claimIDs[R any](seen map[uint64]string, name string, recs []R, idOf func(R) uint64) error {
	for _, r := range recs {
		id := idOf(r)
		if id == math.MaxUint64 {
			return types.Validation(fmt.Sprintf("Import rejected: id %d in %s is out of range", id, name))
		}
		if prev, ok := seen[id]; ok {
			return types.Validation(fmt.Sprintf("Import rejected: id %d appears in %s and %s", id, prev, name))
		}
		seen[id] = name
	}
	return nil
}

func requireEmpty[R any](name string, acquire acquireFunc[R]) error {
	tbl, err := acquire()
	if err != nil {
		return err
	}
	n, err := tbl.Len()
	if err != nil {
		return fmt.Errorf("counting %s: %w", name, err)
	}
	if n > 0 {
		return types.Validation(fmt.Sprintf("Import requires an empty store; %s has %d record(s)", name, n))
	}
	return nil
}

func storeAll[R any](acquire acquireFunc[R], recs []R, idOf func(R) uint64) error {
	tbl, err := acquire()
	if err != nil {
		return err
	}
	for _, r := range recs {
		id := idOf(r)
		if err := tbl.Insert(id, r); err != nil {
			return fmt.Errorf("importing id %d: %w", id, err)
		}
	}
	return nil
}

// advanceCounter moves the id counter past every id in seen. It never moves
// the counter backwards.
func advanceCounter(store types.Store, seen map[uint64]string) error {
	if len(seen) == 0 {
		return nil
	}
	var next uint64
	for id := range seen {
		next = max(next, id+1)
	}
	c, err := store.Counter()
	if err != nil {
		return err
	}
	cur, err := c.Get()
	if err != nil {
		return fmt.Errorf("reading id counter: %w", err)
	}
	if next <= cur {
		return nil
	}
	if err := c.Set(next); err != nil {
		return fmt.Errorf("advancing id counter: %w", err)
	}
	return nil
}
