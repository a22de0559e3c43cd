package bulk

import (
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// Manager bundles the four write executors over one shared
// dialect-matched SQL builder and its statement cache.
type Manager struct {
	inserter *Inserter
	updater  *Updater
	upserter *Upserter
	deleter  *Deleter
}

// New constructs a Manager for the collaborator's dialect. An
// unrecognized dialect is a configuration error here, not a per-call
// error.
func New(exec Executor, cfg Config) (*Manager, error) {
	cfg = cfg.withDefaults()
	builder, err := sqlbuilder.New(exec.Dialect(), cfg.FieldNames)
	if err != nil {
		return nil, err
	}
	return &Manager{
		inserter: NewInserter(exec, builder, cfg),
		updater:  NewUpdater(exec, builder, cfg),
		upserter: NewUpserter(exec, builder, cfg),
		deleter:  NewDeleter(exec, builder, cfg),
	}, nil
}

// Inserter returns the bulk inserter.
func (m *Manager) Inserter() *Inserter { return m.inserter }

// Updater returns the bulk updater.
func (m *Manager) Updater() *Updater { return m.updater }

// Upserter returns the bulk upserter.
func (m *Manager) Upserter() *Upserter { return m.upserter }

// Deleter returns the bulk deleter.
func (m *Manager) Deleter() *Deleter { return m.deleter }
