// Package storage provides the backends that persist the build collection.
package storage

import (
	"fmt"

	"github.com/zulandar/kitlog/internal/config"
	"github.com/zulandar/kitlog/internal/db"
	"github.com/zulandar/kitlog/internal/tracker"
)

// Open returns the persister selected by the storage driver.
func Open(sc config.StorageConfig) (tracker.Persister, error) {
	switch sc.Driver {
	case config.DriverFile, "":
		return NewFileSlot(sc.Dir, sc.Slot), nil
	case config.DriverSQLite, config.DriverMySQL:
		gormDB, err := db.Connect(sc)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		return NewSQL(gormDB)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", sc.Driver)
	}
}
