package db

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/zulandar/kitlog/internal/config"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL DSN. An empty database selects no schema, which is
// what CreateDatabase needs.
func DSN(c config.MySQLConfig, database string) string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = database
	mc.ParseTime = true
	return mc.FormatDSN()
}

// Connect opens a GORM connection for the configured SQL driver.
func Connect(sc config.StorageConfig) (*gorm.DB, error) {
	switch sc.Driver {
	case config.DriverSQLite:
		return ConnectSQLite(sc.Path)
	case config.DriverMySQL:
		return ConnectMySQL(sc.MySQL)
	default:
		return nil, fmt.Errorf("db: driver %q is not a SQL driver", sc.Driver)
	}
}

// ConnectSQLite opens (creating if needed) the SQLite database at path.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("db: create directory for %s: %w", path, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open sqlite %s: %w", path, err)
	}
	return db, nil
}

// ConnectMySQL makes sure the configured database exists, then connects to it.
func ConnectMySQL(c config.MySQLConfig) (*gorm.DB, error) {
	adminDB, err := ConnectAdmin(c)
	if err != nil {
		return nil, err
	}
	if err := CreateDatabase(adminDB, c.Database); err != nil {
		return nil, err
	}
	if sqlDB, err := adminDB.DB(); err == nil {
		sqlDB.Close()
	}

	db, err := gorm.Open(gormmysql.Open(DSN(c, c.Database)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", c.Host, c.Port, c.Database, err)
	}
	return db, nil
}

// ConnectAdmin opens a GORM connection to the MySQL server without selecting
// a specific database, used for CREATE DATABASE operations.
func ConnectAdmin(c config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(DSN(c, "")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: admin connect to %s:%d: %w", c.Host, c.Port, err)
	}
	return db, nil
}

// CreateDatabase creates the named database if it doesn't already exist.
func CreateDatabase(adminDB *gorm.DB, name string) error {
	sql := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)
	if err := adminDB.Exec(sql).Error; err != nil {
		return fmt.Errorf("db: create database %s: %w", name, err)
	}
	return nil
}
