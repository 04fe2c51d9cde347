package frontend

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
)

// DriverAdapter is the common base every concrete driver (embedded,
// network) embeds, supplying driver.Driver methods neither subtype
// needs to customize.
type DriverAdapter struct {
}

var ErrNotImplemented = errors.New("operation not implemented")

func (d *DriverAdapter) Open(name string) (driver.Conn, error) {
	return nil, ErrNotImplemented
}

func (d *DriverAdapter) AcceptsURL(url string) (bool, error) {
	return false, ErrNotImplemented
}

func (d *DriverAdapter) GetMajorVersion() int {
	return 0
}

func (d *DriverAdapter) GetMinorVersion() int {
	return 0
}

func (d *DriverAdapter) GetPropertyInfo(url string, info map[string]string) ([]interface{}, error) {
	return nil, nil
}

func (d *DriverAdapter) GetParentLogger() (*log.Logger, error) {
	return nil, ErrNotImplemented
}

// Register adds drv to the database/sql package's driver registry
// under name.
func Register(name string, drv driver.Driver) {
	sql.Register(name, drv)
}
