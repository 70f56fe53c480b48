// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

// Driver builds session clients. Implementations register themselves from
// an init function with [RegisterDriver].
type Driver interface {
	NewClient(account models.Account) (RemoteSessionClient, error)
}

// DriverFunc adapts a function to [Driver].
type DriverFunc func(account models.Account) (RemoteSessionClient, error)

func (f DriverFunc) NewClient(account models.Account) (RemoteSessionClient, error) {
	return f(account)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// RegisterDriver makes a driver available under name. It panics if driver
// is nil or the name is taken.
func RegisterDriver(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("session: RegisterDriver driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("session: RegisterDriver called twice for driver " + name)
	}
	drivers[name] = driver
}

// Open returns the driver registered under name.
func Open(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	driver, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownDriver, name)
	}
	return driver, nil
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
