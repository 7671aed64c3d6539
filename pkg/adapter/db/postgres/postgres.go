// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL connection pool, connection,
// and transaction types which are used by the PostgreSQL repositories,
// e.g., the carsrp package. The connections are managed by GORM with
// its pgx based postgres driver.
package postgres

import (
	"context"

	"gorm.io/gorm"
)

// ConnHandler is a function which uses a pooled connection. The
// connection is released after the handler returns.
type ConnHandler func(ctx context.Context, c *Conn) error

// TxHandler is a function which runs in a transaction. Returning an
// error (or panicking) rolls back the transaction.
type TxHandler func(ctx context.Context, tx *Tx) error

// Queryer is the type constraint of the repository functions which may
// run either on a connection or inside a transaction.
type Queryer interface {
	*Conn | *Tx

	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	GORM(ctx context.Context) *gorm.DB
}
