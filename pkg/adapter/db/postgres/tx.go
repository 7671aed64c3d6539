// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Tx represents a READ-COMMITTED database transaction which is started
// by the Conn.Tx method. It is unsafe to be used concurrently.
// Tx embeds the *gorm.DB, hence, may be used like GORM from within
// the repository packages.
type Tx struct {
	*gorm.DB
}

// Exec runs the sql statement with args and returns the number of
// affected rows. Parameters may be written as $1, ?, or @name.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tt := tx.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
