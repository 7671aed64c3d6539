// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of the use case and resource packages
// for a given cars repository.
package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/car-catalog/pkg/core/repo"
	"github.com/momeni/car-catalog/pkg/core/usecase/inventoryuc"
)

// Register instantiates the inventory use case for the c cars
// repository (which may be any storage backend) and registers the
// cars resource under the basePath prefix of the e engine. It also
// registers the GET /healthz endpoint at the root. Each use case
// package is named like inventoryuc and each resource package is named
// like carsrs.
func Register(e *gin.Engine, c repo.Cars, basePath string) error {
	inv, err := inventoryuc.New(c)
	if err != nil {
		return fmt.Errorf("creating inventory use case: %w", err)
	}
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if basePath == "" {
		basePath = "/"
	}
	carsrs.Register(e.Group(basePath), inv)
	return nil
}
