// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// manipulation REST APIs to be accepted and delegated to the
// inventory use case respectively.
package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-catalog/pkg/adapter/restful/cardto"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-catalog/pkg/core/usecase/inventoryuc"
)

type resource struct {
	inv *inventoryuc.UseCase
}

// Register instantiates a resource adapting the inventory use case
// instance with the relevant REST APIs. Each car may be addressed by
// its path (cars/:id) or by the id query parameter (cars?id=N):
//  1. GET cars lists all cars, or gets one car if id is given,
//  2. GET cars/:id gets one car,
//  3. POST cars creates a car and responds with 201,
//  4. PUT cars/:id or PUT cars?id=N replaces a car,
//  5. DELETE cars/:id or DELETE cars?id=N deletes a car with 204.
func Register(r *gin.RouterGroup, inv *inventoryuc.UseCase) {
	rs := &resource{inv: inv}
	r.GET("cars", rs.ListOrGetCar)
	r.GET("cars/:id", rs.GetCar)
	r.POST("cars", rs.CreateCar)
	r.PUT("cars", rs.ReplaceCar)
	r.PUT("cars/:id", rs.ReplaceCar)
	r.DELETE("cars", rs.DeleteCar)
	r.DELETE("cars/:id", rs.DeleteCar)
}

func (rs *resource) ListOrGetCar(c *gin.Context) {
	if _, ok := c.GetQuery("id"); ok {
		rs.GetCar(c)
		return
	}
	cars, err := rs.inv.List(c.Request.Context())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cardto.ToCarDTOs(cars))
}

func (rs *resource) GetCar(c *gin.Context) {
	id, ok := DserCarID(c)
	if !ok {
		return
	}
	car, err := rs.inv.Get(c.Request.Context(), id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cardto.ToCarDTO(car))
}

func (rs *resource) CreateCar(c *gin.Context) {
	p, ok := DserCarParams(c)
	if !ok {
		return
	}
	car, err := rs.inv.Create(c.Request.Context(), p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, cardto.ToCarDTO(car))
}

func (rs *resource) ReplaceCar(c *gin.Context) {
	id, ok := DserCarID(c)
	if !ok {
		return
	}
	p, ok := DserCarParams(c)
	if !ok {
		return
	}
	car, err := rs.inv.Replace(c.Request.Context(), id, p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cardto.ToCarDTO(car))
}

func (rs *resource) DeleteCar(c *gin.Context) {
	id, ok := DserCarID(c)
	if !ok {
		return
	}
	if err := rs.inv.Delete(c.Request.Context(), id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
